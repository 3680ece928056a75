package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oukeidos/tlviz/internal/apperrors"
	"github.com/oukeidos/tlviz/internal/files"
	"github.com/oukeidos/tlviz/internal/logger"
	"github.com/oukeidos/tlviz/internal/prompt"
	"github.com/oukeidos/tlviz/internal/runner"
	"github.com/spf13/cobra"
)

type runOptions struct {
	configPath  string
	workDir     string
	from        string
	to          string
	csv         bool
	name        string
	noOpen      bool
	yes         bool
	rename      bool
	logFilePath string
	debug       bool
}

var (
	newLauncher = func() runner.Launcher { return runner.ExecLauncher{} }
	openPath    = openWithSystem
	confirmer   = prompt.DefaultConfirmer
)

func newRunCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run <Records.json>",
		Short: "Generate a map from a timeline export",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Usage()
				return fmt.Errorf("a timeline export file is required")
			}
			return runMap(cmd, args, &opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	addRunFlags(cmd, &opts)
	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config", defaultConfigPath, "Path to the YAML launcher config")
	cmd.Flags().StringVar(&opts.workDir, "workdir", "", "Directory the generator runs in (default: current directory)")
	cmd.Flags().StringVar(&opts.from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.csv, "csv", false, "Also export a .csv file with coordinates")
	cmd.Flags().StringVar(&opts.name, "name", "", "Custom map file name (default from config)")
	cmd.Flags().BoolVar(&opts.noOpen, "no-open", false, "Do not open the map when it is ready")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite an existing map without asking")
	cmd.Flags().BoolVar(&opts.rename, "rename", false, "Pick a free file name instead of overwriting an existing map")
	cmd.Flags().StringVar(&opts.logFilePath, "log-file", "", "Path to save machine-readable JSONL logs")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
}

func runMap(cmd *cobra.Command, args []string, opts *runOptions) error {
	if len(args) > 1 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: expected 1 argument but got %d. Did you forget quotes around the file path?\n", len(args))
	}
	if err := setupLogging(opts.debug, opts.logFilePath); err != nil {
		return err
	}
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.noOpen {
		off := false
		cfg.OpenMap = &off
	}

	workDir := opts.workDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
	}

	input, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	if info, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file: %w", err)
	} else if info.IsDir() {
		return fmt.Errorf("input %s is a directory", input)
	}
	if !hasExtension(input, cfg.InputExtensions) {
		logger.Warn("Input does not look like a timeline export", "path", input, "expected", cfg.InputExtensions)
	}

	req, err := runner.NewRequest(input, dateArg(opts.from), dateArg(opts.to), opts.csv, opts.name)
	if err != nil {
		return err
	}

	r := runner.New(cfg, &cliUI{out: cmd.OutOrStdout()},
		runner.WithLauncher(newLauncher()),
		runner.WithWorkDir(workDir))

	req, err = resolveCollision(r, req, cfg.DefaultBaseName, opts)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	res, err := r.Run(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("Map generation canceled", "run_id", res.RunID)
			return nil
		}
		return err
	}
	printSummary(cmd.OutOrStdout(), res)
	if res.Warning != nil && apperrors.Is(res.Warning, apperrors.KindArtifactNotFound) {
		return res.Warning
	}
	return nil
}

// resolveCollision handles an existing <base>.html: keep it by renaming,
// or replace it after confirmation.
func resolveCollision(r *runner.Runner, req runner.Request, def string, opts *runOptions) (runner.Request, error) {
	base := req.BaseName(def)
	target := r.OutputPath(files.SanitizeBaseName(base) + ".html")
	if _, err := os.Stat(target); err != nil {
		return req, nil
	}
	if opts.rename {
		free, _, err := files.FreeBaseName(filepath.Dir(target), files.SanitizeBaseName(base), ".html")
		if err != nil {
			return req, err
		}
		logger.Info("Map exists; using a new name", "existing", target, "name", free)
		return runner.NewRequest(req.FilePath(), req.FromDate(), req.ToDate(), req.ExportCSV(), free)
	}
	ok, err := confirmer().ConfirmOverwrite(target, opts.yes)
	if err != nil {
		return req, err
	}
	if !ok {
		return req, fmt.Errorf("aborted: %s was left untouched", target)
	}
	return req, nil
}

func printSummary(out io.Writer, res runner.Result) {
	fmt.Fprintln(out, "\n--- Map Generation ---")
	fmt.Fprintf(out, "Run: %s\n", res.RunID)
	if res.HTMLPath != "" {
		fmt.Fprintf(out, "Map: %s\n", res.HTMLPath)
	}
	if res.CSVPath != "" {
		fmt.Fprintf(out, "CSV: %s\n", res.CSVPath)
		if len(res.CSVMatches) > 1 {
			fmt.Fprintf(out, "     (%d CSV files matched, reporting the last)\n", len(res.CSVMatches))
		}
	}
}

func hasExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	got := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(got, e) {
			return true
		}
	}
	return false
}

// cliUI prints what the GUI would show in dialogs.
type cliUI struct {
	out io.Writer
}

func (u *cliUI) ShowMessage(text string) {
	fmt.Fprintln(u.out, text)
}

func (u *cliUI) ShowModalWait(title, initial string) runner.WaitHandle {
	fmt.Fprintf(u.out, "%s: %s\n", title, initial)
	return &cliProgress{out: u.out}
}

func (u *cliUI) OpenWithDefaultHandler(path string) error {
	return openPath(context.Background(), path)
}

// cliProgress prints only lines it has not printed yet; the runner always
// hands over the whole accumulated list.
type cliProgress struct {
	out     io.Writer
	printed int
}

func (p *cliProgress) Update(lines []string) {
	for _, line := range lines[p.printed:] {
		fmt.Fprintf(p.out, "  %s\n", line)
	}
	p.printed = len(lines)
}

func (p *cliProgress) Dismiss() {}
