// Package runner launches the map generator, streams its progress and
// locates the files it produced.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/oukeidos/tlviz/internal/apperrors"
	"github.com/oukeidos/tlviz/internal/config"
	"github.com/oukeidos/tlviz/internal/daterange"
	"github.com/oukeidos/tlviz/internal/logger"
)

// ErrBusy is returned when a run is already in progress.
var ErrBusy = errors.New("a map is already being generated")

const (
	WaitTitle   = "Please wait"
	WaitInitial = "Starting map generation..."

	maxLineBytes = 1 << 20
)

// WaitHandle is the blocking progress indicator shown during a run.
type WaitHandle interface {
	Update(lines []string)
	Dismiss()
}

// UI is the part of the front end the runner talks to. Calls arrive from the
// run goroutine; implementations marshal onto their own UI thread.
type UI interface {
	ShowMessage(text string)
	ShowModalWait(title, initial string) WaitHandle
	OpenWithDefaultHandler(path string) error
}

// Result summarizes one finished run.
type Result struct {
	RunID      string
	State      State
	HTMLPath   string   // absolute, empty when the map was not found
	CSVMatches []string // sorted names inside the output directory
	CSVPath    string   // absolute path of the reported CSV
	ExitCode   int
	Warning    error
	Err        error
	Lines      []string
}

type Option func(*Runner)

// WithLauncher replaces the os/exec launcher.
func WithLauncher(l Launcher) Option { return func(r *Runner) { r.launcher = l } }

// WithOutputFS replaces the view of the output directory used for discovery.
func WithOutputFS(fsys fs.FS) Option { return func(r *Runner) { r.outFS = fsys } }

// WithWorkDir sets the directory the generator runs in. The output directory
// and a relative script path are resolved against it.
func WithWorkDir(dir string) Option { return func(r *Runner) { r.workDir = dir } }

// WithGo sets how Start spawns the run goroutine, e.g. under a panic guard.
func WithGo(spawn func(func())) Option { return func(r *Runner) { r.spawn = spawn } }

// WithStateHook observes every state transition, from the run goroutine.
func WithStateHook(fn func(State)) Option { return func(r *Runner) { r.onState = fn } }

// Runner owns at most one generator process at a time.
type Runner struct {
	cfg      config.Config
	ui       UI
	launcher Launcher
	outFS    fs.FS
	workDir  string
	spawn    func(func())
	onState  func(State)

	busy  atomic.Bool
	state atomic.Int32
}

func New(cfg config.Config, ui UI, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		ui:       ui,
		launcher: ExecLauncher{},
		spawn:    func(fn func()) { go fn() },
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			r.workDir = wd
		}
	}
	if r.outFS == nil {
		r.outFS = os.DirFS(r.outputDir())
	}
	return r
}

// State returns the current state. It reads Idle between runs.
func (r *Runner) State() State { return State(r.state.Load()) }

// Busy reports whether a run is in progress.
func (r *Runner) Busy() bool { return r.busy.Load() }

// OutputPath returns the absolute path name would have in the output dir.
func (r *Runner) OutputPath(name string) string {
	return filepath.Join(r.outputDir(), name)
}

func (r *Runner) outputDir() string {
	dir := r.cfg.OutputDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.workDir, dir)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// Start runs req in the background and calls onDone with the result. It
// returns ErrBusy without side effects while another run is active.
func (r *Runner) Start(ctx context.Context, req Request, onDone func(Result)) error {
	if !r.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	r.spawn(func() {
		res := r.execute(ctx, req)
		if onDone != nil {
			onDone(res)
		}
	})
	return nil
}

// Run is the blocking form of Start.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	res := r.execute(ctx, req)
	return res, res.Err
}

func (r *Runner) setState(s State) {
	r.state.Store(int32(s))
	if r.onState != nil {
		r.onState(s)
	}
}

func newRunID() string {
	if u, err := uuid.NewV7(); err == nil {
		return u.String()
	}
	return uuid.NewString()
}

// execute owns the busy slot and releases it before returning.
func (r *Runner) execute(ctx context.Context, req Request) Result {
	res := Result{RunID: newRunID()}
	log := logger.With("run_id", res.RunID)
	defer func() {
		r.setState(Idle)
		r.busy.Store(false)
	}()

	if daterange.Reversed(req.FromDate(), req.ToDate()) {
		log.Warn("From date is after to date; passing through", "from", req.FromDate(), "to", req.ToDate())
	}

	r.setState(Launching)
	wait := r.ui.ShowModalWait(WaitTitle, WaitInitial)
	dismiss := sync.OnceFunc(wait.Dismiss)
	defer dismiss()

	fail := func(err error) Result {
		dismiss()
		res.State = Failed
		res.Err = err
		r.setState(Failed)
		log.Error("Map generation failed", "error", err, "cause", errors.Unwrap(err))
		r.ui.ShowMessage(apperrors.PublicMessage(err))
		return res
	}

	argv := req.Args(r.cfg.Interpreter, r.cfg.ScriptPath(r.workDir))
	log.Info("Launching map generator", "script", argv[1], "input", req.FilePath(),
		"from", req.FromDate(), "to", req.ToDate(), "csv", req.ExportCSV(), "name", req.OutputName())
	proc, err := r.launcher.Launch(ctx, argv, r.workDir)
	if err != nil {
		return fail(apperrors.Launch(err))
	}

	r.setState(Streaming)
	lines, err := streamLines(proc.Output(), wait.Update)
	res.Lines = lines
	if err != nil {
		res.Warning = apperrors.Stream(err)
		log.Warn("Output stream ended with an error", "error", err, "lines", len(lines))
	}

	r.setState(Finalizing)
	code, err := proc.Wait()
	res.ExitCode = code
	if ctx.Err() != nil {
		return fail(apperrors.New(apperrors.KindProcessExit, "Map generation cancelled.", ctx.Err()))
	}
	if err != nil || code != 0 {
		msg := fmt.Sprintf("Map generation failed (exit code %d).", code)
		return fail(apperrors.New(apperrors.KindProcessExit, msg, err))
	}
	log.Info("Map generator exited", "lines", len(lines))

	return r.finalize(req, res, dismiss, log)
}

func (r *Runner) finalize(req Request, res Result, dismiss func(), log *slog.Logger) Result {
	dismiss()
	base := req.BaseName(r.cfg.DefaultBaseName)
	found, err := discover(r.outFS, base, req.ExportCSV())
	if err != nil {
		log.Warn("Could not scan output directory", "dir", r.outputDir(), "error", err)
	}

	if found.html == "" {
		missing := r.OutputPath(base + ".html")
		res.Warning = apperrors.ArtifactNotFound(missing)
		log.Warn("Map file not found", "path", missing)
		r.ui.ShowMessage(apperrors.PublicMessage(res.Warning))
	} else {
		res.HTMLPath = r.OutputPath(found.html)
		if r.cfg.ShouldOpenMap() {
			if err := r.ui.OpenWithDefaultHandler(res.HTMLPath); err != nil {
				res.State = Failed
				res.Err = apperrors.Open(err)
				r.setState(Failed)
				log.Error("Opening map failed", "path", res.HTMLPath, "error", err)
				r.ui.ShowMessage(apperrors.PublicMessage(res.Err))
				return res
			}
		}
		log.Info("Map ready", "path", res.HTMLPath)
	}

	res.CSVMatches = found.csvMatches
	if name := found.csv(); name != "" {
		res.CSVPath = r.OutputPath(name)
		log.Info("CSV exported", "path", res.CSVPath, "matches", len(found.csvMatches))
		r.ui.ShowMessage("CSV exported: " + name)
	}

	res.State = Done
	r.setState(Done)
	return res
}

// streamLines reads rc to EOF, handing the cumulative lines to publish after
// each one. rc is always closed.
func streamLines(rc io.ReadCloser, publish func([]string)) ([]string, error) {
	defer rc.Close()
	var lines []string
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		lines = append(lines, sc.Text())
		publish(slices.Clone(lines))
	}
	return lines, sc.Err()
}
