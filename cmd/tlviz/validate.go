package main

import (
	"fmt"

	"github.com/oukeidos/tlviz/internal/daterange"
	"github.com/oukeidos/tlviz/internal/files"
	"github.com/oukeidos/tlviz/internal/logger"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	from string
	to   string
	name string
}

func newValidateCmd() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a date range and map name without running the generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, &opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&opts.from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Custom map file name")
	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions) error {
	from, to := dateArg(opts.from), dateArg(opts.to)
	res := daterange.Validate(from, to)
	if !res.OK() {
		return fmt.Errorf("%s (%s)", res.Message(), res.Fields)
	}
	if err := files.ValidateBaseName(opts.name); err != nil {
		return err
	}
	if daterange.Reversed(from, to) {
		logger.Warn("From date is after to date; the generator receives them as given", "from", from, "to", to)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "OK")
	return nil
}
