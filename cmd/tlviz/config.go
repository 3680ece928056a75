package main

import (
	"fmt"
	"os"

	"github.com/oukeidos/tlviz/internal/config"
	"github.com/oukeidos/tlviz/internal/files"
	"github.com/spf13/cobra"
)

type configOptions struct {
	path string
	yes  bool
}

func newConfigCmd() *cobra.Command {
	opts := configOptions{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective launcher configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, &opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.PersistentFlags().StringVar(&opts.path, "config", defaultConfigPath, "Path to the YAML launcher config")
	cmd.AddCommand(newConfigInitCmd(&opts))
	return cmd
}

func newConfigInitCmd(opts *configOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite an existing config without asking")
	return cmd
}

func runConfigShow(cmd *cobra.Command, opts *configOptions) error {
	cfg, err := loadConfig(opts.path)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, opts *configOptions) error {
	if _, err := os.Stat(opts.path); err == nil {
		ok, err := confirmer().ConfirmOverwrite(opts.path, opts.yes)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("aborted: %s was left untouched", opts.path)
		}
	}
	data, err := config.Marshal(config.Default())
	if err != nil {
		return err
	}
	if err := files.AtomicWrite(opts.path, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.path)
	return nil
}
