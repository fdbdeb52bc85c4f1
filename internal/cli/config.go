package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazuruo/histclean/internal/config"
	histerrors "github.com/chazuruo/histclean/internal/errors"
)

// ConfigInitOptions contains the options for the config init command.
type ConfigInitOptions struct {
	Global *GlobalOptions
	Force  bool
}

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand(global *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the histclean configuration",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newConfigInitCommand(global))
	cmd.AddCommand(newConfigShowCommand(global))
	cmd.AddCommand(newConfigPathCommand(global))

	return cmd
}

func newConfigInitCommand(global *GlobalOptions) *cobra.Command {
	opts := &ConfigInitOptions{Global: global}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a config file with every setting at its default value.

The file is written to --config, or $XDG_CONFIG_HOME/histclean/config.toml.
An existing file is only replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing config file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, opts *ConfigInitOptions) error {
	path, err := configPath(opts.Global)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return &histerrors.ConfigError{Path: path, Err: fmt.Errorf("config file already exists (use --force to overwrite)")}
	}

	if err := config.Write(path, config.DefaultConfig()); err != nil {
		return &histerrors.IOError{Op: "write", Path: path, Err: err}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
	return nil
}

func newConfigShowCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults and HISTCLEAN_* environment overrides are applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithDefaults(global.ConfigPath)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}
}

func newConfigPathCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(global)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func configPath(global *GlobalOptions) (string, error) {
	if global.ConfigPath != "" {
		return global.ConfigPath, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", &histerrors.ConfigError{Err: err}
	}
	return path, nil
}
