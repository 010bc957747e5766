package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/metnet/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration files",
	}
	cmd.AddCommand(NewConfigValidateCommand(rootOpts))
	return cmd
}

// configText renders a validated configuration for text output.
type configText struct {
	path string
	cfg  *config.Config
}

func (c configText) String() string {
	return fmt.Sprintf("✓ %s is valid\n"+
		"  database: %q\n"+
		"  logging: level=%s format=%s\n"+
		"  warnings.limit: %d\n"+
		"  matrix.attach_all_copies: %t\n"+
		"  export.indent: %t\n"+
		"  metrics.textfile: %q",
		c.path, c.cfg.Database,
		c.cfg.Logging.Level, c.cfg.Logging.Format,
		c.cfg.Warnings.Limit,
		c.cfg.Matrix.AttachAllCopies,
		c.cfg.Export.Indent,
		c.cfg.Metrics.Textfile)
}

// NewConfigValidateCommand creates the config validate command.
func NewConfigValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config.cue>",
		Short: "Validate a config file and print the effective values",
		Long: `Validate a CUE config file against the built-in schema and print the
effective configuration, defaults included.

Exit codes:
  0 - Config is valid
  1 - Config is invalid
  2 - Command error (file not found, etc.)

Example:
  metnet config validate metnet.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runConfigValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := config.Load(path)
	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			return fail(formatter, ExitFailure, ErrCodeInvalidConfig, "invalid config", err)
		}
		return fail(formatter, ExitCommandError, ErrCodeNotFound, "failed to load config", err)
	}

	if opts.Format == "json" {
		return formatter.Success(cfg)
	}
	return formatter.Success(configText{path: path, cfg: cfg})
}
