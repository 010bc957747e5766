package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/metnet/internal/config"
	"github.com/roach88/metnet/internal/metrics"
)

// RootOptions holds global flags for all commands, plus the state derived
// from them once a command starts.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	ConfigPath  string
	MetricsFile string

	// Config is the loaded configuration. Tests may preset it.
	Config *config.Config

	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the metnet CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "metnet",
		Short: "metnet - metabolic network reconstruction",
		Long: `Rebuild metabolic network models from a relational store.

metnet reassembles the genes, reactions, metabolites and stoichiometry of a
stored model, loads genome annotations with their gene synonyms, and exports
models as canonical JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to CUE config file")
	cmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")

	// Add subcommands
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewGenomeCommand(opts))
	cmd.AddCommand(NewAccessionsCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	// PersistentPostRunE is skipped when RunE fails; failed runs need their
	// counters too.
	opts.flushAfterRun(cmd)

	return cmd
}

// flushAfterRun wraps every RunE under cmd so the metrics textfile is
// written whether or not the command succeeds.
func (o *RootOptions) flushAfterRun(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		o.flushAfterRun(c)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if flushErr := o.flushMetrics(); flushErr != nil {
			if err != nil {
				o.logger.Error("failed to write metrics", "error", flushErr)
				return err
			}
			return flushErr
		}
		return err
	}
}

// setup loads configuration and builds the logger and metrics registry.
// Safe to call more than once; only the first call has an effect.
func (o *RootOptions) setup(logOut io.Writer) error {
	if o.logger != nil {
		return nil
	}

	if o.Config == nil {
		if o.ConfigPath != "" {
			cfg, err := config.Load(o.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			o.Config = cfg
		} else {
			o.Config = config.Default()
		}
	}

	level := o.Config.Logging.SlogLevel()
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = newLogger(logOut, level, o.Config.Logging.Format)

	o.registry = prometheus.NewRegistry()
	o.metrics = metrics.New(o.registry)
	return nil
}

// metricsPath resolves the textfile path: flag first, then config.
func (o *RootOptions) metricsPath() string {
	if o.MetricsFile != "" {
		return o.MetricsFile
	}
	if o.Config != nil {
		return o.Config.Metrics.Textfile
	}
	return ""
}

// flushMetrics writes the textfile when one is configured.
func (o *RootOptions) flushMetrics() error {
	path := o.metricsPath()
	if path == "" || o.registry == nil {
		return nil
	}
	if err := metrics.WriteTextfile(path, o.registry); err != nil {
		return WrapExitError(ExitCommandError, "failed to write metrics", err)
	}
	o.logger.Debug("metrics written", "path", path)
	return nil
}

// databasePath resolves the database path: flag first, then config.
func (o *RootOptions) databasePath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if o.Config != nil && o.Config.Database != "" {
		return o.Config.Database, nil
	}
	return "", NewExitError(ExitCommandError, "database path required (--db or config database)")
}

// formatter returns an OutputFormatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// newLogger builds the CLI's slog logger.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
