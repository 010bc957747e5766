package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/metnet/internal/export"
	"github.com/roach88/metnet/internal/recon"
	"github.com/roach88/metnet/internal/store"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Database        string
	Output          string
	Indent          bool
	AttachAllCopies bool

	// RunIDs allows overriding the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs export.RunIDGenerator
}

// DumpSummary is reported after a successful dump.
type DumpSummary struct {
	Model        string   `json:"model"`
	RunID        string   `json:"run_id"`
	Genes        int      `json:"genes"`
	Reactions    int      `json:"reactions"`
	Metabolites  int      `json:"metabolites"`
	Compartments int      `json:"compartments"`
	Warnings     []string `json:"warnings"`
	Output       string   `json:"output,omitempty"`
}

// String renders the summary for text output.
func (s DumpSummary) String() string {
	msg := fmt.Sprintf("✓ Reconstructed %s: %d gene(s), %d reaction(s), %d metabolite(s), %d compartment(s)",
		s.Model, s.Genes, s.Reactions, s.Metabolites, s.Compartments)
	if len(s.Warnings) > 0 {
		msg += fmt.Sprintf("\n%d stoichiometry row(s) dropped:", len(s.Warnings))
		for _, w := range s.Warnings {
			msg += "\n  " + w
		}
	}
	if s.Output != "" {
		msg += "\nWrote model to " + s.Output
	}
	return msg
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump <model-id>",
		Short: "Reconstruct a model and write it as JSON",
		Long: `Reconstruct a stored model and write it as canonical JSON.

The model is rebuilt from the database rows: aliases are aggregated,
duplicate reactions are renamed to <id>_copy<N>, and the stoichiometric
matrix is linked. Dropped matrix rows are listed in the summary.

The document goes to stdout unless --output is given; the summary then goes
to stderr.

Exit codes:
  0 - Model written
  1 - Reconstruction failed (e.g. duplicate identifier)
  2 - Command error (database or model not found, etc.)

Examples:
  metnet dump iJO1366 --db bigg.db
  metnet dump e_coli_core --db bigg.db -o e_coli_core.json --indent=false`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.Indent, "indent", true, "pretty-print the document (default from config)")
	cmd.Flags().BoolVar(&opts.AttachAllCopies, "attach-all-copies", false, "attach matrix rows to every reaction copy (default from config)")

	return cmd
}

func runDump(opts *DumpOptions, modelID string, cmd *cobra.Command) error {
	if err := opts.setup(cmd.ErrOrStderr()); err != nil {
		return err
	}
	logger := opts.logger

	formatter := opts.formatter(cmd)
	if opts.Output == "" {
		// stdout carries the document
		formatter.Writer = cmd.ErrOrStderr()
	}

	dbPath, err := opts.databasePath(opts.Database)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fail(formatter, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath), nil)
	}

	indent := opts.Config.Export.Indent
	if cmd.Flags().Changed("indent") {
		indent = opts.Indent
	}
	attachAll := opts.Config.Matrix.AttachAllCopies
	if cmd.Flags().Changed("attach-all-copies") {
		attachAll = opts.AttachAllCopies
	}

	logger.Debug("opening database", "path", dbPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeGeneric, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rc := recon.New(
		recon.WithLogger(logger),
		recon.WithMetrics(opts.metrics),
		recon.WithAttachAllCopies(attachAll),
	)
	result, err := rc.Reconstruct(ctx, st, modelID)
	switch {
	case errors.Is(err, recon.ErrModelNotFound):
		return fail(formatter, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("model not found: %s", modelID), err)
	case recon.IsDuplicateIdentifier(err):
		return fail(formatter, ExitFailure, ErrCodeDuplicateID, "reconstruction failed", err)
	case err != nil:
		return fail(formatter, ExitFailure, ErrCodeGeneric, "reconstruction failed", err)
	}

	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = export.UUIDv7Generator{}
	}
	runID := runIDs.Generate()

	data, err := export.Marshal(result.Model, export.Options{Indent: indent, RunID: runID})
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeGeneric, "export failed", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, data, 0644); err != nil {
			return fail(formatter, ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %s", opts.Output), err)
		}
	} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fail(formatter, ExitCommandError, ErrCodeWriteFailed, "writing output", err)
	}

	m := result.Model
	summary := DumpSummary{
		Model:        m.ID,
		RunID:        runID,
		Genes:        m.Genes.Len(),
		Reactions:    m.Reactions.Len(),
		Metabolites:  m.Metabolites.Len(),
		Compartments: len(m.Compartments),
		Warnings:     make([]string, len(result.Warnings)),
		Output:       opts.Output,
	}
	for i, w := range result.Warnings {
		summary.Warnings[i] = w.String()
	}
	return formatter.Success(summary)
}
