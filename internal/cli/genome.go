package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/metnet/internal/genome"
	"github.com/roach88/metnet/internal/ratelog"
	"github.com/roach88/metnet/internal/store"
)

// GenomeLoadOptions holds flags for the genome load command.
type GenomeLoadOptions struct {
	*RootOptions
	Database       string
	AccessionType  string
	AccessionValue string
	WarningLimit   int
}

// GenomeLoadSummary is reported after a successful load.
type GenomeLoadSummary struct {
	Genome      string         `json:"genome"`
	GenomeID    int64          `json:"genome_id"`
	Chromosomes int            `json:"chromosomes"`
	Suppressed  map[string]int `json:"suppressed_warnings,omitempty"`
}

// String renders the summary for text output.
func (s GenomeLoadSummary) String() string {
	msg := fmt.Sprintf("✓ Loaded genome %s (id %d) from %d annotation file(s)", s.Genome, s.GenomeID, s.Chromosomes)
	for _, category := range slices.Sorted(maps.Keys(s.Suppressed)) {
		msg += fmt.Sprintf("\n  %d %s warning(s) suppressed", s.Suppressed[category], category)
	}
	return msg
}

// NewGenomeCommand creates the genome command group.
func NewGenomeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genome",
		Short: "Manage genome annotations",
	}
	cmd.AddCommand(NewGenomeLoadCommand(rootOpts))
	return cmd
}

// NewGenomeLoadCommand creates the genome load command.
func NewGenomeLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenomeLoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <annotation.yaml>...",
		Short: "Load annotated chromosomes as a new genome",
		Long: `Load one annotation document per chromosome into a new genome.

Each CDS feature becomes a gene keyed by its scrubbed locus tag (or gene
name when the locus tag is missing). Names, synonyms, cross-references,
old locus tags and ORF ids are recorded as gene aliases. Repeated warnings
are capped per category (warnings.limit in the config).

Exit codes:
  0 - Genome loaded
  1 - Load failed (genome already loaded, store error)
  2 - Command error (missing or malformed annotation files, etc.)

Example:
  metnet genome load --db bigg.db --accession-type ncbi_assembly \
    --accession GCF_000005845.2 NC_000913.3.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenomeLoad(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.AccessionType, "accession-type", "", "genome accession type (required)")
	cmd.Flags().StringVar(&opts.AccessionValue, "accession", "", "genome accession value (required)")
	cmd.Flags().IntVar(&opts.WarningLimit, "warning-limit", 0, "messages logged per warning category (default from config)")
	_ = cmd.MarkFlagRequired("accession-type")
	_ = cmd.MarkFlagRequired("accession")

	return cmd
}

func runGenomeLoad(opts *GenomeLoadOptions, paths []string, cmd *cobra.Command) error {
	if err := opts.setup(cmd.ErrOrStderr()); err != nil {
		return err
	}
	logger := opts.logger
	formatter := opts.formatter(cmd)

	if cmd.Flags().Changed("warning-limit") && opts.WarningLimit < 0 {
		return fail(formatter, ExitCommandError, ErrCodeInvalidInput,
			fmt.Sprintf("--warning-limit must be >= 0, got %d", opts.WarningLimit), nil)
	}

	dbPath, err := opts.databasePath(opts.Database)
	if err != nil {
		return err
	}

	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fail(formatter, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("annotation file not found: %s", p), nil)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Debug("reading annotation files", "count", len(paths))
	docs, err := genome.ReadAnnotations(ctx, paths)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeInvalidInput, "failed to read annotations", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeGeneric, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	limit := opts.Config.Warnings.Limit
	if cmd.Flags().Changed("warning-limit") {
		limit = opts.WarningLimit
	}
	limiter := ratelog.New(limit,
		ratelog.WithLogger(logger),
		ratelog.WithMetrics(opts.metrics),
	)
	loader := genome.NewLoader(st,
		genome.WithLogger(logger),
		genome.WithLimiter(limiter),
		genome.WithMetrics(opts.metrics),
	)

	ref := genome.GenomeRef{AccessionType: opts.AccessionType, AccessionValue: opts.AccessionValue}
	genomeID, err := loader.LoadGenome(ctx, ref, docs)
	if genome.IsAlreadyLoaded(err) {
		return fail(formatter, ExitFailure, ErrCodeAlreadyLoaded, "genome already loaded", err)
	}
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeGeneric, "genome load failed", err)
	}

	summary := GenomeLoadSummary{
		Genome:      ref.String(),
		GenomeID:    genomeID,
		Chromosomes: len(docs),
	}
	for _, category := range limiter.Categories() {
		if n := limiter.Suppressed(category); n > 0 {
			if summary.Suppressed == nil {
				summary.Suppressed = make(map[string]int)
			}
			summary.Suppressed[category] = n
		}
	}
	return formatter.Success(summary)
}
