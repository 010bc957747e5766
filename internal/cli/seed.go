package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/metnet/internal/store"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Database string
}

// SeedSummary is reported after a successful seed.
type SeedSummary struct {
	Dataset        string `json:"dataset"`
	Models         int    `json:"models"`
	ModelGenes     int    `json:"model_genes"`
	ModelReactions int    `json:"model_reactions"`
	Metabolites    int    `json:"metabolites"`
	MatrixEntries  int    `json:"matrix_entries"`
	Aliases        int    `json:"aliases"`
}

// String renders the summary for text output.
func (s SeedSummary) String() string {
	return fmt.Sprintf("✓ Seeded %s: %d model(s), %d gene(s), %d reaction instance(s), %d metabolite(s), %d matrix entr(ies), %d alias(es)",
		s.Dataset, s.Models, s.ModelGenes, s.ModelReactions, s.Metabolites, s.MatrixEntries, s.Aliases)
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <dataset.yaml>",
		Short: "Load a YAML dataset into the database",
		Long: `Load compartments, components, universal reactions and models from a YAML
dataset. The database is created if it doesn't exist. Every insert is
find-or-create, so seeding the same dataset twice is harmless.

Example:
  metnet seed --db bigg.db testdata/core.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runSeed(opts *SeedOptions, datasetPath string, cmd *cobra.Command) error {
	if err := opts.setup(cmd.ErrOrStderr()); err != nil {
		return err
	}
	logger := opts.logger
	formatter := opts.formatter(cmd)

	dbPath, err := opts.databasePath(opts.Database)
	if err != nil {
		return err
	}

	ds, err := store.LoadDataset(datasetPath)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeInvalidInput, "failed to load dataset", err)
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

	stats, err := st.Seed(ctx, ds)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeGeneric, "seed failed", err)
	}
	logger.Info("dataset seeded", "dataset", datasetPath, "models", stats.Models)

	return formatter.Success(SeedSummary{
		Dataset:        datasetPath,
		Models:         stats.Models,
		ModelGenes:     stats.ModelGenes,
		ModelReactions: stats.ModelReactions,
		Metabolites:    stats.Metabolites,
		MatrixEntries:  stats.MatrixEntries,
		Aliases:        stats.Aliases,
	})
}
