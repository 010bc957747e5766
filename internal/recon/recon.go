package recon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/metnet/internal/metrics"
	"github.com/roach88/metnet/internal/model"
)

// Source supplies the materialized rows of one model and the names of its
// compartments. ModelRows returns an error wrapping ErrModelNotFound when
// the model does not exist.
type Source interface {
	CompartmentNamer
	ModelRows(ctx context.Context, modelID string) (*model.Rows, error)
}

// Result is the outcome of one reconstruction.
type Result struct {
	Model    *model.Model
	Warnings []Warning
	Stats    Stats
}

// Stats counts what reconstruction kept and dropped.
type Stats struct {
	GeneRows          int
	ReactionRows      int
	MetaboliteRows    int
	StoichiometryRows int

	// RenamedReactions counts instances given a copy id.
	RenamedReactions int

	// DiscardedMetabolites counts metabolite groups with a NULL key.
	DiscardedMetabolites int

	// Linked counts attached coefficients.
	Linked int

	// DuplicateEntries counts matrix rows repeating a (reaction, metabolite) pair.
	DuplicateEntries int
}

// Reconstructor runs the reconstruction pipeline.
// A Reconstructor holds no per-model state and may be reused sequentially.
type Reconstructor struct {
	logger          *slog.Logger
	metrics         *metrics.Metrics
	attachAllCopies bool
}

// Option configures a Reconstructor.
type Option func(*Reconstructor)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconstructor) {
		r.logger = logger
	}
}

// WithMetrics records counters and durations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Reconstructor) {
		r.metrics = m
	}
}

// WithAttachAllCopies makes the Matrix Linker attach a row to every reaction
// copy it finds while probing.
func WithAttachAllCopies(all bool) Option {
	return func(r *Reconstructor) {
		r.attachAllCopies = all
	}
}

// New creates a Reconstructor.
func New(opts ...Option) *Reconstructor {
	r := &Reconstructor{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.metrics == nil {
		r.metrics = metrics.Discard()
	}
	return r
}

// Reconstruct fetches the rows of modelID from src and rebuilds the model.
func (rc *Reconstructor) Reconstruct(ctx context.Context, src Source, modelID string) (*Result, error) {
	start := time.Now()
	defer func() {
		rc.metrics.ReconDuration.Observe(time.Since(start).Seconds())
	}()

	rows, err := src.ModelRows(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("reconstruct %s: %w", modelID, err)
	}

	return rc.Build(ctx, modelID, rows, src)
}

// Build runs the pipeline on already-materialized rows.
// namer may be nil, in which case compartments carry empty names.
func (rc *Reconstructor) Build(ctx context.Context, modelID string, rows *model.Rows, namer CompartmentNamer) (*Result, error) {
	if rows == nil {
		rows = &model.Rows{}
	}
	stats := Stats{
		GeneRows:          len(rows.Genes),
		ReactionRows:      len(rows.Reactions),
		MetaboliteRows:    len(rows.Metabolites),
		StoichiometryRows: len(rows.Stoichiometry),
	}
	rc.metrics.RowsTotal.WithLabelValues("gene").Add(float64(stats.GeneRows))
	rc.metrics.RowsTotal.WithLabelValues("reaction").Add(float64(stats.ReactionRows))
	rc.metrics.RowsTotal.WithLabelValues("metabolite").Add(float64(stats.MetaboliteRows))
	rc.metrics.RowsTotal.WithLabelValues("stoichiometry").Add(float64(stats.StoichiometryRows))

	rc.logger.Debug("aggregating genes", "model", modelID, "rows", stats.GeneRows)
	genes := AggregateGenes(rows.Genes)

	rc.logger.Debug("aggregating reactions", "model", modelID, "rows", stats.ReactionRows)
	reactions := ResolveDuplicates(AggregateReactions(rows.Reactions))
	for _, r := range reactions {
		if r.ID != r.BaseID {
			stats.RenamedReactions++
		}
	}

	rc.logger.Debug("aggregating metabolites", "model", modelID, "rows", stats.MetaboliteRows)
	metabolites := AggregateMetabolites(rows.Metabolites)

	m, err := Assemble(ctx, modelID, Assembly{
		Genes:       genes,
		Reactions:   reactions,
		Metabolites: metabolites,
	}, namer)
	if err != nil {
		return nil, fmt.Errorf("assemble %s: %w", modelID, err)
	}
	stats.DiscardedMetabolites = len(metabolites) - m.Metabolites.Len()
	rc.metrics.DroppedRowsTotal.WithLabelValues("null_key").Add(float64(stats.DiscardedMetabolites))

	rc.logger.Debug("linking reaction matrix", "model", modelID, "rows", stats.StoichiometryRows)
	report := Link(m, rows.Stoichiometry, LinkOptions{AttachAllCopies: rc.attachAllCopies})
	stats.Linked = report.Linked
	stats.DuplicateEntries = report.Duplicates
	rc.metrics.DroppedRowsTotal.WithLabelValues("duplicate").Add(float64(report.Duplicates))

	for _, w := range report.Warnings {
		rc.metrics.DroppedRowsTotal.WithLabelValues(string(w.Code)).Inc()
		rc.logger.Warn(w.String(), "model", modelID, "code", string(w.Code))
	}

	rc.metrics.EntitiesTotal.WithLabelValues(string(KindGene)).Add(float64(m.Genes.Len()))
	rc.metrics.EntitiesTotal.WithLabelValues(string(KindReaction)).Add(float64(m.Reactions.Len()))
	rc.metrics.EntitiesTotal.WithLabelValues(string(KindMetabolite)).Add(float64(m.Metabolites.Len()))
	rc.metrics.EntitiesTotal.WithLabelValues("compartment").Add(float64(len(m.Compartments)))

	rc.logger.Info("model reconstructed",
		"model", modelID,
		"genes", m.Genes.Len(),
		"reactions", m.Reactions.Len(),
		"metabolites", m.Metabolites.Len(),
		"compartments", len(m.Compartments),
		"warnings", len(report.Warnings),
	)

	return &Result{Model: m, Warnings: report.Warnings, Stats: stats}, nil
}
