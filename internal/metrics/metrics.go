// Package metrics holds the Prometheus instruments for metnet.
//
// Instruments are registered on a caller-owned registry so that tests and
// one-shot CLI runs never touch the global default registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "metnet"

// Metrics groups the counters and histograms shared by reconstruction and
// genome loading.
type Metrics struct {
	// RowsTotal counts consumed source rows.
	// Labels: stream (gene, reaction, metabolite, stoichiometry)
	RowsTotal *prometheus.CounterVec

	// DroppedRowsTotal counts rows discarded during reconstruction.
	// Labels: reason (null_key, missing_metabolite, missing_reaction, duplicate)
	DroppedRowsTotal *prometheus.CounterVec

	// EntitiesTotal counts assembled entities.
	// Labels: kind (gene, reaction, metabolite, compartment)
	EntitiesTotal *prometheus.CounterVec

	// WarningsTotal counts every capped-warning emission, logged or not.
	// Labels: category
	WarningsTotal *prometheus.CounterVec

	// WarningsSuppressedTotal counts capped warnings that were not logged.
	// Labels: category
	WarningsSuppressedTotal *prometheus.CounterVec

	// GenomeFeaturesTotal counts annotation features by outcome.
	// Labels: outcome (created, duplicate, skipped, ignored)
	GenomeFeaturesTotal *prometheus.CounterVec

	// GenomeAliasesTotal counts alias find-or-create calls.
	// Labels: source
	GenomeAliasesTotal *prometheus.CounterVec

	// ReconDuration measures a full reconstruction pass.
	ReconDuration prometheus.Histogram
}

// New creates and registers all instruments on reg.
// Panics if an instrument is already registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RowsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recon",
			Name:      "rows_total",
			Help:      "Source rows consumed by reconstruction",
		}, []string{"stream"}),
		DroppedRowsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recon",
			Name:      "dropped_rows_total",
			Help:      "Source rows dropped during reconstruction",
		}, []string{"reason"}),
		EntitiesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recon",
			Name:      "entities_total",
			Help:      "Entities assembled into models",
		}, []string{"kind"}),
		WarningsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Capped warnings emitted, including suppressed ones",
		}, []string{"category"}),
		WarningsSuppressedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_suppressed_total",
			Help:      "Capped warnings withheld from the log",
		}, []string{"category"}),
		GenomeFeaturesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "genome",
			Name:      "features_total",
			Help:      "Annotation features processed by outcome",
		}, []string{"outcome"}),
		GenomeAliasesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "genome",
			Name:      "aliases_total",
			Help:      "Gene alias find-or-create calls by source",
		}, []string{"source"}),
		ReconDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "recon",
			Name:      "duration_seconds",
			Help:      "Wall time of one model reconstruction",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// Discard returns instruments bound to a private registry nobody gathers.
func Discard() *Metrics {
	return New(prometheus.NewRegistry())
}

// WriteTextfile writes every metric gathered from g to path in the
// Prometheus text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
