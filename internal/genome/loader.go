package genome

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/metnet/internal/metrics"
	"github.com/roach88/metnet/internal/ratelog"
)

// Alias sources recorded for genes.
// Cross-references use their own source prefix (e.g. "UniProtKB/Swiss-Prot").
const (
	AliasLocusTag    = "locus_tag"
	AliasName        = "name"
	AliasSynonym     = "synonym"
	AliasOldLocusTag = "old_locus_tag"
	AliasORFID       = "orf_id"
)

// Capped warning categories.
const (
	WarnLocusTagFallback = "locus_tag_fallback"
	WarnDuplicateGene    = "duplicate_gene"
)

// OwnerGene is the owner type of gene aliases.
const OwnerGene = "gene"

// GenomeRef identifies a genome by accession, e.g. {"ncbi_assembly", "GCF_000005845.2"}.
type GenomeRef struct {
	AccessionType  string
	AccessionValue string
}

// String renders the reference for logs and errors.
func (r GenomeRef) String() string {
	return r.AccessionType + " " + r.AccessionValue
}

// GeneRecord is a gene to find or create on a chromosome.
type GeneRecord struct {
	ID           string
	LocusTag     string
	Name         string
	ChromosomeID int64
	LeftPos      int
	RightPos     int
	Strand       string
}

// AliasRecord is one alias; (OwnerType, OwnerID, Value, Source) is its identity.
type AliasRecord struct {
	OwnerType string
	OwnerID   int64
	Value     string
	Source    string
}

// Store is the persistence collaborator of the loader.
// Every find-or-create call must be idempotent.
type Store interface {
	GenomeExists(ctx context.Context, ref GenomeRef) (bool, error)
	CreateGenome(ctx context.Context, ref GenomeRef) (int64, error)

	// SetGenomeMetadata fills organism and taxon id where they are still
	// unset. Empty arguments leave the field alone.
	SetGenomeMetadata(ctx context.Context, genomeID int64, organism, taxonID string) error

	FindOrCreateChromosome(ctx context.Context, genomeID int64, accession string) (int64, error)

	// FindOrCreateGene returns the gene with rec.ID on rec.ChromosomeID,
	// creating it from rec when absent. created reports which happened.
	FindOrCreateGene(ctx context.Context, rec GeneRecord) (id int64, created bool, err error)

	FindOrCreateAlias(ctx context.Context, rec AliasRecord) (int64, error)
}

// Transactor is a Store that can scope a set of calls to one transaction.
// LoadGenome uses it when available so a failed load leaves nothing behind.
type Transactor interface {
	InTx(ctx context.Context, fn func(Store) error) error
}

// ChromosomeStats counts the outcome of loading one chromosome.
type ChromosomeStats struct {
	Features   int
	Created    int
	Duplicates int
	Skipped    int
	Ignored    int
	Aliases    int
}

// Loader loads annotation documents into a Store.
// Single-threaded; share one ratelog.Limiter to keep caps global across loaders.
type Loader struct {
	store   Store
	logger  *slog.Logger
	limiter *ratelog.Limiter
	metrics *metrics.Metrics
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithLimiter sets the capped warning emitter.
// Default: a ratelog.Limiter with ratelog.DefaultLimit on the loader's logger.
func WithLimiter(limiter *ratelog.Limiter) Option {
	return func(l *Loader) {
		l.limiter = limiter
	}
}

// WithMetrics records feature and alias counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// NewLoader creates a Loader backed by store.
func NewLoader(store Store, opts ...Option) *Loader {
	l := &Loader{store: store}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.metrics == nil {
		l.metrics = metrics.Discard()
	}
	if l.limiter == nil {
		l.limiter = ratelog.New(ratelog.DefaultLimit,
			ratelog.WithLogger(l.logger),
			ratelog.WithMetrics(l.metrics),
		)
	}
	return l
}

// LoadGenome creates the genome ref and loads one chromosome per document.
//
// Fails with ErrNoAnnotationFiles when docs is empty and with an
// *AlreadyLoadedError when the genome exists. Any store error aborts. When
// the store is a Transactor the whole load runs in one transaction, so an
// aborted load can be retried.
func (l *Loader) LoadGenome(ctx context.Context, ref GenomeRef, docs []*Annotation) (int64, error) {
	if len(docs) == 0 {
		return 0, fmt.Errorf("load genome %s: %w", ref, ErrNoAnnotationFiles)
	}

	tx, ok := l.store.(Transactor)
	if !ok {
		return l.loadGenome(ctx, l.store, ref, docs)
	}

	var (
		genomeID int64
		loadErr  error
	)
	err := tx.InTx(ctx, func(st Store) error {
		genomeID, loadErr = l.loadGenome(ctx, st, ref, docs)
		return loadErr
	})
	if loadErr != nil {
		return 0, loadErr
	}
	if err != nil {
		return 0, fmt.Errorf("load genome %s: %w", ref, err)
	}
	return genomeID, nil
}

func (l *Loader) loadGenome(ctx context.Context, st Store, ref GenomeRef, docs []*Annotation) (int64, error) {
	exists, err := st.GenomeExists(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("load genome %s: %w", ref, err)
	}
	if exists {
		return 0, &AlreadyLoadedError{Ref: ref}
	}

	l.logger.Debug("adding new genome", "genome", ref.String())
	genomeID, err := st.CreateGenome(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("load genome %s: %w", ref, err)
	}

	for i, doc := range docs {
		l.logger.Info("loading chromosome",
			"index", i+1,
			"total", len(docs),
			"accession", doc.Accession,
		)
		if _, err := l.loadChromosome(ctx, st, genomeID, doc); err != nil {
			return genomeID, fmt.Errorf("load genome %s: %w", ref, err)
		}
	}

	return genomeID, nil
}

// LoadChromosome loads the features of one document into genomeID.
func (l *Loader) LoadChromosome(ctx context.Context, genomeID int64, doc *Annotation) (ChromosomeStats, error) {
	return l.loadChromosome(ctx, l.store, genomeID, doc)
}

func (l *Loader) loadChromosome(ctx context.Context, st Store, genomeID int64, doc *Annotation) (ChromosomeStats, error) {
	var stats ChromosomeStats

	chromosomeID, err := st.FindOrCreateChromosome(ctx, genomeID, doc.Accession)
	if err != nil {
		return stats, fmt.Errorf("chromosome %s: %w", doc.Accession, err)
	}

	if doc.Organism != "" {
		if err := st.SetGenomeMetadata(ctx, genomeID, doc.Organism, ""); err != nil {
			return stats, fmt.Errorf("chromosome %s: %w", doc.Accession, err)
		}
	}

	taxonSeen := false
	for i, f := range doc.Features {
		stats.Features++

		if f.Type == FeatureSource && !taxonSeen {
			for _, ref := range f.Qualifier("db_xref") {
				source, id, ok := splitXref(ref)
				if !ok || source != "taxon" {
					continue
				}
				if err := st.SetGenomeMetadata(ctx, genomeID, "", id); err != nil {
					return stats, fmt.Errorf("chromosome %s: %w", doc.Accession, err)
				}
				taxonSeen = true
				break
			}
		}

		if f.Type != FeatureCDS {
			stats.Ignored++
			l.metrics.GenomeFeaturesTotal.WithLabelValues("ignored").Inc()
			continue
		}

		created, n, err := l.loadFeature(ctx, st, chromosomeID, doc.Accession, i, f)
		if err != nil {
			return stats, fmt.Errorf("chromosome %s feature %d: %w", doc.Accession, i, err)
		}
		stats.Aliases += n
		switch created {
		case featureCreated:
			stats.Created++
		case featureDuplicate:
			stats.Duplicates++
		case featureSkipped:
			stats.Skipped++
		}
		l.metrics.GenomeFeaturesTotal.WithLabelValues(string(created)).Inc()
	}

	l.logger.Debug("chromosome loaded",
		"accession", doc.Accession,
		"features", stats.Features,
		"genes_created", stats.Created,
		"duplicates", stats.Duplicates,
		"skipped", stats.Skipped,
		"aliases", stats.Aliases,
	)
	return stats, nil
}

type featureOutcome string

const (
	featureCreated   featureOutcome = "created"
	featureDuplicate featureOutcome = "duplicate"
	featureSkipped   featureOutcome = "skipped"
)

// loadFeature settles the gene of one CDS feature and records its aliases.
// Returns the outcome and the number of alias calls made.
func (l *Loader) loadFeature(ctx context.Context, st Store, chromosomeID int64, accession string, index int, f Feature) (featureOutcome, int, error) {
	ident, ok := ResolveIdentity(f)
	if !ok {
		l.logger.Error("no locus_tag or gene name for gene",
			"index", index,
			"chromosome", accession,
		)
		return featureSkipped, 0, nil
	}
	if ident.Fallback {
		l.limiter.Emit(WarnLocusTagFallback, "no locus_tag for gene, using gene name as identifier",
			"gene", ident.GeneQualifier,
		)
	}

	geneID, created, err := st.FindOrCreateGene(ctx, GeneRecord{
		ID:           ident.ID,
		LocusTag:     ident.LocusTag,
		Name:         ident.Name,
		ChromosomeID: chromosomeID,
		LeftPos:      f.Start,
		RightPos:     f.End,
		Strand:       f.StrandSymbol(),
	})
	if err != nil {
		return "", 0, err
	}

	outcome := featureCreated
	if !created {
		// Positions stay those of the first feature seen for this gene.
		outcome = featureDuplicate
		l.limiter.Emit(WarnDuplicateGene, "duplicate gene on chromosome",
			"gene", ident.ID,
			"chromosome", accession,
		)
	}

	aliases := featureAliases(f, ident)
	for _, a := range aliases {
		l.metrics.GenomeAliasesTotal.WithLabelValues(a.Source).Inc()
		a.OwnerType = OwnerGene
		a.OwnerID = geneID
		if _, err := st.FindOrCreateAlias(ctx, a); err != nil {
			return "", 0, fmt.Errorf("alias %s %q: %w", a.Source, a.Value, err)
		}
	}

	return outcome, len(aliases), nil
}

// featureAliases lists the aliases a feature carries, in load order.
// Owner fields are left for the caller.
func featureAliases(f Feature, ident Identity) []AliasRecord {
	var out []AliasRecord
	add := func(value, source string) {
		if value != "" {
			out = append(out, AliasRecord{Value: value, Source: source})
		}
	}

	add(ident.LocusTag, AliasLocusTag)
	add(ident.GeneQualifier, AliasName)

	for _, ref := range f.Qualifier("gene_synonym") {
		for _, syn := range splitTokens(ref, ";") {
			add(syn, AliasSynonym)
		}
	}

	for _, ref := range f.Qualifier("db_xref") {
		if source, id, ok := splitXref(ref); ok {
			add(id, source)
		}
	}

	for _, ref := range f.Qualifier("old_locus_tag") {
		for _, syn := range splitTokens(ref, ";") {
			add(syn, AliasOldLocusTag)
		}
	}

	for _, note := range f.Qualifier("note") {
		for _, value := range splitTokens(note, ";") {
			parts := splitTokens(value, ":")
			if len(parts) == 2 && parts[0] == "ORF_ID" {
				add(parts[1], AliasORFID)
			}
		}
	}

	return out
}
