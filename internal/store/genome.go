package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/metnet/internal/genome"
)

var (
	_ genome.Store      = (*Store)(nil)
	_ genome.Transactor = (*Store)(nil)
	_ genome.Store      = genomeWriter{}
)

// genomeWriter runs the genome queries against a database or a transaction.
type genomeWriter struct {
	q execQuerier
}

// GenomeExists reports whether a genome with ref's accession is stored.
func (s *Store) GenomeExists(ctx context.Context, ref genome.GenomeRef) (bool, error) {
	return genomeWriter{s.db}.GenomeExists(ctx, ref)
}

// CreateGenome inserts a genome and returns its row id.
// Fails on an existing accession (UNIQUE constraint).
func (s *Store) CreateGenome(ctx context.Context, ref genome.GenomeRef) (int64, error) {
	return genomeWriter{s.db}.CreateGenome(ctx, ref)
}

// SetGenomeMetadata fills organism and taxon id only where they are NULL.
func (s *Store) SetGenomeMetadata(ctx context.Context, genomeID int64, organism, taxonID string) error {
	return genomeWriter{s.db}.SetGenomeMetadata(ctx, genomeID, organism, taxonID)
}

// FindOrCreateChromosome returns the chromosome of genomeID with accession,
// creating it if needed.
func (s *Store) FindOrCreateChromosome(ctx context.Context, genomeID int64, accession string) (int64, error) {
	return genomeWriter{s.db}.FindOrCreateChromosome(ctx, genomeID, accession)
}

// FindOrCreateGene returns the gene with rec.ID on rec.ChromosomeID. A new
// gene records every field of rec; an existing gene is left untouched.
func (s *Store) FindOrCreateGene(ctx context.Context, rec genome.GeneRecord) (int64, bool, error) {
	return genomeWriter{s.db}.FindOrCreateGene(ctx, rec)
}

// FindOrCreateAlias returns the alias identified by all four fields of rec,
// creating it if needed.
func (s *Store) FindOrCreateAlias(ctx context.Context, rec genome.AliasRecord) (int64, error) {
	return genomeWriter{s.db}.FindOrCreateAlias(ctx, rec)
}

// InTx runs fn against a genome.Store bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(genome.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(genomeWriter{tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GenomeMetadata returns the organism and taxon id of a genome.
func (s *Store) GenomeMetadata(ctx context.Context, genomeID int64) (organism, taxonID string, err error) {
	var org, taxon sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT organism, taxon_id FROM genome WHERE id = ?
	`, genomeID).Scan(&org, &taxon)
	if err != nil {
		return "", "", fmt.Errorf("query genome metadata: %w", err)
	}
	return org.String, taxon.String, nil
}

func (w genomeWriter) GenomeExists(ctx context.Context, ref genome.GenomeRef) (bool, error) {
	var n int
	err := w.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM genome WHERE accession_type = ? AND accession_value = ?
	`, ref.AccessionType, ref.AccessionValue).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query genome: %w", err)
	}
	return n > 0, nil
}

func (w genomeWriter) CreateGenome(ctx context.Context, ref genome.GenomeRef) (int64, error) {
	res, err := w.q.ExecContext(ctx, `
		INSERT INTO genome (accession_type, accession_value) VALUES (?, ?)
	`, ref.AccessionType, ref.AccessionValue)
	if err != nil {
		return 0, fmt.Errorf("create genome: %w", err)
	}
	return res.LastInsertId()
}

func (w genomeWriter) SetGenomeMetadata(ctx context.Context, genomeID int64, organism, taxonID string) error {
	_, err := w.q.ExecContext(ctx, `
		UPDATE genome
		SET organism = COALESCE(organism, ?),
		    taxon_id = COALESCE(taxon_id, ?)
		WHERE id = ?
	`, nullString(organism), nullString(taxonID), genomeID)
	if err != nil {
		return fmt.Errorf("set genome metadata: %w", err)
	}
	return nil
}

func (w genomeWriter) FindOrCreateChromosome(ctx context.Context, genomeID int64, accession string) (int64, error) {
	args := []any{genomeID, accession}
	id, err := findOrCreate(ctx, w.q,
		`INSERT INTO chromosome (genome_id, ncbi_accession) VALUES (?, ?) ON CONFLICT DO NOTHING`, args,
		`SELECT id FROM chromosome WHERE genome_id = ? AND ncbi_accession = ?`, args...,
	)
	if err != nil {
		return 0, fmt.Errorf("find or create chromosome %s: %w", accession, err)
	}
	return id, nil
}

func (w genomeWriter) FindOrCreateGene(ctx context.Context, rec genome.GeneRecord) (int64, bool, error) {
	var id int64
	err := w.q.QueryRowContext(ctx, `
		SELECT id FROM gene WHERE chromosome_id = ? AND public_id = ?
	`, rec.ChromosomeID, rec.ID).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("query gene %s: %w", rec.ID, err)
	}

	res, err := w.q.ExecContext(ctx, `
		INSERT INTO gene (public_id, name, locus_tag, chromosome_id, leftpos, rightpos, strand)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		nullString(rec.Name),
		nullString(rec.LocusTag),
		rec.ChromosomeID,
		rec.LeftPos,
		rec.RightPos,
		nullString(rec.Strand),
	)
	if err != nil {
		return 0, false, fmt.Errorf("create gene %s: %w", rec.ID, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("create gene %s: %w", rec.ID, err)
	}
	return id, true, nil
}

func (w genomeWriter) FindOrCreateAlias(ctx context.Context, rec genome.AliasRecord) (int64, error) {
	return findOrCreateAlias(ctx, w.q, rec.OwnerType, rec.OwnerID, rec.Value, rec.Source)
}

// Aliases returns the (source, value) pairs of one owner in insertion order.
func (s *Store) Aliases(ctx context.Context, ownerType string, ownerID int64) ([][2]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, value FROM alias
		WHERE owner_type = ? AND owner_id = ?
		ORDER BY id ASC
	`, ownerType, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query aliases: %w", err)
	}
	defer rows.Close()

	out := [][2]string{}
	for rows.Next() {
		var source, value string
		if err := rows.Scan(&source, &value); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		out = append(out, [2]string{source, value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aliases: %w", err)
	}
	return out, nil
}

// execQuerier is satisfied by *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// findOrCreate runs insert, which must tolerate an existing row (ON CONFLICT),
// then selects the row id.
func findOrCreate(ctx context.Context, db execQuerier, insert string, insertArgs []any, selectID string, selectArgs ...any) (int64, error) {
	if _, err := db.ExecContext(ctx, insert, insertArgs...); err != nil {
		return 0, err
	}
	var id int64
	if err := db.QueryRowContext(ctx, selectID, selectArgs...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func findOrCreateAlias(ctx context.Context, db execQuerier, ownerType string, ownerID int64, value, source string) (int64, error) {
	args := []any{ownerType, ownerID, value, source}
	id, err := findOrCreate(ctx, db,
		`INSERT INTO alias (owner_type, owner_id, value, source) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`, args,
		`SELECT id FROM alias WHERE owner_type = ? AND owner_id = ? AND value = ? AND source = ?`, args...,
	)
	if err != nil {
		return 0, fmt.Errorf("find or create alias %s %q: %w", source, value, err)
	}
	return id, nil
}
