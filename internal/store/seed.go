package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SourceOldID is the alias source of seeded model aliases.
const SourceOldID = "old_id"

// SeedStats counts the dataset entries Seed processed.
type SeedStats struct {
	Models         int
	ModelGenes     int
	ModelReactions int
	Metabolites    int
	MatrixEntries  int
	Aliases        int
}

// Seed writes ds in one transaction. Every insert is find-or-create, so
// seeding the same dataset twice leaves the database unchanged.
func (s *Store) Seed(ctx context.Context, ds *Dataset) (SeedStats, error) {
	var stats SeedStats

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	sd := &seeder{tx: tx, stats: &stats}
	if err := sd.seed(ctx, ds); err != nil {
		return SeedStats{}, fmt.Errorf("seed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return SeedStats{}, fmt.Errorf("seed: commit: %w", err)
	}
	return stats, nil
}

type seeder struct {
	tx    *sql.Tx
	stats *SeedStats
}

func (sd *seeder) seed(ctx context.Context, ds *Dataset) error {
	for _, c := range ds.Compartments {
		if _, err := sd.compartment(ctx, c.ID, c.Name); err != nil {
			return err
		}
	}
	for _, c := range ds.Components {
		if _, err := sd.component(ctx, c.ID, c.Name); err != nil {
			return err
		}
	}
	for _, r := range ds.Reactions {
		if err := sd.reaction(ctx, r); err != nil {
			return err
		}
	}
	for _, m := range ds.Models {
		if err := sd.model(ctx, m); err != nil {
			return fmt.Errorf("model %s: %w", m.ID, err)
		}
	}
	return nil
}

// named finds or creates a (public_id, name) row. A non-empty name fills a
// NULL name on an existing row.
func (sd *seeder) named(ctx context.Context, table, publicID, name string) (int64, error) {
	id, err := findOrCreate(ctx, sd.tx,
		`INSERT INTO `+table+` (public_id, name) VALUES (?, ?)
		 ON CONFLICT(public_id) DO UPDATE SET name = COALESCE(name, excluded.name)`,
		[]any{publicID, nullString(name)},
		`SELECT id FROM `+table+` WHERE public_id = ?`, publicID,
	)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", table, publicID, err)
	}
	return id, nil
}

func (sd *seeder) compartment(ctx context.Context, id, name string) (int64, error) {
	return sd.named(ctx, "compartment", id, name)
}

func (sd *seeder) component(ctx context.Context, id, name string) (int64, error) {
	return sd.named(ctx, "component", id, name)
}

func (sd *seeder) compartmentalized(ctx context.Context, component, compartment string) (int64, error) {
	componentID, err := sd.component(ctx, component, "")
	if err != nil {
		return 0, err
	}
	compartmentID, err := sd.compartment(ctx, compartment, "")
	if err != nil {
		return 0, err
	}
	args := []any{componentID, compartmentID}
	id, err := findOrCreate(ctx, sd.tx,
		`INSERT INTO compartmentalized_component (component_id, compartment_id) VALUES (?, ?) ON CONFLICT DO NOTHING`, args,
		`SELECT id FROM compartmentalized_component WHERE component_id = ? AND compartment_id = ?`, args...,
	)
	if err != nil {
		return 0, fmt.Errorf("compartmentalized component %s_%s: %w", component, compartment, err)
	}
	return id, nil
}

func (sd *seeder) reaction(ctx context.Context, r ReactionSpec) error {
	reactionID, err := sd.named(ctx, "reaction", r.ID, r.Name)
	if err != nil {
		return err
	}
	for _, e := range r.Stoichiometry {
		ccID, err := sd.compartmentalized(ctx, e.Component, e.Compartment)
		if err != nil {
			return err
		}
		res, err := sd.tx.ExecContext(ctx, `
			INSERT INTO reaction_matrix (reaction_id, compartmentalized_component_id, stoichiometry)
			VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING
		`, reactionID, ccID, e.Coefficient)
		if err != nil {
			return fmt.Errorf("reaction %s matrix: %w", r.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			sd.stats.MatrixEntries++
		}
	}
	return nil
}

func (sd *seeder) model(ctx context.Context, m ModelSpec) error {
	modelID, err := findOrCreate(ctx, sd.tx,
		`INSERT INTO model (public_id) VALUES (?) ON CONFLICT DO NOTHING`, []any{m.ID},
		`SELECT id FROM model WHERE public_id = ?`, m.ID,
	)
	if err != nil {
		return err
	}
	sd.stats.Models++

	for _, g := range m.Genes {
		geneID, err := sd.modelGene(ctx, g)
		if err != nil {
			return err
		}
		args := []any{modelID, geneID}
		ownerID, err := findOrCreate(ctx, sd.tx,
			`INSERT INTO model_gene (model_id, gene_id) VALUES (?, ?) ON CONFLICT DO NOTHING`, args,
			`SELECT id FROM model_gene WHERE model_id = ? AND gene_id = ?`, args...,
		)
		if err != nil {
			return fmt.Errorf("model gene %s: %w", g.ID, err)
		}
		sd.stats.ModelGenes++
		if err := sd.aliases(ctx, OwnerModelGene, ownerID, g.Aliases); err != nil {
			return err
		}
	}

	for _, r := range m.Reactions {
		reactionID, err := sd.named(ctx, "reaction", r.Reaction, "")
		if err != nil {
			return err
		}
		copyNumber := r.CopyNumber
		if copyNumber == 0 {
			copyNumber = 1
		}
		ownerID, err := findOrCreate(ctx, sd.tx, `
			INSERT INTO model_reaction
			(model_id, reaction_id, copy_number, gene_reaction_rule, lower_bound, upper_bound, objective_coefficient, subsystem)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`, []any{
			modelID, reactionID, copyNumber,
			r.GeneReactionRule, r.LowerBound, r.UpperBound, r.ObjectiveCoefficient, r.Subsystem,
		}, `
			SELECT id FROM model_reaction
			WHERE model_id = ? AND reaction_id = ? AND copy_number = ?
		`, modelID, reactionID, copyNumber)
		if err != nil {
			return fmt.Errorf("model reaction %s copy %d: %w", r.Reaction, copyNumber, err)
		}
		sd.stats.ModelReactions++
		if err := sd.aliases(ctx, OwnerModelReaction, ownerID, r.Aliases); err != nil {
			return err
		}
	}

	for _, mm := range m.Metabolites {
		ccID, err := sd.compartmentalized(ctx, mm.Component, mm.Compartment)
		if err != nil {
			return err
		}
		var charge sql.NullInt64
		if mm.Charge != nil {
			charge = sql.NullInt64{Int64: int64(*mm.Charge), Valid: true}
		}
		ownerID, err := findOrCreate(ctx, sd.tx, `
			INSERT INTO model_compartmentalized_component
			(model_id, compartmentalized_component_id, formula, charge)
			VALUES (?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`, []any{modelID, ccID, nullString(mm.Formula), charge}, `
			SELECT id FROM model_compartmentalized_component
			WHERE model_id = ? AND compartmentalized_component_id = ?
		`, modelID, ccID)
		if err != nil {
			return fmt.Errorf("model metabolite %s_%s: %w", mm.Component, mm.Compartment, err)
		}
		sd.stats.Metabolites++
		if err := sd.aliases(ctx, OwnerModelComponent, ownerID, mm.Aliases); err != nil {
			return err
		}
	}
	return nil
}

// modelGene finds or creates a gene with no chromosome.
func (sd *seeder) modelGene(ctx context.Context, g ModelGeneSpec) (int64, error) {
	var id int64
	err := sd.tx.QueryRowContext(ctx, `
		SELECT id FROM gene WHERE public_id = ? AND chromosome_id IS NULL
	`, g.ID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("gene %s: %w", g.ID, err)
	}
	res, err := sd.tx.ExecContext(ctx, `
		INSERT INTO gene (public_id, name) VALUES (?, ?)
	`, g.ID, nullString(g.Name))
	if err != nil {
		return 0, fmt.Errorf("gene %s: %w", g.ID, err)
	}
	return res.LastInsertId()
}

func (sd *seeder) aliases(ctx context.Context, ownerType string, ownerID int64, values []string) error {
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, err := findOrCreateAlias(ctx, sd.tx, ownerType, ownerID, v, SourceOldID); err != nil {
			return err
		}
		sd.stats.Aliases++
	}
	return nil
}
