package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/metnet/internal/model"
	"github.com/roach88/metnet/internal/recon"
)

// Alias owner types.
const (
	OwnerGene           = "gene"
	OwnerModelGene      = "model_gene"
	OwnerModelReaction  = "model_reaction"
	OwnerModelComponent = "model_compartmentalized_component"
)

// ModelRows returns the four row streams of a model.
// Returns an error wrapping recon.ErrModelNotFound if modelID is unknown.
func (s *Store) ModelRows(ctx context.Context, modelID string) (*model.Rows, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM model WHERE public_id = ?`, modelID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", recon.ErrModelNotFound, modelID)
	}
	if err != nil {
		return nil, fmt.Errorf("query model: %w", err)
	}

	rows := &model.Rows{}
	if rows.Genes, err = s.geneRows(ctx, id); err != nil {
		return nil, err
	}
	if rows.Reactions, err = s.reactionRows(ctx, id); err != nil {
		return nil, err
	}
	if rows.Metabolites, err = s.metaboliteRows(ctx, id); err != nil {
		return nil, err
	}
	if rows.Stoichiometry, err = s.stoichiometryRows(ctx, id); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) geneRows(ctx context.Context, modelID int64) ([]model.GeneRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.public_id, g.name, a.value
		FROM model_gene mg
		JOIN gene g ON g.id = mg.gene_id
		LEFT JOIN alias a ON a.owner_type = ? AND a.owner_id = mg.id
		WHERE mg.model_id = ?
		ORDER BY mg.id ASC, a.id ASC
	`, OwnerModelGene, modelID)
	if err != nil {
		return nil, fmt.Errorf("query genes: %w", err)
	}
	defer rows.Close()

	out := []model.GeneRow{}
	for rows.Next() {
		var (
			r           model.GeneRow
			name, alias sql.NullString
		)
		if err := rows.Scan(&r.ID, &name, &alias); err != nil {
			return nil, fmt.Errorf("scan gene: %w", err)
		}
		r.Name, r.Alias = name.String, alias.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genes: %w", err)
	}
	return out, nil
}

func (s *Store) reactionRows(ctx context.Context, modelID int64) ([]model.ReactionRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT mr.id, r.public_id, r.name, mr.gene_reaction_rule,
		       mr.lower_bound, mr.upper_bound, mr.objective_coefficient,
		       mr.subsystem, mr.copy_number, a.value
		FROM model_reaction mr
		JOIN reaction r ON r.id = mr.reaction_id
		LEFT JOIN alias a ON a.owner_type = ? AND a.owner_id = mr.id
		WHERE mr.model_id = ?
		ORDER BY mr.id ASC, a.id ASC
	`, OwnerModelReaction, modelID)
	if err != nil {
		return nil, fmt.Errorf("query reactions: %w", err)
	}
	defer rows.Close()

	out := []model.ReactionRow{}
	for rows.Next() {
		var (
			r           model.ReactionRow
			name, alias sql.NullString
		)
		if err := rows.Scan(
			&r.InstanceID, &r.ID, &name, &r.GeneReactionRule,
			&r.LowerBound, &r.UpperBound, &r.ObjectiveCoefficient,
			&r.Subsystem, &r.CopyNumber, &alias,
		); err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		r.Name, r.Alias = name.String, alias.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reactions: %w", err)
	}
	return out, nil
}

func (s *Store) metaboliteRows(ctx context.Context, modelID int64) ([]model.MetaboliteRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.public_id, comp.public_id, c.name, mcc.formula, mcc.charge, a.value
		FROM model_compartmentalized_component mcc
		LEFT JOIN compartmentalized_component cc ON cc.id = mcc.compartmentalized_component_id
		LEFT JOIN component c ON c.id = cc.component_id
		LEFT JOIN compartment comp ON comp.id = cc.compartment_id
		LEFT JOIN alias a ON a.owner_type = ? AND a.owner_id = mcc.id
		WHERE mcc.model_id = ?
		ORDER BY mcc.id ASC, a.id ASC
	`, OwnerModelComponent, modelID)
	if err != nil {
		return nil, fmt.Errorf("query metabolites: %w", err)
	}
	defer rows.Close()

	out := []model.MetaboliteRow{}
	for rows.Next() {
		var (
			r                                         model.MetaboliteRow
			component, compartment, name, formula, al sql.NullString
			charge                                    sql.NullInt64
		)
		if err := rows.Scan(&component, &compartment, &name, &formula, &charge, &al); err != nil {
			return nil, fmt.Errorf("scan metabolite: %w", err)
		}
		r.ComponentID = component.String
		r.CompartmentID = compartment.String
		r.Name = name.String
		r.Formula = formula.String
		r.Alias = al.String
		if charge.Valid {
			c := int(charge.Int64)
			r.Charge = &c
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metabolites: %w", err)
	}
	return out, nil
}

// stoichiometryRows returns the matrix entries of every reaction the model
// uses, keyed by public reaction id. Entries whose metabolite is not in the
// model are returned too; the linker reports them.
func (s *Store) stoichiometryRows(ctx context.Context, modelID int64) ([]model.StoichiometryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rm.stoichiometry, r.public_id, c.public_id, comp.public_id
		FROM reaction_matrix rm
		JOIN reaction r ON r.id = rm.reaction_id
		JOIN compartmentalized_component cc ON cc.id = rm.compartmentalized_component_id
		JOIN component c ON c.id = cc.component_id
		JOIN compartment comp ON comp.id = cc.compartment_id
		WHERE rm.reaction_id IN (
			SELECT reaction_id FROM model_reaction WHERE model_id = ?
		)
		ORDER BY rm.id ASC
	`, modelID)
	if err != nil {
		return nil, fmt.Errorf("query stoichiometry: %w", err)
	}
	defer rows.Close()

	out := []model.StoichiometryRow{}
	for rows.Next() {
		var r model.StoichiometryRow
		if err := rows.Scan(&r.Coefficient, &r.ReactionID, &r.ComponentID, &r.CompartmentID); err != nil {
			return nil, fmt.Errorf("scan stoichiometry: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stoichiometry: %w", err)
	}
	return out, nil
}

// CompartmentNames returns the known names of the given compartment ids.
// Unknown ids and compartments without a name are absent from the result.
func (s *Store) CompartmentNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT public_id, name FROM compartment WHERE name IS NOT NULL AND public_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query compartments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan compartment: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compartments: %w", err)
	}
	return names, nil
}
