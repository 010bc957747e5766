package recon

import (
	"context"
	"fmt"
	"sort"

	"github.com/roach88/metnet/internal/model"
)

// CompartmentNamer looks up display names for compartment identifiers.
// Identifiers without a known name are simply absent from the result.
type CompartmentNamer interface {
	CompartmentNames(ctx context.Context, ids []string) (map[string]string, error)
}

// Assembly is the aggregated and resolved input of Assemble.
type Assembly struct {
	Genes       []GeneGroup
	Reactions   []*model.Reaction
	Metabolites []MetaboliteGroup
}

// Assemble builds the keyed collections of a model.
//
// Metabolite groups with a NULL component or compartment are discarded.
// Any identifier repeated within one kind returns a *DuplicateIdentifierError.
// The compartment table holds exactly the compartments referenced by
// assembled metabolites, named through namer; a compartment the namer does
// not know keeps an empty name. namer may be nil.
func Assemble(ctx context.Context, modelID string, in Assembly, namer CompartmentNamer) (*model.Model, error) {
	m := model.NewModel(modelID)

	for _, g := range in.Genes {
		gene := &model.Gene{
			ID:      g.Key,
			Name:    g.First.Name,
			Aliases: g.Aliases,
		}
		if err := m.Genes.Add(gene.ID, gene); err != nil {
			return nil, &DuplicateIdentifierError{Kind: KindGene, ID: gene.ID}
		}
	}

	for _, r := range in.Reactions {
		if r.Stoichiometry == nil {
			r.Stoichiometry = make(map[string]float64)
		}
		if err := m.Reactions.Add(r.ID, r); err != nil {
			return nil, &DuplicateIdentifierError{Kind: KindReaction, ID: r.ID}
		}
	}

	referenced := make(map[string]struct{})
	for _, g := range in.Metabolites {
		if !g.Key.Valid() {
			continue
		}
		row := g.First
		met := &model.Metabolite{
			ID:            model.MetaboliteID(g.Key.ComponentID, g.Key.CompartmentID),
			ComponentID:   g.Key.ComponentID,
			CompartmentID: g.Key.CompartmentID,
			Name:          row.Name,
			Formula:       row.Formula,
			Charge:        row.Charge,
			Aliases:       g.Aliases,
		}
		if err := m.Metabolites.Add(met.ID, met); err != nil {
			return nil, &DuplicateIdentifierError{Kind: KindMetabolite, ID: met.ID}
		}
		referenced[met.CompartmentID] = struct{}{}
	}

	ids := make([]string, 0, len(referenced))
	for id := range referenced {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var names map[string]string
	if namer != nil && len(ids) > 0 {
		var err error
		names, err = namer.CompartmentNames(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("lookup compartment names: %w", err)
		}
	}
	for _, id := range ids {
		m.Compartments[id] = names[id]
	}

	return m, nil
}
