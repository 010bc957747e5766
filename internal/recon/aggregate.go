package recon

import "github.com/roach88/metnet/internal/model"

// Group is one logical entity collapsed from the physical rows sharing Key.
// First is the first row observed for Key; Aliases holds every distinct
// non-empty alias seen for Key, in first-seen order.
type Group[K comparable, R any] struct {
	Key     K
	First   R
	Aliases []string
}

// Aggregate groups rows by key, in first-seen key order.
// Pure transform: rows are not modified and empty input yields an empty result.
func Aggregate[K comparable, R any](rows []R, key func(R) K, alias func(R) string) []Group[K, R] {
	groups := make([]Group[K, R], 0)
	index := make(map[K]int)
	seen := make([]map[string]struct{}, 0)

	for _, row := range rows {
		k := key(row)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, R]{Key: k, First: row, Aliases: []string{}})
			seen = append(seen, make(map[string]struct{}))
		}

		a := alias(row)
		if a == "" {
			continue
		}
		if _, dup := seen[i][a]; dup {
			continue
		}
		seen[i][a] = struct{}{}
		groups[i].Aliases = append(groups[i].Aliases, a)
	}

	return groups
}

// GeneGroup is a gene keyed by its public identifier.
type GeneGroup = Group[string, model.GeneRow]

// AggregateGenes groups gene rows by public identifier.
func AggregateGenes(rows []model.GeneRow) []GeneGroup {
	return Aggregate(rows,
		func(r model.GeneRow) string { return r.ID },
		func(r model.GeneRow) string { return r.Alias },
	)
}

// MetaboliteKey is the grouping key of a compartmentalized metabolite.
type MetaboliteKey struct {
	ComponentID   string
	CompartmentID string
}

// Valid reports whether neither half of the key is NULL.
func (k MetaboliteKey) Valid() bool {
	return k.ComponentID != "" && k.CompartmentID != ""
}

// MetaboliteGroup is a metabolite keyed by (component, compartment).
type MetaboliteGroup = Group[MetaboliteKey, model.MetaboliteRow]

// AggregateMetabolites groups metabolite rows by component and compartment.
// Groups with a NULL half are kept here and discarded by Assemble.
func AggregateMetabolites(rows []model.MetaboliteRow) []MetaboliteGroup {
	return Aggregate(rows,
		func(r model.MetaboliteRow) MetaboliteKey {
			return MetaboliteKey{ComponentID: r.ComponentID, CompartmentID: r.CompartmentID}
		},
		func(r model.MetaboliteRow) string { return r.Alias },
	)
}

// AggregateReactions groups reaction rows by physical instance, so rows that
// share a public identifier but not an instance stay separate candidates.
// Each candidate becomes a Reaction whose ID and BaseID are the public
// identifier; duplicates are settled later by ResolveDuplicates.
func AggregateReactions(rows []model.ReactionRow) []*model.Reaction {
	groups := Aggregate(rows,
		func(r model.ReactionRow) int64 { return r.InstanceID },
		func(r model.ReactionRow) string { return r.Alias },
	)

	out := make([]*model.Reaction, 0, len(groups))
	for _, g := range groups {
		row := g.First
		out = append(out, &model.Reaction{
			ID:                   row.ID,
			BaseID:               row.ID,
			Name:                 row.Name,
			GeneReactionRule:     row.GeneReactionRule,
			LowerBound:           row.LowerBound,
			UpperBound:           row.UpperBound,
			ObjectiveCoefficient: row.ObjectiveCoefficient,
			Subsystem:            row.Subsystem,
			CopyNumber:           row.CopyNumber,
			Aliases:              g.Aliases,
			Stoichiometry:        make(map[string]float64),
		})
	}
	return out
}
