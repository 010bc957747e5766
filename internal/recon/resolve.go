package recon

import (
	"maps"
	"slices"

	"github.com/roach88/metnet/internal/model"
)

// ResolveDuplicates renames reaction instances that share a public identifier.
//
// Every member of a group of two or more instances is renamed to
// model.CopyID(id, copyNumber). Singleton groups keep their identifier.
// The result depends only on the (identifier, copy number) pairs, never on
// input order; the output preserves input order. Input reactions are not
// modified.
//
// Resolving an already-resolved list is a no-op as long as copy numbers
// were distinct. Equal copy numbers within a group are a data defect and
// surface later as a DuplicateIdentifierError from Assemble.
func ResolveDuplicates(reactions []*model.Reaction) []*model.Reaction {
	counts := make(map[string]int, len(reactions))
	for _, r := range reactions {
		counts[r.ID]++
	}

	out := make([]*model.Reaction, 0, len(reactions))
	for _, r := range reactions {
		resolved := *r
		resolved.Aliases = slices.Clone(r.Aliases)
		resolved.Stoichiometry = maps.Clone(r.Stoichiometry)
		if counts[r.ID] > 1 {
			resolved.ID = model.CopyID(r.ID, r.CopyNumber)
		}
		out = append(out, &resolved)
	}
	return out
}
