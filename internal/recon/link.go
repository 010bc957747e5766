package recon

import "github.com/roach88/metnet/internal/model"

// LinkOptions tunes the Matrix Linker.
type LinkOptions struct {
	// AttachAllCopies attaches a row to every copy found while probing
	// instead of stopping at the first one.
	AttachAllCopies bool
}

// LinkReport summarizes one linking pass.
type LinkReport struct {
	// Linked counts coefficients attached to a reaction.
	Linked int

	// Duplicates counts rows skipped because the reaction already held the metabolite.
	Duplicates int

	// Warnings lists dropped rows, one entry per row, in input order.
	Warnings []Warning
}

// Link attaches stoichiometry rows to the reactions of m.
//
// For each row the metabolite is resolved by its compartmentalized id; a
// missing metabolite drops the row with a MissingMetaboliteWarning. The
// reaction is resolved by exact id, otherwise by probing CopyID(id, n) for
// n = 1..max, where max is the highest copy number among reactions resolved
// from that id. Probing stops at the first hit unless AttachAllCopies is
// set. No hit drops the row with a MissingReactionWarning.
//
// A metabolite already present in a reaction's map is never overwritten.
func Link(m *model.Model, rows []model.StoichiometryRow, opts LinkOptions) LinkReport {
	maxCopy := make(map[string]int)
	for _, r := range m.Reactions.All() {
		if r.ID == r.BaseID {
			continue
		}
		if r.CopyNumber > maxCopy[r.BaseID] {
			maxCopy[r.BaseID] = r.CopyNumber
		}
	}

	report := LinkReport{Warnings: []Warning{}}
	for _, row := range rows {
		metID := model.MetaboliteID(row.ComponentID, row.CompartmentID)
		if !m.Metabolites.Has(metID) {
			report.Warnings = append(report.Warnings, Warning{
				Code:          MissingMetaboliteWarning,
				ReactionID:    row.ReactionID,
				ComponentID:   row.ComponentID,
				CompartmentID: row.CompartmentID,
			})
			continue
		}

		targets := probeReactions(m, row.ReactionID, maxCopy[row.ReactionID], opts.AttachAllCopies)
		if len(targets) == 0 {
			report.Warnings = append(report.Warnings, Warning{
				Code:          MissingReactionWarning,
				ReactionID:    row.ReactionID,
				ComponentID:   row.ComponentID,
				CompartmentID: row.CompartmentID,
			})
			continue
		}

		for _, r := range targets {
			if r.AddMetabolite(metID, row.Coefficient) {
				report.Linked++
			} else {
				report.Duplicates++
			}
		}
	}

	return report
}

// probeReactions returns the reactions a matrix row refers to.
// The loop is bounded by limit so a row naming an unknown id terminates
// without an unbounded search.
func probeReactions(m *model.Model, id string, limit int, all bool) []*model.Reaction {
	if r, ok := m.Reactions.Get(id); ok {
		return []*model.Reaction{r}
	}

	var out []*model.Reaction
	for n := 1; n <= limit; n++ {
		r, ok := m.Reactions.Get(model.CopyID(id, n))
		if !ok || r.BaseID != id {
			continue
		}
		out = append(out, r)
		if !all {
			break
		}
	}
	return out
}
