package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/metnet/internal/model"
)

// buildModel assembles reactions and metabolites without a namer.
func buildModel(t *testing.T, reactions []*model.Reaction, metabolites ...string) *model.Model {
	t.Helper()
	m := model.NewModel("test")
	for _, r := range reactions {
		require.NoError(t, m.Reactions.Add(r.ID, r))
	}
	for _, id := range metabolites {
		require.NoError(t, m.Metabolites.Add(id, &model.Metabolite{ID: id}))
	}
	return m
}

func stoich(coef float64, reactionID, component, compartment string) model.StoichiometryRow {
	return model.StoichiometryRow{
		Coefficient:   coef,
		ReactionID:    reactionID,
		ComponentID:   component,
		CompartmentID: compartment,
	}
}

func TestLink_ExactMatch(t *testing.T) {
	m := buildModel(t, []*model.Reaction{reaction("PGI", 1)}, "g6p_c", "f6p_c")

	report := Link(m, []model.StoichiometryRow{
		stoich(-1, "PGI", "g6p", "c"),
		stoich(1, "PGI", "f6p", "c"),
	}, LinkOptions{})

	assert.Equal(t, 2, report.Linked)
	assert.Empty(t, report.Warnings)
	pgi, _ := m.Reactions.Get("PGI")
	assert.Equal(t, map[string]float64{"g6p_c": -1, "f6p_c": 1}, pgi.Stoichiometry)
}

func TestLink_MissingMetaboliteDropsRow(t *testing.T) {
	m := buildModel(t, []*model.Reaction{reaction("PGI", 1)}, "g6p_c")

	report := Link(m, []model.StoichiometryRow{
		stoich(-1, "PGI", "g6p", "c"),
		stoich(1, "PGI", "f6p", "c"),
		stoich(1, "PGI", "f6p", "c"),
	}, LinkOptions{})

	require.Len(t, report.Warnings, 2, "one warning per dropped row")
	for _, w := range report.Warnings {
		assert.Equal(t, MissingMetaboliteWarning, w.Code)
		assert.Equal(t, "f6p", w.ComponentID)
		assert.Equal(t, "c", w.CompartmentID)
		assert.Equal(t, "PGI", w.ReactionID)
	}
	pgi, _ := m.Reactions.Get("PGI")
	assert.Equal(t, map[string]float64{"g6p_c": -1}, pgi.Stoichiometry)
}

func TestLink_ProbesPastMissingCopy(t *testing.T) {
	// PGI was resolved to PGI_copy2 and PGI_copy3; there is no PGI_copy1.
	resolved := ResolveDuplicates([]*model.Reaction{reaction("PGI", 2), reaction("PGI", 3)})
	m := buildModel(t, resolved, "g6p_c")

	report := Link(m, []model.StoichiometryRow{stoich(-1, "PGI", "g6p", "c")}, LinkOptions{})

	assert.Empty(t, report.Warnings)
	assert.Equal(t, 1, report.Linked)
	copy2, _ := m.Reactions.Get("PGI_copy2")
	copy3, _ := m.Reactions.Get("PGI_copy3")
	assert.Equal(t, map[string]float64{"g6p_c": -1}, copy2.Stoichiometry, "first match wins")
	assert.Empty(t, copy3.Stoichiometry)
}

func TestLink_AttachAllCopies(t *testing.T) {
	resolved := ResolveDuplicates([]*model.Reaction{reaction("PGI", 1), reaction("PGI", 3)})
	m := buildModel(t, resolved, "g6p_c", "f6p_c")

	report := Link(m, []model.StoichiometryRow{
		stoich(-1, "PGI", "g6p", "c"),
		stoich(1, "PGI", "f6p", "c"),
	}, LinkOptions{AttachAllCopies: true})

	assert.Empty(t, report.Warnings)
	assert.Equal(t, 4, report.Linked)
	for _, id := range []string{"PGI_copy1", "PGI_copy3"} {
		r, _ := m.Reactions.Get(id)
		assert.Equal(t, map[string]float64{"g6p_c": -1, "f6p_c": 1}, r.Stoichiometry, id)
	}
}

func TestLink_MissingReaction(t *testing.T) {
	m := buildModel(t, []*model.Reaction{reaction("PFK", 1)}, "g6p_c")

	report := Link(m, []model.StoichiometryRow{stoich(-1, "PGI", "g6p", "c")}, LinkOptions{})

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, MissingReactionWarning, report.Warnings[0].Code)
	assert.Equal(t, "PGI", report.Warnings[0].ReactionID)
	assert.Equal(t, 0, report.Linked)
}

func TestLink_ProbeIgnoresUnrelatedCopyNamedReaction(t *testing.T) {
	// "PGI_copy1" exists as a genuine, unrenamed reaction; PGI itself was
	// resolved to copies 2 and 3. Probing must not land on the unrelated one.
	resolved := ResolveDuplicates([]*model.Reaction{
		reaction("PGI", 2),
		reaction("PGI", 3),
		reaction("PGI_copy1", 1),
	})
	m := buildModel(t, resolved, "g6p_c")

	report := Link(m, []model.StoichiometryRow{stoich(-1, "PGI", "g6p", "c")}, LinkOptions{})
	require.Empty(t, report.Warnings)

	unrelated, _ := m.Reactions.Get("PGI_copy1")
	copy2, _ := m.Reactions.Get("PGI_copy2")
	assert.Empty(t, unrelated.Stoichiometry)
	assert.Equal(t, map[string]float64{"g6p_c": -1}, copy2.Stoichiometry)
}

func TestLink_DuplicateRowsIdempotent(t *testing.T) {
	m := buildModel(t, []*model.Reaction{reaction("PGI", 1)}, "g6p_c")

	report := Link(m, []model.StoichiometryRow{
		stoich(-1, "PGI", "g6p", "c"),
		stoich(-1, "PGI", "g6p", "c"),
		stoich(-5, "PGI", "g6p", "c"),
	}, LinkOptions{})

	assert.Equal(t, 1, report.Linked)
	assert.Equal(t, 2, report.Duplicates)
	assert.Empty(t, report.Warnings, "duplicates are skipped silently")
	pgi, _ := m.Reactions.Get("PGI")
	assert.Equal(t, map[string]float64{"g6p_c": -1}, pgi.Stoichiometry)
}

func TestLink_EmptyRows(t *testing.T) {
	m := buildModel(t, []*model.Reaction{reaction("PGI", 1)})
	report := Link(m, nil, LinkOptions{})
	assert.Equal(t, 0, report.Linked)
	assert.NotNil(t, report.Warnings)
	assert.Empty(t, report.Warnings)
}

func TestWarning_String(t *testing.T) {
	w := Warning{Code: MissingMetaboliteWarning, ReactionID: "PGI", ComponentID: "g6p", CompartmentID: "c"}
	assert.Equal(t, "metabolite g6p not found in compartment c for reaction PGI", w.String())

	w.Code = MissingReactionWarning
	assert.Equal(t, "reaction PGI not found for metabolite g6p in compartment c", w.String())
}
