package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/metnet/internal/model"
	"github.com/roach88/metnet/internal/recon"
)

func assertionFixture(t *testing.T) *Result {
	t.Helper()

	m := model.NewModel("m")
	require.NoError(t, m.Genes.Add("b0001", &model.Gene{ID: "b0001", Aliases: []string{"thrL"}}))
	require.NoError(t, m.Reactions.Add("PGI", &model.Reaction{
		ID:            "PGI",
		BaseID:        "PGI",
		Stoichiometry: map[string]float64{"g6p_c": -1, "f6p_c": 1},
	}))
	require.NoError(t, m.Metabolites.Add("g6p_c", &model.Metabolite{ID: "g6p_c", Aliases: []string{}}))
	m.Compartments["c"] = "cytosol"

	r := NewResult()
	r.Model = m
	r.Warnings = []recon.Warning{{
		Code:          recon.MissingReactionWarning,
		ReactionID:    "ADK",
		ComponentID:   "atp",
		CompartmentID: "c",
	}}
	return r
}

func TestEvaluate_Passing(t *testing.T) {
	r := assertionFixture(t)

	assertions := []Assertion{
		{Type: AssertEntityIDs, Kind: "gene", IDs: []string{"b0001"}},
		{Type: AssertEntityIDs, Kind: "reaction", IDs: []string{"PGI"}},
		{Type: AssertAliases, Kind: "gene", ID: "b0001", Aliases: []string{"thrL"}},
		{Type: AssertAliases, Kind: "metabolite", ID: "g6p_c"},
		{Type: AssertStoichiometry, Reaction: "PGI", Metabolites: map[string]float64{"f6p_c": 1, "g6p_c": -1}},
		{Type: AssertWarningCount, Code: "missing_reaction", Count: 1},
		{Type: AssertWarningCount, Code: "missing_metabolite", Count: 0},
		{Type: AssertCompartments, Compartments: map[string]string{"c": "cytosol"}},
	}
	for _, a := range assertions {
		assert.NoError(t, evaluate(r, a), a.Type)
	}
}

func TestEvaluate_EntityIDsOrderMatters(t *testing.T) {
	r := assertionFixture(t)
	require.NoError(t, r.Model.Genes.Add("b0002", &model.Gene{ID: "b0002"}))

	err := evaluate(r, Assertion{Type: AssertEntityIDs, Kind: "gene", IDs: []string{"b0002", "b0001"}})
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertEntityIDs, ae.Type)
	assert.Equal(t, "gene ids [b0001 b0002]", ae.Actual)
}

func TestEvaluate_AliasesMissingEntity(t *testing.T) {
	r := assertionFixture(t)

	err := evaluate(r, Assertion{Type: AssertAliases, Kind: "reaction", ID: "PFK"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reaction PFK not found")
}

func TestEvaluate_StoichiometryMismatch(t *testing.T) {
	r := assertionFixture(t)

	err := evaluate(r, Assertion{
		Type:        AssertStoichiometry,
		Reaction:    "PGI",
		Metabolites: map[string]float64{"g6p_c": -2, "f6p_c": 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{f6p_c:1 g6p_c:-2}")
	assert.Contains(t, err.Error(), "{f6p_c:1 g6p_c:-1}")
}

func TestEvaluate_WarningCountIncludesContext(t *testing.T) {
	r := assertionFixture(t)

	err := evaluate(r, Assertion{Type: AssertWarningCount, Code: "missing_reaction", Count: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Warnings:")
	assert.Contains(t, err.Error(), "reaction ADK not found for metabolite atp in compartment c")
}

func TestEvaluate_Compartments(t *testing.T) {
	r := assertionFixture(t)

	err := evaluate(r, Assertion{Type: AssertCompartments, Compartments: map[string]string{"c": ""}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compartments map[c:]")
}

func TestEvaluate_UnknownType(t *testing.T) {
	r := assertionFixture(t)

	err := evaluate(r, Assertion{Type: "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown assertion type")
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertWarningCount,
		Expected: "0 missing_reaction warnings",
		Actual:   "1 missing_reaction warnings",
		Warnings: []string{"reaction ADK not found"},
	}

	want := "Assertion failed: warning_count\n" +
		"  Expected: 0 missing_reaction warnings\n" +
		"  Actual: 1 missing_reaction warnings\n" +
		"\nWarnings:\n" +
		"  [1] reaction ADK not found\n"
	assert.Equal(t, want, err.Error())
}
