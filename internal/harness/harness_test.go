package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/metnet/internal/model"
	"github.com/roach88/metnet/internal/recon"
)

func TestRun_Fixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_DefaultModelID(t *testing.T) {
	scenario := &Scenario{
		Name: "default_id",
		Rows: model.Rows{
			Genes: []model.GeneRow{{ID: "b0001", Name: "thrL"}},
		},
		Assertions: []Assertion{{Type: AssertEntityIDs, Kind: "gene", IDs: []string{"b0001"}}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Equal(t, DefaultModelID, result.Model.ID)
}

func TestRun_FailingAssertionRecorded(t *testing.T) {
	scenario := &Scenario{
		Name: "failing",
		Rows: model.Rows{
			Reactions: []model.ReactionRow{{InstanceID: 1, ID: "PGI", CopyNumber: 1}},
		},
		Assertions: []Assertion{{Type: AssertEntityIDs, Kind: "reaction", IDs: []string{"PGI_copy1"}}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "reaction ids [PGI]")
}

func TestRun_AttachAllCopiesOption(t *testing.T) {
	rows := model.Rows{
		Reactions: []model.ReactionRow{
			{InstanceID: 1, ID: "ENO", CopyNumber: 1},
			{InstanceID: 2, ID: "ENO", CopyNumber: 2},
		},
		Metabolites: []model.MetaboliteRow{{ComponentID: "pep", CompartmentID: "c"}},
		Stoichiometry: []model.StoichiometryRow{
			{Coefficient: 1, ReactionID: "ENO", ComponentID: "pep", CompartmentID: "c"},
		},
	}

	firstOnly := &Scenario{
		Name: "first_only",
		Rows: rows,
		Assertions: []Assertion{
			{Type: AssertStoichiometry, Reaction: "ENO_copy1", Metabolites: map[string]float64{"pep_c": 1}},
			{Type: AssertStoichiometry, Reaction: "ENO_copy2"},
		},
	}
	result, err := Run(firstOnly)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	fanOut := &Scenario{
		Name:    "fan_out",
		Options: ScenarioOptions{AttachAllCopies: true},
		Rows:    rows,
		Assertions: []Assertion{
			{Type: AssertStoichiometry, Reaction: "ENO_copy2", Metabolites: map[string]float64{"pep_c": 1}},
		},
	}
	result, err = Run(fanOut)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_ExpectError(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/duplicate_copy_number.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Nil(t, result.Model)
	assert.True(t, recon.IsDuplicateIdentifier(result.Err))
}

func TestRun_ExpectedErrorMissing(t *testing.T) {
	scenario := &Scenario{
		Name:        "no_collision",
		ExpectError: ExpectDuplicateIdentifier,
		Rows: model.Rows{
			Reactions: []model.ReactionRow{{InstanceID: 1, ID: "TPI", CopyNumber: 1}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected duplicate_identifier error")
}

func TestRun_UnexpectedError(t *testing.T) {
	scenario := &Scenario{
		Name: "collision",
		Rows: model.Rows{
			Genes: []model.GeneRow{{ID: "b0001"}},
			Reactions: []model.ReactionRow{
				{InstanceID: 1, ID: "TPI", CopyNumber: 1},
				{InstanceID: 2, ID: "TPI", CopyNumber: 1},
			},
		},
		Assertions: []Assertion{{Type: AssertCompartments}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.True(t, recon.IsDuplicateIdentifier(err))
}
