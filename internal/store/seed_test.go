package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_Counts(t *testing.T) {
	s := createTestStore(t)
	ds, err := LoadDataset("testdata/core.yaml")
	require.NoError(t, err)

	stats, err := s.Seed(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, SeedStats{
		Models:         1,
		ModelGenes:     3,
		ModelReactions: 3,
		Metabolites:    2,
		MatrixEntries:  5,
		Aliases:        9,
	}, stats)
	assert.Equal(t, 3, countRows(t, s, "reaction"))
	assert.Equal(t, 3, countRows(t, s, "component"))
	assert.Equal(t, 4, countRows(t, s, "compartmentalized_component"))
}

func TestSeed_Idempotent(t *testing.T) {
	s := seedTestStore(t)
	before := map[string]int{}
	tables := []string{"model", "gene", "model_gene", "model_reaction", "reaction_matrix", "alias", "model_compartmentalized_component"}
	for _, table := range tables {
		before[table] = countRows(t, s, table)
	}

	ds, err := LoadDataset("testdata/core.yaml")
	require.NoError(t, err)
	_, err = s.Seed(context.Background(), ds)
	require.NoError(t, err)

	for _, table := range tables {
		assert.Equal(t, before[table], countRows(t, s, table), table)
	}
}

func TestSeed_NamesFilledLater(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := DecodeDataset(strings.NewReader(`
models:
  - id: m
    metabolites:
      - {component: atp, compartment: c}
`))
	require.NoError(t, err)
	_, err = s.Seed(ctx, first)
	require.NoError(t, err)

	second, err := DecodeDataset(strings.NewReader(`
compartments:
  - {id: c, name: cytosol}
models: []
`))
	require.NoError(t, err)
	_, err = s.Seed(ctx, second)
	require.NoError(t, err)

	names, err := s.CompartmentNames(ctx, []string{"c"})
	require.NoError(t, err)
	assert.Equal(t, "cytosol", names["c"])
}

func TestDecodeDataset_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "modelz: []\n", "modelz"},
		{"missing model id", "models:\n  - genes: []\n", "models[0]: id is required"},
		{"missing reaction ref", "models:\n  - id: m\n    reactions:\n      - lower_bound: 0\n", "reaction is required"},
		{"negative copy", "models:\n  - id: m\n    reactions:\n      - {reaction: R, copy_number: -1}\n", "copy_number must be positive"},
		{"metabolite without compartment", "models:\n  - id: m\n    metabolites:\n      - {component: atp}\n", "component and compartment are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDataset(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSeed_RollsBackOnError(t *testing.T) {
	s := createTestStore(t)
	// The trigger fails the first model reaction, after the model row is written.
	mustExec(t, s.db, `CREATE TRIGGER fail_reaction BEFORE INSERT ON model_reaction BEGIN SELECT RAISE(ABORT, 'boom'); END`)

	ds, err := LoadDataset("testdata/core.yaml")
	require.NoError(t, err)
	_, err = s.Seed(context.Background(), ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 0, countRows(t, s, "model"))
}
