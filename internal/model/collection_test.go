package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_AddAndGet(t *testing.T) {
	c := NewCollection[*Gene]()
	require.NoError(t, c.Add("b0001", &Gene{ID: "b0001", Name: "thrL"}))
	require.NoError(t, c.Add("b0002", &Gene{ID: "b0002", Name: "thrA"}))

	g, ok := c.Get("b0002")
	require.True(t, ok)
	assert.Equal(t, "thrA", g.Name)
	assert.True(t, c.Has("b0001"))
	assert.False(t, c.Has("b9999"))
	assert.Equal(t, 2, c.Len())
}

func TestCollection_DuplicateRejected(t *testing.T) {
	c := NewCollection[*Gene]()
	first := &Gene{ID: "b0001", Name: "first"}
	require.NoError(t, c.Add("b0001", first))

	err := c.Add("b0001", &Gene{ID: "b0001", Name: "second"})
	require.ErrorIs(t, err, ErrDuplicateID)
	assert.Contains(t, err.Error(), "b0001")

	// Original entry survives
	g, _ := c.Get("b0001")
	assert.Same(t, first, g)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_InsertionOrder(t *testing.T) {
	c := NewCollection[int]()
	for i, id := range []string{"z", "a", "m"} {
		require.NoError(t, c.Add(id, i))
	}
	assert.Equal(t, []string{"z", "a", "m"}, c.IDs())
	assert.Equal(t, []int{0, 1, 2}, c.All())

	// IDs returns a copy
	ids := c.IDs()
	ids[0] = "mutated"
	assert.Equal(t, "z", c.IDs()[0])
}

func TestReaction_AddMetabolite(t *testing.T) {
	r := &Reaction{ID: "PGI"}

	assert.True(t, r.AddMetabolite("g6p_c", -1))
	assert.True(t, r.AddMetabolite("f6p_c", 1))
	assert.False(t, r.AddMetabolite("g6p_c", -2), "second insert for same metabolite must be refused")

	assert.Equal(t, map[string]float64{"g6p_c": -1, "f6p_c": 1}, r.Stoichiometry)
}

func TestNewModel(t *testing.T) {
	m := NewModel("e_coli_core")
	assert.Equal(t, "e_coli_core", m.ID)
	assert.Equal(t, 0, m.Genes.Len())
	assert.Equal(t, 0, m.Reactions.Len())
	assert.Equal(t, 0, m.Metabolites.Len())
	assert.NotNil(t, m.Compartments)
}
