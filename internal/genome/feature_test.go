package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeature_Qualifier(t *testing.T) {
	f := Feature{Qualifiers: map[string][]string{
		"db_xref": {" GeneID:944742 ", "", "ASAP:ABE-0000006"},
	}}

	assert.Equal(t, []string{"GeneID:944742", "ASAP:ABE-0000006"}, f.Qualifier("db_xref"))
	assert.Empty(t, f.Qualifier("missing"))
	assert.Equal(t, "GeneID:944742", f.FirstQualifier("db_xref"))
	assert.Equal(t, "", f.FirstQualifier("missing"))
}

func TestFeature_StrandSymbol(t *testing.T) {
	assert.Equal(t, "+", Feature{Strand: 1}.StrandSymbol())
	assert.Equal(t, "-", Feature{Strand: -1}.StrandSymbol())
	assert.Equal(t, "", Feature{}.StrandSymbol())
}

func TestSplitXref(t *testing.T) {
	source, id, ok := splitXref("UniProtKB/Swiss-Prot:P00561")
	assert.True(t, ok)
	assert.Equal(t, "UniProtKB/Swiss-Prot", source)
	assert.Equal(t, "P00561", id)

	_, _, ok = splitXref("no-colon")
	assert.False(t, ok)
	_, _, ok = splitXref("a:b:c")
	assert.False(t, ok)
	_, _, ok = splitXref("taxon:")
	assert.False(t, ok)
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"thrA1", "thrA2"}, splitTokens("thrA1; ;thrA2;", ";"))
	assert.Empty(t, splitTokens(" ; ", ";"))
}
