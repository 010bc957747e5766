package genome

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genbankHeader = `LOCUS       NC_000913            4641652 bp    DNA     circular CON 09-MAR-2016
DEFINITION  Escherichia coli str. K-12 substr. MG1655, complete genome.
ACCESSION   NC_000913
VERSION     NC_000913.3
DBLINK      BioProject: PRJNA57779
            Assembly: GCF_000005845.2
KEYWORDS    RefSeq.
`

func TestReadAccessions(t *testing.T) {
	acc, err := ReadAccessions(strings.NewReader(genbankHeader), 0)
	require.NoError(t, err)
	assert.Equal(t, Accessions{
		Accession:  "NC_000913.3",
		Assembly:   "GCF_000005845.2",
		BioProject: "PRJNA57779",
	}, acc)
}

func TestReadAccessions_LineLimit(t *testing.T) {
	acc, err := ReadAccessions(strings.NewReader(genbankHeader), 4)
	require.NoError(t, err)
	assert.Equal(t, "NC_000913.3", acc.Accession)
	assert.Empty(t, acc.BioProject)
	assert.Empty(t, acc.Assembly)
}

func TestReadAccessions_Empty(t *testing.T) {
	acc, err := ReadAccessions(strings.NewReader(""), 10)
	require.NoError(t, err)
	assert.Equal(t, Accessions{}, acc)
}
