package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetaboliteID(t *testing.T) {
	assert.Equal(t, "glc__D_c", MetaboliteID("glc__D", "c"))
	assert.Equal(t, "atp_e", MetaboliteID("atp", "e"))
}

func TestCopyID(t *testing.T) {
	assert.Equal(t, "PGI_copy1", CopyID("PGI", 1))
	assert.Equal(t, "PGI_copy12", CopyID("PGI", 12))
}

func TestSplitCopyID(t *testing.T) {
	tests := []struct {
		in     string
		base   string
		n      int
		wantOK bool
	}{
		{"PGI_copy2", "PGI", 2, true},
		{"EX_glc_copy10", "EX_glc", 10, true},
		{"PGI", "PGI", 0, false},
		{"PGI_copy", "PGI_copy", 0, false},
		{"PGI_copyA", "PGI_copyA", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			base, n, ok := SplitCopyID(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.n, n)
		})
	}
}

func TestSplitCopyID_RoundTrip(t *testing.T) {
	base, n, ok := SplitCopyID(CopyID("ATPS4r", 3))
	assert.True(t, ok)
	assert.Equal(t, "ATPS4r", base)
	assert.Equal(t, 3, n)
}
