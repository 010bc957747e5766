package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RowsTotal.WithLabelValues("gene").Add(3)
	m.WarningsTotal.WithLabelValues("duplicate_gene").Inc()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.RowsTotal.WithLabelValues("gene")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WarningsTotal.WithLabelValues("duplicate_gene")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "metnet_recon_rows_total")
	assert.Contains(t, names, "metnet_warnings_total")
}

func TestNew_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestDiscard_Independent(t *testing.T) {
	a := Discard()
	b := Discard()
	a.EntitiesTotal.WithLabelValues("gene").Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.EntitiesTotal.WithLabelValues("gene")))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.DroppedRowsTotal.WithLabelValues("missing_metabolite").Add(2)

	path := filepath.Join(t.TempDir(), "metnet.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `metnet_recon_dropped_rows_total{reason="missing_metabolite"} 2`)
}
