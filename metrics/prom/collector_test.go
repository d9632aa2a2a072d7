package prom

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sparsegrid"
	"github.com/hupe1980/sparsegrid/blobstore"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New("sparsegrid", reg)
	require.NoError(t, err)

	c.RecordSave(100, time.Millisecond, nil)
	c.RecordSave(0, time.Millisecond, errors.New("disk full"))
	c.RecordLoad(100, time.Millisecond, nil)
	c.RecordConvolution(40, 60, time.Millisecond, nil)
	c.RecordEnsemble(8, time.Second, nil)

	assert.InDelta(t, 1, promtestutil.ToFloat64(c.ops.WithLabelValues("save", "success")), 0)
	assert.InDelta(t, 1, promtestutil.ToFloat64(c.ops.WithLabelValues("save", "error")), 0)
	assert.InDelta(t, 100, promtestutil.ToFloat64(c.bytes.WithLabelValues("save")), 0)
	assert.InDelta(t, 100, promtestutil.ToFloat64(c.bytes.WithLabelValues("load")), 0)
	assert.InDelta(t, 40, promtestutil.ToFloat64(c.xfxCalls), 0)
	assert.InDelta(t, 60, promtestutil.ToFloat64(c.cacheHits), 0)

	expected := `
# HELP sparsegrid_distribution_calls_total Distribution callback invocations
# TYPE sparsegrid_distribution_calls_total counter
sparsegrid_distribution_calls_total 40
`
	require.NoError(t, promtestutil.GatherAndCompare(reg, strings.NewReader(expected), "sparsegrid_distribution_calls_total"))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New("dup", reg)
	require.NoError(t, err)

	_, err = New("dup", reg)
	assert.Error(t, err)
}

func TestCollector_WithStore(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New("store", reg)
	require.NoError(t, err)

	store := sparsegrid.NewStore(blobstore.NewMemoryStore(), sparsegrid.WithMetricsCollector(c))
	_, err = store.Load(context.Background(), "missing")
	require.ErrorIs(t, err, sparsegrid.ErrNotFound)

	assert.InDelta(t, 1, promtestutil.ToFloat64(c.ops.WithLabelValues("load", "error")), 0)
}
