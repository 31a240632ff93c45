package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.IncFallback("1D")
	r.IncFallback("1D")
	r.IncCache(true)
	r.IncCache(false)
	r.IncCache(false)
	r.SetDatasetRows(42)
	r.IncReload(true)
	r.IncReload(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.fallbacks.WithLabelValues("1D")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cache.WithLabelValues("miss")))
	assert.Equal(t, 42.0, testutil.ToFloat64(r.datasetRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reloads.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reloads.WithLabelValues("false")))
}

func TestRecorderHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.ObserveRecompute("3M", 0.002)
	r.ObserveRecompute("ALL", 0.004)

	n, err := testutil.GatherAndCount(reg, "index_observer_recompute_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNewPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
