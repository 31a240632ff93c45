package analysis

import (
	"errors"
	"sync"
	"testing"

	"index-observer/src/helpers"
	"index-observer/src/logger"
	"index-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	mu        sync.Mutex
	fallbacks int
	hits      int
	misses    int
	observed  int
}

func (f *fakeRecorder) ObserveRecompute(string, float64) { f.mu.Lock(); f.observed++; f.mu.Unlock() }
func (f *fakeRecorder) IncFallback(string)               { f.mu.Lock(); f.fallbacks++; f.mu.Unlock() }
func (f *fakeRecorder) SetDatasetRows(int)               {}
func (f *fakeRecorder) IncReload(bool)                   {}
func (f *fakeRecorder) IncCache(hit bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if hit {
		f.hits++
	} else {
		f.misses++
	}
}

func testConfig(cacheEnabled bool) *models.MConfig {
	return &models.MConfig{
		Cache: models.MCacheConfig{Enabled: cacheEnabled, MaxEntries: 16},
	}
}

func testDataset(version uint64) *models.MDataset {
	rows := []models.MObservation{
		openClose("2024-03-20", 100, 101),
		openClose("2024-03-21", 101, 99),
		openClose("2020-01-01", 1, 2),
	}
	for i := range rows {
		rows[i].IndexName = "NIFTY 50"
	}
	other := openClose("2024-03-22", 5, 6)
	other.IndexName = "NIFTY BANK"
	noClose := models.MObservation{IndexName: "NIFTY BANK", Date: day("2024-03-21")}

	return models.NewDataset(version, "test", append(rows, other, noClose))
}

func newFacade(t *testing.T, cacheEnabled bool) (*AnalysisFacade, *fakeRecorder) {
	rec := &fakeRecorder{}
	a, err := NewAnalysisFacade(testConfig(cacheEnabled), logger.NewNopLogger(), rec)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, rec
}

func TestRecomputeDefaultsToFirstIndex(t *testing.T) {
	a, _ := newFacade(t, false)

	view, err := a.Recompute(testDataset(1), "", models.Range1W, anchor)

	require.NoError(t, err)
	assert.Equal(t, "NIFTY 50", view.Index)
	assert.Equal(t, uint64(1), view.DatasetVersion)
	assert.Len(t, view.Buckets, 2)
	assert.False(t, view.ComputedAt.IsZero())
}

func TestRecomputeFiltersIndexAndMissingClose(t *testing.T) {
	a, _ := newFacade(t, false)

	view, err := a.Recompute(testDataset(1), "NIFTY BANK", models.Range1W, anchor)

	require.NoError(t, err)
	require.Len(t, view.Buckets, 1)
	assert.Equal(t, 6.0, view.Buckets[0].Close)
}

func TestRecomputeErrors(t *testing.T) {
	a, _ := newFacade(t, false)

	_, err := a.Recompute(nil, "", models.Range1M, anchor)
	assert.True(t, errors.Is(err, helpers.ErrEmptyDataset))

	_, err = a.Recompute(models.NewDataset(1, "empty", nil), "", models.Range1M, anchor)
	assert.True(t, errors.Is(err, helpers.ErrEmptyDataset))

	_, err = a.Recompute(testDataset(1), "SENSEX", models.Range1M, anchor)
	assert.True(t, errors.Is(err, helpers.ErrIndexNotFound))
}

func TestRecomputeRecordsFallback(t *testing.T) {
	a, rec := newFacade(t, false)

	view, err := a.Recompute(testDataset(1), "NIFTY BANK", models.Range1D, day("2030-01-01"))

	require.NoError(t, err)
	assert.True(t, view.Window.FellBack)
	assert.Equal(t, 1, rec.fallbacks)
}

func TestRecomputeMemoizesPerDatasetVersion(t *testing.T) {
	a, rec := newFacade(t, true)
	ds := testDataset(1)

	first, err := a.Recompute(ds, "NIFTY 50", models.Range1M, anchor)
	require.NoError(t, err)
	second, err := a.Recompute(ds, "NIFTY 50", models.Range1M, anchor)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, rec.hits)
	assert.True(t, a.LastMetrics().CacheHit)

	third, err := a.Recompute(testDataset(2), "NIFTY 50", models.Range1M, anchor)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, first.Metrics, third.Metrics)
	assert.Equal(t, uint64(2), third.DatasetVersion)

	a.Invalidate()
	fourth, err := a.Recompute(testDataset(2), "NIFTY 50", models.Range1M, anchor)
	require.NoError(t, err)
	assert.Equal(t, third.Metrics, fourth.Metrics)
}

func TestRecomputeIsPureOverInput(t *testing.T) {
	a, _ := newFacade(t, false)
	ds := testDataset(1)
	before := append([]models.MObservation(nil), ds.Rows...)

	_, err := a.Recompute(ds, "NIFTY 50", models.Range3M, anchor)
	require.NoError(t, err)

	assert.Equal(t, before, ds.Rows)
}
