package analysis

import (
	"fmt"
	"sync"
	"time"

	"index-observer/src/helpers"
	"index-observer/src/interfaces"
	"index-observer/src/logger"
	"index-observer/src/models"

	"github.com/dgraph-io/ristretto/v2"
)

// AnalysisFacade is the entry point the transport layer calls whenever the
// selection or the dataset changes. Views are memoized per
// (dataset version, index, range, anchor); a cached view is shared and must
// be treated as read-only.
type AnalysisFacade struct {
	Logger   *logger.Logger
	Recorder interfaces.IRecorder

	cache *ristretto.Cache[string, *models.MViewModel]

	mu   sync.RWMutex
	last models.MProcessingMetrics
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(cfg *models.MConfig, log *logger.Logger, rec interfaces.IRecorder) (*AnalysisFacade, error) {
	if rec == nil {
		rec = nopRecorder{}
	}

	a := &AnalysisFacade{
		Logger:   log,
		Recorder: rec,
	}

	if cfg.Cache.Enabled {
		cache, err := ristretto.NewCache(&ristretto.Config[string, *models.MViewModel]{
			NumCounters:        cfg.Cache.MaxEntries * 10,
			MaxCost:            cfg.Cache.MaxEntries, // every view costs 1
			BufferItems:        64,
			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create view cache: %w", err)
		}
		a.cache = cache
	}

	return a, nil
}

// -----------------------------------------------------------------------------

// Recompute returns the view of index over range rng as of anchor. An empty
// index selects the first index of the dataset.
func (a *AnalysisFacade) Recompute(
	ds *models.MDataset,
	index string,
	rng models.MRange,
	anchor time.Time,
) (*models.MViewModel, error) {
	if ds == nil || len(ds.Indices) == 0 {
		return nil, helpers.ErrEmptyDataset
	}
	if index == "" {
		index = ds.Indices[0]
	}
	if !ds.HasIndex(index) {
		return nil, fmt.Errorf("%w: %s", helpers.ErrIndexNotFound, index)
	}

	start := time.Now()
	anchor = DateOnly(anchor)
	key := viewKey(ds.Version, index, rng, anchor)

	if a.cache != nil {
		if view, ok := a.cache.Get(key); ok {
			a.Recorder.IncCache(true)
			a.remember(start, view, true)
			return view, nil
		}
		a.Recorder.IncCache(false)
	}

	view := BuildView(ds.RowsFor(index), index, rng, anchor)
	view.DatasetVersion = ds.Version
	view.ComputedAt = time.Now().UTC()

	if view.Window.FellBack {
		a.Logger.Warning("%s: %s", index, view.Window.Diagnostic)
		a.Recorder.IncFallback(string(rng))
	}

	if a.cache != nil {
		a.cache.Set(key, &view, 1)
		a.cache.Wait()
	}

	a.Recorder.ObserveRecompute(string(rng), time.Since(start).Seconds())
	a.remember(start, &view, false)
	a.Logger.Debug("Recomputed %s/%s: %d buckets from %d rows", index, rng, len(view.Buckets), view.Window.Rows)

	return &view, nil
}

// -----------------------------------------------------------------------------

// Invalidate drops every memoized view.
func (a *AnalysisFacade) Invalidate() {
	if a.cache != nil {
		a.cache.Clear()
	}
}

// -----------------------------------------------------------------------------

// LastMetrics reports on the most recent Recompute call.
func (a *AnalysisFacade) LastMetrics() models.MProcessingMetrics {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last
}

// -----------------------------------------------------------------------------

func (a *AnalysisFacade) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}

// -----------------------------------------------------------------------------

func (a *AnalysisFacade) remember(start time.Time, view *models.MViewModel, hit bool) {
	a.mu.Lock()
	a.last = models.MProcessingMetrics{
		RecomputeSeconds: time.Since(start).Seconds(),
		WindowedRows:     view.Window.Rows,
		Buckets:          len(view.Buckets),
		CacheHit:         hit,
	}
	a.mu.Unlock()
}

// -----------------------------------------------------------------------------

func viewKey(version uint64, index string, rng models.MRange, anchor time.Time) string {
	return fmt.Sprintf("%d|%s|%s|%s", version, index, rng, anchor.Format("2006-01-02"))
}

// -----------------------------------------------------------------------------

type nopRecorder struct{}

func (nopRecorder) ObserveRecompute(string, float64) {}
func (nopRecorder) IncFallback(string)               {}
func (nopRecorder) IncCache(bool)                    {}
func (nopRecorder) SetDatasetRows(int)               {}
func (nopRecorder) IncReload(bool)                   {}
