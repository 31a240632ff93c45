package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements interfaces.IRecorder using Prometheus.
type Recorder struct {
	recompute   *prometheus.HistogramVec
	fallbacks   *prometheus.CounterVec
	cache       *prometheus.CounterVec
	datasetRows prometheus.Gauge
	reloads     *prometheus.CounterVec
}

// New registers the engine metrics on reg. Pass prometheus.DefaultRegisterer
// to expose them through promhttp.Handler().
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		recompute: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "index_observer_recompute_duration_seconds",
				Help:    "Duration of view recomputation in seconds",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"range"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "index_observer_window_fallbacks_total",
				Help: "Windows that matched no rows and fell back to the full series",
			},
			[]string{"range"},
		),
		cache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "index_observer_view_cache_requests_total",
				Help: "View cache lookups by result",
			},
			[]string{"result"},
		),
		datasetRows: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_observer_dataset_rows",
				Help: "Rows in the live dataset snapshot",
			},
		),
		reloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "index_observer_dataset_reloads_total",
				Help: "Dataset reload attempts by outcome",
			},
			[]string{"success"},
		),
	}
}

// ObserveRecompute records how long a recompute for rng took.
func (r *Recorder) ObserveRecompute(rng string, seconds float64) {
	r.recompute.WithLabelValues(rng).Observe(seconds)
}

// IncFallback counts an empty window.
func (r *Recorder) IncFallback(rng string) {
	r.fallbacks.WithLabelValues(rng).Inc()
}

func (r *Recorder) IncCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cache.WithLabelValues(result).Inc()
}

func (r *Recorder) SetDatasetRows(n int) {
	r.datasetRows.Set(float64(n))
}

func (r *Recorder) IncReload(ok bool) {
	r.reloads.WithLabelValues(strconv.FormatBool(ok)).Inc()
}
