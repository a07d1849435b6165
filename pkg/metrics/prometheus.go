package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the engine's operational counters via Prometheus.
// It implements domain/service.Metrics.
type Recorder struct {
	cycleDuration   prometheus.Histogram
	finalScore      *prometheus.GaugeVec
	indicatorErrors *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	symbolsSkipped  *prometheus.CounterVec
}

// New creates a Prometheus metrics recorder registered on the default
// registry.
func New() *Recorder {
	return &Recorder{
		cycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "virtuoso",
				Subsystem: "engine",
				Name:      "cycle_duration_seconds",
				Help:      "Duration of a full monitoring cycle",
				Buckets:   prometheus.DefBuckets,
			},
		),
		finalScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "virtuoso",
				Subsystem: "engine",
				Name:      "final_score",
				Help:      "Latest confluence final score per symbol",
			},
			[]string{"symbol"},
		),
		indicatorErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "virtuoso",
				Subsystem: "engine",
				Name:      "indicator_errors_total",
				Help:      "Indicator computations that fell back to neutral",
			},
			[]string{"indicator"},
		),
		cacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "virtuoso",
				Subsystem: "cache",
				Name:      "hits_total",
				Help:      "Indicator cache hits",
			},
		),
		cacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "virtuoso",
				Subsystem: "cache",
				Name:      "misses_total",
				Help:      "Indicator cache misses",
			},
		),
		symbolsSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "virtuoso",
				Subsystem: "engine",
				Name:      "symbols_skipped_total",
				Help:      "Symbols skipped during a cycle, by reason",
			},
			[]string{"reason"},
		),
	}
}

func (r *Recorder) RecordCycle(seconds float64) {
	r.cycleDuration.Observe(seconds)
}

func (r *Recorder) RecordFinalScore(symbol string, score float64) {
	r.finalScore.WithLabelValues(symbol).Set(score)
}

func (r *Recorder) RecordIndicatorError(indicator string) {
	r.indicatorErrors.WithLabelValues(indicator).Inc()
}

func (r *Recorder) RecordCacheHit() {
	r.cacheHits.Inc()
}

func (r *Recorder) RecordCacheMiss() {
	r.cacheMisses.Inc()
}

func (r *Recorder) RecordSymbolSkipped(reason string) {
	r.symbolsSkipped.WithLabelValues(reason).Inc()
}
