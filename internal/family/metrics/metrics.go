package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the family directory stores.
type Metrics struct {
	CacheHits    *prometheus.CounterVec
	CacheMisses  *prometheus.CounterVec
	FindDuration prometheus.Histogram
}

// New creates and registers directory metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on a caller-supplied registry. Tests pass a
// fresh registry to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wikisite_family_cache_hits_total",
			Help: "Family snapshot lookups served from cache",
		}, []string{"backend"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wikisite_family_cache_misses_total",
			Help: "Family snapshot lookups that fell through to the directory",
		}, []string{"backend"}),
		FindDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wikisite_family_find_duration_seconds",
			Help:    "Latency of family directory lookups",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

func (m *Metrics) RecordHit(backend string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(backend).Inc()
}

func (m *Metrics) RecordMiss(backend string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(backend).Inc()
}

func (m *Metrics) ObserveFind(seconds float64) {
	if m == nil {
		return
	}
	m.FindDuration.Observe(seconds)
}
