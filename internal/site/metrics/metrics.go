package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for site resolution and page locking.
type Metrics struct {
	SitesResolved   prometheus.Counter
	UnknownSites    prometheus.Counter
	ObsoleteCodes   prometheus.Counter
	PagesHeld       prometheus.Gauge
	LockContention  prometheus.Counter
	LockWaitSeconds prometheus.Histogram
}

// New creates and registers site metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on a caller-supplied registry. Tests pass a
// fresh registry to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SitesResolved: factory.NewCounter(prometheus.CounterOpts{
			Name: "wikisite_sites_resolved_total",
			Help: "Total number of successful site resolutions",
		}),
		UnknownSites: factory.NewCounter(prometheus.CounterOpts{
			Name: "wikisite_unknown_sites_total",
			Help: "Total number of resolutions rejected with an unknown-site error",
		}),
		ObsoleteCodes: factory.NewCounter(prometheus.CounterOpts{
			Name: "wikisite_obsolete_codes_total",
			Help: "Total number of resolutions that went through an obsolete language code",
		}),
		PagesHeld: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wikisite_pages_locked",
			Help: "Current number of page titles held in the lock registry",
		}),
		LockContention: factory.NewCounter(prometheus.CounterOpts{
			Name: "wikisite_page_lock_contention_total",
			Help: "Total number of lock attempts that found the title already held",
		}),
		LockWaitSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wikisite_page_lock_wait_seconds",
			Help:    "Time blocking lock attempts spent waiting for a title",
			Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 2.5, 10, 30},
		}),
	}
}

func (m *Metrics) ResolveSucceeded() {
	if m == nil {
		return
	}
	m.SitesResolved.Inc()
}

func (m *Metrics) ResolveUnknown() {
	if m == nil {
		return
	}
	m.UnknownSites.Inc()
}

func (m *Metrics) ObsoleteCodeUsed() {
	if m == nil {
		return
	}
	m.ObsoleteCodes.Inc()
}

func (m *Metrics) SetPagesHeld(n int) {
	if m == nil {
		return
	}
	m.PagesHeld.Set(float64(n))
}

func (m *Metrics) LockContended() {
	if m == nil {
		return
	}
	m.LockContention.Inc()
}

func (m *Metrics) ObserveLockWait(seconds float64) {
	if m == nil {
		return
	}
	m.LockWaitSeconds.Observe(seconds)
}
