package service

import (
	"time"

	"github.com/habibaehabb05/Factify/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records pipeline outcomes; a nil *Metrics records nothing
type Metrics struct {
	stage      *prometheus.HistogramVec
	verdicts   *prometheus.CounterVec
	failures   *prometheus.CounterVec
	fallbacks  prometheus.Counter
	violations prometheus.Counter
}

// NewMetrics registers the analysis collectors on reg (nil = process registry)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		stage: metrics.Register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "analysis",
			Name:      "stage_duration_seconds",
			Help:      "Latency of each pipeline stage.",
			Buckets:   []float64{.005, .025, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"})),
		verdicts: metrics.Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "analysis",
			Name:      "verdicts_total",
			Help:      "Decoded verdicts.",
		}, []string{"verdict"})),
		failures: metrics.Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "analysis",
			Name:      "failures_total",
			Help:      "Analyses aborted, by error kind.",
		}, []string{"kind"})),
		fallbacks: metrics.Register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "analysis",
			Name:      "query_fallbacks_total",
			Help:      "Search queries built from the claim excerpt instead of the model.",
		})),
		violations: metrics.Register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "analysis",
			Name:      "contract_violations_total",
			Help:      "Adjudicator replies that broke the output contract.",
		})),
	}
}

func (m *Metrics) observe(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.stage.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (m *Metrics) verdict(v string) {
	if m == nil {
		return
	}
	m.verdicts.WithLabelValues(v).Inc()
}

func (m *Metrics) failure(kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind).Inc()
}

func (m *Metrics) fallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

func (m *Metrics) violation() {
	if m == nil {
		return
	}
	m.violations.Inc()
}
