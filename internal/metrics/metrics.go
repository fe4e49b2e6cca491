// Package metrics provides Prometheus metrics for token list resolution.
package metrics

import (
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// DefaultNamespace prefixes every metric name
const DefaultNamespace = "tokenlist"

// Fetch outcomes used as the "outcome" label
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
)

// Metrics holds the resolution metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SourceFetches       *prometheus.CounterVec
	SourceFetchDuration *prometheus.HistogramVec
	SourceTokens        *prometheus.GaugeVec

	Resolutions    *prometheus.CounterVec
	TokensResolved *prometheus.GaugeVec
}

// NewMetrics creates the metrics and registers them on reg.
// A nil reg gets a fresh private registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		SourceFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "fetches_total",
			Help:      "Total number of token list fetches by strategy, host and outcome",
		}, []string{"strategy", "host", "outcome"}),
		SourceFetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "fetch_duration_seconds",
			Help:      "Token list fetch duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy"}),
		SourceTokens: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "tokens",
			Help:      "Number of tokens in the last document fetched from a host",
		}, []string{"strategy", "host"}),

		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolution",
			Name:      "runs_total",
			Help:      "Total number of strategy resolutions",
		}, []string{"strategy"}),
		TokensResolved: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "resolution",
			Name:      "tokens",
			Help:      "Number of tokens produced by the last resolution",
		}, []string{"strategy"}),
	}
}

// RecordSourceFetch records one mirror fetch. tokens is ignored on fallback.
func (m *Metrics) RecordSourceFetch(strategy, host string, ok bool, tokens int, seconds float64) {
	if m == nil {
		return
	}
	outcome := OutcomeFallback
	if ok {
		outcome = OutcomeOK
		m.SourceTokens.WithLabelValues(strategy, host).Set(float64(tokens))
	}
	m.SourceFetches.WithLabelValues(strategy, host, outcome).Inc()
	m.SourceFetchDuration.WithLabelValues(strategy).Observe(seconds)
}

// RecordResolution records a completed resolution and its merged size
func (m *Metrics) RecordResolution(strategy string, tokens int) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(strategy).Inc()
	m.TokensResolved.WithLabelValues(strategy).Set(float64(tokens))
}

// WriteText writes every metric family of g in the Prometheus text format,
// sorted by name.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
