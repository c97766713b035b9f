// Package prometheus exports store metrics through client_golang.
//
//	reg := prometheus.NewRegistry()
//	store := notesync.New(t, url, notesync.WithMetricsCollector(notesprom.New(reg, "notesync")))
package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeApplied = "applied"
	outcomeNoop    = "noop"
)

// Collector implements notesync.MetricsCollector with Prometheus metrics.
type Collector struct {
	loads        *prom.CounterVec
	loadDuration prom.Histogram
	saves        *prom.CounterVec
	saveDuration prom.Histogram
	saveBytes    prom.Histogram
	mutations    *prom.CounterVec
	coalesced    prom.Counter
}

// New creates a collector and registers its metrics with reg.
// A nil reg leaves the metrics unregistered.
func New(reg prom.Registerer, namespace string) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		loads: factory.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Number of document loads by outcome",
		}, []string{"outcome"}),
		loadDuration: factory.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of document loads",
			Buckets:   prom.DefBuckets,
		}),
		saves: factory.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Number of document saves by outcome",
		}, []string{"outcome"}),
		saveDuration: factory.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "save_duration_seconds",
			Help:      "Duration of document saves",
			Buckets:   prom.DefBuckets,
		}),
		saveBytes: factory.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "save_bytes",
			Help:      "Size of saved documents",
			Buckets:   prom.ExponentialBuckets(256, 4, 8),
		}),
		mutations: factory.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Number of processed mutations by operation and outcome",
		}, []string{"op", "outcome"}),
		coalesced: factory.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "coalesced_mutations_total",
			Help:      "Number of mutations folded into an already queued save",
		}),
	}
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}

// RecordLoad implements notesync.MetricsCollector.
func (c *Collector) RecordLoad(duration time.Duration, _ int, err error) {
	c.loads.WithLabelValues(outcome(err)).Inc()
	c.loadDuration.Observe(duration.Seconds())
}

// RecordSave implements notesync.MetricsCollector.
func (c *Collector) RecordSave(duration time.Duration, bytes int, err error) {
	c.saves.WithLabelValues(outcome(err)).Inc()
	c.saveDuration.Observe(duration.Seconds())
	c.saveBytes.Observe(float64(bytes))
}

// RecordMutation implements notesync.MetricsCollector.
func (c *Collector) RecordMutation(op string, changed bool, err error) {
	result := outcomeApplied
	switch {
	case err != nil:
		result = outcomeError
	case !changed:
		result = outcomeNoop
	}
	c.mutations.WithLabelValues(op, result).Inc()
}

// RecordCoalesced implements notesync.MetricsCollector.
func (c *Collector) RecordCoalesced() {
	c.coalesced.Inc()
}
