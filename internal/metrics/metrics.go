// Package metrics exposes Prometheus counters for pipeline outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	RecordsProcessed prometheus.Counter
	RecordsRejected  *prometheus.CounterVec
	RecordsGeocoded  *prometheus.CounterVec
	RecordsPersisted prometheus.Counter
	PersistFailures  prometheus.Counter
}

// New registers the pipeline collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RecordsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "tourcrawl_records_processed_total",
			Help: "Records received by the pipeline.",
		}),
		RecordsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tourcrawl_records_rejected_total",
			Help: "Records dropped by validation or deduplication.",
		}, []string{"reason"}),
		RecordsGeocoded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tourcrawl_records_geocoded_total",
			Help: "Records enriched with coordinates, by provider.",
		}, []string{"source"}),
		RecordsPersisted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tourcrawl_records_persisted_total",
			Help: "Records committed to the relational store.",
		}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tourcrawl_persist_failures_total",
			Help: "Per-record transaction failures.",
		}),
	}
}

// NewDefault registers the collectors on the default registry.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}
