// Package metrics defines the Prometheus collectors of the bill service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector. Create one per registry.
type Metrics struct {
	RPCRequests    *prometheus.CounterVec
	RPCDuration    *prometheus.HistogramVec
	BillMutations  *prometheus.CounterVec
	StoreConflicts prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "divvy",
			Name:      "rpc_requests_total",
			Help:      "RPCs handled, by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "divvy",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		BillMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "divvy",
			Name:      "bill_mutations_total",
			Help:      "Bill mutations saved, by operation.",
		}, []string{"op"}),
		StoreConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "divvy",
			Name:      "store_conflicts_total",
			Help:      "Saves rejected because the bill changed since it was loaded.",
		}),
	}
}

// NewRegistry returns a registry with the Go runtime and process collectors and the
// service collectors registered on it.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return reg, New(reg)
}
