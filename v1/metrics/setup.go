package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the HTTP server that
// exposes it for scraping.
//
// Each service instance keeps its own registry so metric names never
// collide when several services share a process. The built-in metrics
// cover the vector-store operations (search, scroll, upsert, delete,
// find, ensure_collection); anything else is registered through the
// Create* factories.
type Metrics struct {
	// Server is the HTTP server exposing /metrics.
	Server *http.Server

	// Registry is the Prometheus registry all metrics are registered into.
	Registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	pointsUpserted    prometheus.Counter
}

// NewMetrics builds a Metrics instance from Config: a dedicated registry,
// the built-in vector-operation metrics, optional Go/process collectors,
// and an HTTP server serving the registry.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "search-store",
//	    EnableDefaultCollectors: true,
//	})
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics carry a constant service label for aggregation.
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{Registry: registry}

	m.operationsTotal = createCounterVec(
		"vector_operations_total",
		"Total vector-store operations by operation and status",
		[]string{"operation", "status"},
	)
	m.operationDuration = createHistogramVec(
		"vector_operation_duration_seconds",
		"Duration of vector-store operations in seconds",
		[]string{"operation"},
		prometheus.DefBuckets,
	)
	m.pointsUpserted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "points_upserted_total",
		Help: "Total product points written to the vector store",
	})

	wrapped.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.pointsUpserted,
	)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	return m
}
