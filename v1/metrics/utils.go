package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ObserveOperation records one vector-store operation: it increments the
// operation counter with the outcome status and observes the duration.
//
// Example:
//
//	defer func(start time.Time) { m.ObserveOperation("search", start, err) }(time.Now())
func (m *Metrics) ObserveOperation(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// AddPointsUpserted counts points written to the store.
func (m *Metrics) AddPointsUpserted(n int) {
	m.pointsUpserted.Add(float64(n))
}

// CreateCounter creates and registers a new CounterVec.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates and registers a new HistogramVec.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates and registers a new GaugeVec.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(name, help, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}

func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: name, Help: help},
		labels,
	)
}

func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets},
		labels,
	)
}

func createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: name, Help: help},
		labels,
	)
}
