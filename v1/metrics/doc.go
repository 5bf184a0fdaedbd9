// Package metrics exposes Prometheus metrics for the product vector store.
//
// The built-in metrics cover every vector-store operation (counter by
// operation and status, duration histogram) plus a counter of upserted
// points. Additional metrics can be registered through the Create*
// factories on [Metrics]. The registry is served over HTTP at /metrics,
// managed by the package's Fx module.
package metrics
