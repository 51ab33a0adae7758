// Package metrics provides the Prometheus metrics registry and recording
// utilities for the application.
//
// It centralizes:
//   - HTTP request metrics (count, duration)
//   - Pipeline metrics (items fetched, gate skips, rewrites, published
//     articles, per-feed crawl timings)
//   - Database query metrics
//
// All metrics register with the Prometheus default registry and are exposed
// on the /metrics endpoint.
package metrics
