// Package observability groups the logging and metrics infrastructure.
//
// Subpackages:
//   - logging: structured logging setup with slog
//   - metrics: Prometheus metrics registry and recorders
package observability
