// Package metrics exposes Prometheus counters for guard decisions and HTTP
// traffic. A *Metrics is a guard.Observer and provides chi-compatible
// middleware plus the /metrics handler.
package metrics
