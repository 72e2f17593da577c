// Package telemetry wires the store's Logger and MetricsCollector hooks to
// concrete backends: log/slog for logs and a VictoriaMetrics Set for metrics.
package telemetry
