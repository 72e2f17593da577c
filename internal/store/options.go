package store

import (
	"errors"
	"time"
)

// Logger is the structured logger the store reports to.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector receives operation counters and latencies.
type MetricsCollector interface {
	IncrementCounter(metric string, labels map[string]string)
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
}

// Metric names emitted by the store.
const (
	MetricOperations = "invapp_store_operations_total"
	MetricDuration   = "invapp_store_operation_duration_seconds"
)

// Option configures a Store at Open time.
type Option func(*Store) error

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			return errors.New("nil logger supplied")
		}
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector. The default discards everything.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Store) error {
		if collector == nil {
			return errors.New("nil metrics collector supplied")
		}
		s.metrics = collector
		return nil
	}
}

// WithMigrations adds migration steps to the built-in table.
// A step given here replaces a built-in step with the same key.
func WithMigrations(steps map[MigrationKey]MigrationFunc) Option {
	return func(s *Store) error {
		for k, fn := range steps {
			if k.To != k.From+1 {
				return errors.New("migration steps must advance exactly one version")
			}
			s.migrations[k] = fn
		}
		return nil
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type nopMetrics struct{}

func (nopMetrics) IncrementCounter(string, map[string]string)              {}
func (nopMetrics) RecordDuration(string, time.Duration, map[string]string) {}

// observe records one operation outcome.
func (s *Store) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.IncrementCounter(MetricOperations, map[string]string{"op": op, "status": status})
	s.metrics.RecordDuration(MetricDuration, time.Since(start), map[string]string{"op": op})
}
