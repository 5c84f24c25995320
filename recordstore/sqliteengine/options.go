package sqliteengine

import (
	"github.com/liblend/library-ledger-go/recordstore"
)

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithTableName sets the table the documents are stored in.
func WithTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return recordstore.ErrEmptyTableNameSupplied
		}

		s.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: per-operation messages with payload sizes and timing (development use)
// Warn level: non-critical issues like cleanup failures
// Error level: failed statements and schema creation.
func WithLogger(logger recordstore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger for the Store.
// When both a Logger and a ContextualLogger are configured, the contextual one wins.
func WithContextualLogger(logger recordstore.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
func WithMetrics(collector recordstore.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
func WithTracing(collector recordstore.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
