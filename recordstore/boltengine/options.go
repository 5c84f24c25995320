package boltengine

import (
	"github.com/liblend/library-ledger-go/recordstore"
)

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithBucketName sets the bbolt bucket the documents are stored in.
func WithBucketName(bucketName string) Option {
	return func(s *Store) error {
		if bucketName == "" {
			return recordstore.ErrEmptyBucketNameSupplied
		}

		s.bucketName = bucketName

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: per-operation messages with payload sizes and timing (development use)
// Error level: failed transactions.
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
