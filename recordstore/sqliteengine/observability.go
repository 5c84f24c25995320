package sqliteengine

import (
	"context"
	"time"

	"github.com/liblend/library-ledger-go/recordstore"
)

const (
	engineName = "sqlite"

	metricOperationDuration = "recordstore_operation_duration"
	metricOperationTotal    = "recordstore_operations_total"

	labelEngine    = "engine"
	labelKey       = "key"
	labelOperation = "operation"
	labelOutcome   = "outcome"

	operationLoad = "load"
	operationSave = "save"

	outcomeSuccess  = "success"
	outcomeNotFound = "not_found"
	outcomeError    = "error"

	spanStatusOK    = "ok"
	spanStatusError = "error"
)

// observability bundles the optional collectors an engine can be configured with.
// All helper methods are nil-safe so the engine code stays free of guard clauses.
type observability struct {
	logger           recordstore.Logger
	contextualLogger recordstore.ContextualLogger
	metricsCollector recordstore.MetricsCollector
	tracingCollector recordstore.TracingCollector
}

func (o observability) logDebug(ctx context.Context, msg string, args ...any) {
	if o.contextualLogger != nil {
		o.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}

func (o observability) logWarn(ctx context.Context, msg string, args ...any) {
	if o.contextualLogger != nil {
		o.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if o.logger != nil {
		o.logger.Warn(msg, args...)
	}
}

func (o observability) logError(ctx context.Context, msg string, args ...any) {
	if o.contextualLogger != nil {
		o.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if o.logger != nil {
		o.logger.Error(msg, args...)
	}
}

func (o observability) recordDuration(ctx context.Context, operation string, duration time.Duration, key string) {
	if o.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelEngine:    engineName,
		labelOperation: operation,
		labelKey:       key,
	}

	if contextual, ok := o.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	o.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

func (o observability) countOperation(ctx context.Context, operation string, outcome string) {
	if o.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelEngine:    engineName,
		labelOperation: operation,
		labelOutcome:   outcome,
	}

	if contextual, ok := o.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricOperationTotal, labels)
		return
	}

	o.metricsCollector.IncrementCounter(metricOperationTotal, labels)
}

func (o observability) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, recordstore.SpanContext) {
	if o.tracingCollector == nil {
		return ctx, nil
	}

	return o.tracingCollector.StartSpan(ctx, name, attrs)
}

func (o observability) finishSpan(span recordstore.SpanContext, status string, attrs map[string]string) {
	if o.tracingCollector == nil || span == nil {
		return
	}

	o.tracingCollector.FinishSpan(span, status, attrs)
}
