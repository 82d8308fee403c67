package dispatch

import (
	"context"
	"time"
)

// Logger interface for operational logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic trace correlation.
// This interface follows the same dependency-free pattern as MetricsCollector and
// TracingCollector, allowing users to integrate with any logging backend
// (OpenTelemetry, structured loggers, etc.) that supports context-based correlation.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting pipeline performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods for
// better tracing integration. This interface is optional - behaviors use the
// context-aware methods when available, falling back to the base MetricsCollector
// interface otherwise.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for collecting distributed tracing information from
// pipeline operations. Implement it to integrate with any tracing backend
// (OpenTelemetry, Jaeger, Zipkin, etc.) without a direct dependency.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

const (
	// DispatchDurationMetric tracks end-to-end dispatch duration (OpenTelemetry-compatible).
	DispatchDurationMetric = "dispatch_duration_seconds"

	// DispatchCallsMetric tracks total dispatches.
	DispatchCallsMetric = "dispatch_calls_total"

	// DispatchSlowMetric tracks dispatches exceeding the configured warning threshold.
	//
	// Labels:
	//   - request_type: Type of request being dispatched
	//   - performance_category: Latency classification (fast .. very_slow)
	//
	// Use cases:
	//   - Alert on slow operations: increase(dispatch_slow_total[5m]) > 0
	//   - Identify degrading request types: rate(dispatch_slow_total[1h]) by (request_type)
	DispatchSlowMetric = "dispatch_slow_total"

	// DispatchValidationFailedMetric tracks dispatches rejected by validation.
	DispatchValidationFailedMetric = "dispatch_validation_failed_total"

	// UnitOfWorkCommitMetric tracks unit-of-work commits.
	UnitOfWorkCommitMetric = "unitofwork_commits_total"

	// UnitOfWorkRollbackMetric tracks unit-of-work rollbacks.
	UnitOfWorkRollbackMetric = "unitofwork_rollbacks_total"

	// StatusSuccess indicates successful completion.
	StatusSuccess = "success"

	// StatusError indicates a handler or infrastructure failure.
	StatusError = "error"

	// StatusCanceled indicates the operation was canceled due to context cancellation.
	StatusCanceled = "canceled"

	// StatusTimeout indicates the operation timed out due to context deadline exceeded.
	StatusTimeout = "timeout"

	// StatusValidationFailed indicates the request was rejected by validation.
	StatusValidationFailed = "validation_failed"

	// StatusCommitFailed indicates a commit failure after successful handler execution.
	StatusCommitFailed = "commit_failed"

	// LogMsgDispatchStarted is logged when a dispatch enters the pipeline.
	LogMsgDispatchStarted = "dispatch started"

	// LogMsgDispatchCompleted is logged when a dispatch completes successfully.
	LogMsgDispatchCompleted = "dispatch completed"

	// LogMsgDispatchFailed is logged when a dispatch fails.
	LogMsgDispatchFailed = "dispatch failed"

	// LogMsgDispatchRejected is logged when a dispatch is rejected by validation.
	LogMsgDispatchRejected = "dispatch rejected by validation"

	// LogMsgDispatchSlow is logged when downstream latency exceeds the warning threshold.
	LogMsgDispatchSlow = "dispatch exceeded latency threshold"

	// LogMsgRollbackFailed is logged when a rollback fails after a handler error.
	LogMsgRollbackFailed = "unit of work rollback failed"

	// LogMsgCommitFailed is logged when a commit fails after handler success.
	LogMsgCommitFailed = "unit of work commit failed after successful execution"

	// LogAttrRequestType identifies the request type in logs.
	LogAttrRequestType = "request_type"

	// LogAttrRequestKind identifies the request kind (command/query) in logs.
	LogAttrRequestKind = "request_kind"

	// LogAttrCorrelationID carries the per-call correlation identifier.
	LogAttrCorrelationID = "correlation_id"

	// LogAttrUserID identifies the caller, when an identity is available.
	LogAttrUserID = "user_id"

	// LogAttrStatus indicates the dispatch outcome status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrError contains error details.
	LogAttrError = "error"

	// LogAttrFailureCount indicates the number of validation failures.
	LogAttrFailureCount = "failure_count"

	// LogAttrPerformanceCategory carries the latency classification.
	LogAttrPerformanceCategory = "performance_category"

	// LogAttrRequestPayload carries the serialized request payload when payload logging is enabled.
	LogAttrRequestPayload = "request_payload"

	// LogAttrResultPayload carries the serialized result payload when payload logging is enabled.
	LogAttrResultPayload = "result_payload"

	// SpanNameDispatch is the tracing span name for dispatch execution.
	SpanNameDispatch = "dispatcher.dispatch"
)

// BuildDispatchLabels creates standard metric labels for dispatch operations.
func BuildDispatchLabels(requestType, status string) map[string]string {
	return map[string]string{
		LogAttrRequestType: requestType,
		LogAttrStatus:      status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// recordDuration records a duration metric, preferring the context-aware collector.
func recordDuration(
	ctx context.Context,
	collector MetricsCollector,
	metric string,
	duration time.Duration,
	labels map[string]string,
) {
	if collector == nil {
		return
	}

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
	} else {
		collector.RecordDuration(metric, duration, labels)
	}
}

// incrementCounter increments a counter metric, preferring the context-aware collector.
func incrementCounter(
	ctx context.Context,
	collector MetricsCollector,
	metric string,
	labels map[string]string,
) {
	if collector == nil {
		return
	}

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
	} else {
		collector.IncrementCounter(metric, labels)
	}
}
