package dispatch

import (
	"context"
	"time"
)

// PerformanceCategory classifies the wall-clock duration of one dispatch.
type PerformanceCategory string

const (
	CategoryFast       PerformanceCategory = "fast"
	CategoryNormal     PerformanceCategory = "normal"
	CategoryAcceptable PerformanceCategory = "acceptable"
	CategorySlow       PerformanceCategory = "slow"
	CategoryVerySlow   PerformanceCategory = "very_slow"
)

// PerformanceThresholds holds the upper bounds (exclusive) of the latency
// categories. Durations at or above Slow classify as very slow.
type PerformanceThresholds struct {
	Fast       time.Duration
	Normal     time.Duration
	Acceptable time.Duration
	Slow       time.Duration
}

// DefaultPerformanceThresholds returns the standard latency classification bounds.
func DefaultPerformanceThresholds() PerformanceThresholds {
	return PerformanceThresholds{
		Fast:       100 * time.Millisecond,
		Normal:     500 * time.Millisecond,
		Acceptable: time.Second,
		Slow:       3 * time.Second,
	}
}

// Categorize maps a measured duration onto its category.
func (t PerformanceThresholds) Categorize(elapsed time.Duration) PerformanceCategory {
	switch {
	case elapsed < t.Fast:
		return CategoryFast
	case elapsed < t.Normal:
		return CategoryNormal
	case elapsed < t.Acceptable:
		return CategoryAcceptable
	case elapsed < t.Slow:
		return CategorySlow
	default:
		return CategoryVerySlow
	}
}

// PerformanceBehavior measures wall-clock duration of everything downstream,
// including the TransactionBehavior and the handler, and classifies it.
// Timing is recorded even when the downstream chain fails - duration to
// failure is itself a signal. Dispatches exceeding the warning threshold emit
// an additional warning-level signal carrying the category, distinct from
// normal completion logging, so downstream alerting can filter on it.
type PerformanceBehavior struct {
	metricsCollector MetricsCollector
	logger           Logger
	contextualLogger ContextualLogger
	thresholds       PerformanceThresholds
	warnThreshold    time.Duration
}

// PerformanceOption defines a functional option for configuring PerformanceBehavior.
type PerformanceOption func(*PerformanceBehavior) error

// WithPerformanceMetrics sets the metrics collector recording dispatch durations.
func WithPerformanceMetrics(collector MetricsCollector) PerformanceOption {
	return func(pb *PerformanceBehavior) error {
		pb.metricsCollector = collector
		return nil
	}
}

// WithPerformanceLogger sets the basic logger for threshold warnings.
func WithPerformanceLogger(logger Logger) PerformanceOption {
	return func(pb *PerformanceBehavior) error {
		pb.logger = logger
		return nil
	}
}

// WithPerformanceContextualLogger sets the context-aware logger for threshold warnings.
func WithPerformanceContextualLogger(logger ContextualLogger) PerformanceOption {
	return func(pb *PerformanceBehavior) error {
		pb.contextualLogger = logger
		return nil
	}
}

// WithPerformanceThresholds overrides the latency classification bounds.
func WithPerformanceThresholds(thresholds PerformanceThresholds) PerformanceOption {
	return func(pb *PerformanceBehavior) error {
		pb.thresholds = thresholds
		return nil
	}
}

// WithWarnThreshold sets the duration at or above which the warning signal is
// emitted. Defaults to the Acceptable bound.
func WithWarnThreshold(threshold time.Duration) PerformanceOption {
	return func(pb *PerformanceBehavior) error {
		pb.warnThreshold = threshold
		return nil
	}
}

// NewPerformanceBehavior creates a PerformanceBehavior with optional configuration.
func NewPerformanceBehavior(options ...PerformanceOption) (*PerformanceBehavior, error) {
	pb := &PerformanceBehavior{
		thresholds: DefaultPerformanceThresholds(),
	}

	for _, option := range options {
		if err := option(pb); err != nil {
			return nil, err
		}
	}

	if pb.warnThreshold == 0 {
		pb.warnThreshold = pb.thresholds.Acceptable
	}

	return pb, nil
}

// Handle implements the Behavior interface.
func (pb *PerformanceBehavior) Handle(ctx context.Context, dctx *DispatchContext, request Request, next Next) (any, error) {
	start := time.Now()

	result, err := next(ctx)

	elapsed := time.Since(start)
	category := pb.thresholds.Categorize(elapsed)

	status := StatusSuccess
	if err != nil {
		status = classifyError(err)
	}

	labels := BuildDispatchLabels(request.RequestType(), status)
	labels[LogAttrPerformanceCategory] = string(category)

	recordDuration(ctx, pb.metricsCollector, DispatchDurationMetric, elapsed, labels)
	incrementCounter(ctx, pb.metricsCollector, DispatchCallsMetric, labels)

	if elapsed >= pb.warnThreshold {
		pb.emitSlowSignal(ctx, dctx, request, elapsed, category, status)
	}

	return result, err
}

// emitSlowSignal raises the warning-level signal for threshold-exceeding dispatches.
func (pb *PerformanceBehavior) emitSlowSignal(
	ctx context.Context,
	dctx *DispatchContext,
	request Request,
	elapsed time.Duration,
	category PerformanceCategory,
	status string,
) {

	labels := BuildDispatchLabels(request.RequestType(), status)
	labels[LogAttrPerformanceCategory] = string(category)
	incrementCounter(ctx, pb.metricsCollector, DispatchSlowMetric, labels)

	args := []any{
		LogAttrRequestType, request.RequestType(),
		LogAttrCorrelationID, dctx.CorrelationID().String(),
		LogAttrPerformanceCategory, string(category),
		LogAttrDurationMS, ToMilliseconds(elapsed),
		LogAttrStatus, status,
	}

	if pb.contextualLogger != nil {
		pb.contextualLogger.WarnContext(ctx, LogMsgDispatchSlow, args...)
	} else if pb.logger != nil {
		pb.logger.Warn(LogMsgDispatchSlow, args...)
	}
}

// Ensure PerformanceBehavior implements Behavior.
var _ Behavior = (*PerformanceBehavior)(nil)
