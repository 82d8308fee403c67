package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const defaultSlowThreshold = time.Second

// LoggingBehavior wraps every dispatch with a start record and exactly one
// terminal record. Failures are never swallowed: handler and infrastructure
// errors log at error level with the full error attached, while validation
// rejections log at warning level since they are user-correctable, not
// system faults. Successful dispatches at or above the slow threshold
// escalate from informational to warning level.
type LoggingBehavior struct {
	logger           Logger
	contextualLogger ContextualLogger
	tracingCollector TracingCollector
	slowThreshold    time.Duration
	logPayloads      bool
	maxPayloadBytes  int
}

// LoggingOption defines a functional option for configuring LoggingBehavior.
type LoggingOption func(*LoggingBehavior) error

// WithLogger sets the basic logger for the LoggingBehavior.
func WithLogger(logger Logger) LoggingOption {
	return func(lb *LoggingBehavior) error {
		lb.logger = logger
		return nil
	}
}

// WithContextualLogger sets the context-aware logger for the LoggingBehavior.
// When both loggers are configured, the contextual logger takes precedence.
func WithContextualLogger(logger ContextualLogger) LoggingOption {
	return func(lb *LoggingBehavior) error {
		lb.contextualLogger = logger
		return nil
	}
}

// WithTracing sets the tracing collector for the LoggingBehavior. Each
// dispatch is wrapped in one span carrying the request type and outcome.
func WithTracing(collector TracingCollector) LoggingOption {
	return func(lb *LoggingBehavior) error {
		lb.tracingCollector = collector
		return nil
	}
}

// WithSlowThreshold sets the duration at or above which successful dispatches
// log at warning level instead of informational level.
func WithSlowThreshold(threshold time.Duration) LoggingOption {
	return func(lb *LoggingBehavior) error {
		lb.slowThreshold = threshold
		return nil
	}
}

// WithPayloadLogging enables opt-in request/result payload logging. Payloads
// are sensitive-field-masked and truncated to maxBytes before being recorded.
func WithPayloadLogging(maxBytes int) LoggingOption {
	return func(lb *LoggingBehavior) error {
		lb.logPayloads = true
		lb.maxPayloadBytes = maxBytes
		return nil
	}
}

// NewLoggingBehavior creates a LoggingBehavior with optional configuration.
func NewLoggingBehavior(options ...LoggingOption) (*LoggingBehavior, error) {
	lb := &LoggingBehavior{
		slowThreshold: defaultSlowThreshold,
	}

	for _, option := range options {
		if err := option(lb); err != nil {
			return nil, err
		}
	}

	return lb, nil
}

// Handle implements the Behavior interface.
func (lb *LoggingBehavior) Handle(ctx context.Context, dctx *DispatchContext, request Request, next Next) (any, error) {
	start := time.Now()

	startArgs := lb.dispatchArgs(dctx, request)
	if lb.logPayloads {
		if payload, err := marshalMaskedPayload(request, lb.maxPayloadBytes); err == nil {
			startArgs = append(startArgs, LogAttrRequestPayload, payload)
		}
	}

	ctx, span := lb.startSpan(ctx, request)
	lb.logInfo(ctx, LogMsgDispatchStarted, startArgs...)

	result, err := next(ctx)
	elapsed := time.Since(start)

	if err != nil {
		lb.recordFailure(ctx, dctx, request, err, elapsed, span)
		return nil, err
	}

	lb.recordSuccess(ctx, dctx, request, result, elapsed, span)

	return result, nil
}

// recordSuccess emits the terminal record for a successful dispatch.
func (lb *LoggingBehavior) recordSuccess(
	ctx context.Context,
	dctx *DispatchContext,
	request Request,
	result any,
	elapsed time.Duration,
	span SpanContext,
) {

	args := lb.dispatchArgs(dctx, request)
	args = append(args,
		LogAttrStatus, StatusSuccess,
		LogAttrDurationMS, ToMilliseconds(elapsed),
	)

	if lb.logPayloads && result != nil {
		if payload, payloadErr := marshalMaskedPayload(result, lb.maxPayloadBytes); payloadErr == nil {
			args = append(args, LogAttrResultPayload, payload)
		}
	}

	if elapsed >= lb.slowThreshold {
		lb.logWarn(ctx, LogMsgDispatchCompleted, args...)
	} else {
		lb.logInfo(ctx, LogMsgDispatchCompleted, args...)
	}

	lb.finishSpan(span, StatusSuccess, elapsed, nil)
}

// recordFailure emits the terminal record for a failed dispatch. Validation
// rejections are warnings; every other failure is an error with the original
// error attached unchanged.
func (lb *LoggingBehavior) recordFailure(
	ctx context.Context,
	dctx *DispatchContext,
	request Request,
	err error,
	elapsed time.Duration,
	span SpanContext,
) {

	status := classifyError(err)

	args := lb.dispatchArgs(dctx, request)
	args = append(args,
		LogAttrStatus, status,
		LogAttrDurationMS, ToMilliseconds(elapsed),
		LogAttrError, err.Error(),
	)

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		args = append(args, LogAttrFailureCount, len(validationErr.Failures))
		lb.logWarn(ctx, LogMsgDispatchRejected, args...)
	} else {
		lb.logError(ctx, LogMsgDispatchFailed, args...)
	}

	lb.finishSpan(span, status, elapsed, err)
}

// dispatchArgs composes the attributes shared by every record of one dispatch.
func (lb *LoggingBehavior) dispatchArgs(dctx *DispatchContext, request Request) []any {
	args := []any{
		LogAttrRequestType, request.RequestType(),
		LogAttrRequestKind, request.RequestKind().String(),
		LogAttrCorrelationID, dctx.CorrelationID().String(),
	}

	if user, ok := dctx.User(); ok {
		args = append(args, LogAttrUserID, user.ID)
	}

	return args
}

func (lb *LoggingBehavior) startSpan(ctx context.Context, request Request) (context.Context, SpanContext) {
	if lb.tracingCollector == nil {
		return ctx, nil
	}

	return lb.tracingCollector.StartSpan(ctx, SpanNameDispatch, map[string]string{
		LogAttrRequestType: request.RequestType(),
		LogAttrRequestKind: request.RequestKind().String(),
	})
}

func (lb *LoggingBehavior) finishSpan(span SpanContext, status string, elapsed time.Duration, err error) {
	if lb.tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: fmt.Sprintf("%.2f", ToMilliseconds(elapsed)),
	}
	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	lb.tracingCollector.FinishSpan(span, status, attrs)
}

func (lb *LoggingBehavior) logInfo(ctx context.Context, msg string, args ...any) {
	if lb.contextualLogger != nil {
		lb.contextualLogger.InfoContext(ctx, msg, args...)
	} else if lb.logger != nil {
		lb.logger.Info(msg, args...)
	}
}

func (lb *LoggingBehavior) logWarn(ctx context.Context, msg string, args ...any) {
	if lb.contextualLogger != nil {
		lb.contextualLogger.WarnContext(ctx, msg, args...)
	} else if lb.logger != nil {
		lb.logger.Warn(msg, args...)
	}
}

func (lb *LoggingBehavior) logError(ctx context.Context, msg string, args ...any) {
	if lb.contextualLogger != nil {
		lb.contextualLogger.ErrorContext(ctx, msg, args...)
	} else if lb.logger != nil {
		lb.logger.Error(msg, args...)
	}
}

// Ensure LoggingBehavior implements Behavior.
var _ Behavior = (*LoggingBehavior)(nil)
