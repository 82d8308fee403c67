package dispatch

import (
	"context"
	"sync"
)

// ValidationBehavior runs all validators registered for a request type before
// the rest of the chain. Requests with failures never reach the handler - the
// behavior short-circuits with an aggregated ValidationError. Request types
// without validators proceed immediately; validation is opt-in per type.
type ValidationBehavior struct {
	validators         map[string][]Validator
	stopOnFirstFailure bool
	concurrent         bool
	metricsCollector   MetricsCollector
}

// ValidationOption defines a functional option for configuring ValidationBehavior.
type ValidationOption func(*ValidationBehavior) error

// WithStopOnFirstFailure makes validator execution stop at the first
// validator reporting failures, reporting only the failures discovered up to
// that point. This trades completeness of the failure report for latency and
// is an explicit configuration choice, not the default. It forces sequential
// validator execution.
func WithStopOnFirstFailure() ValidationOption {
	return func(vb *ValidationBehavior) error {
		vb.stopOnFirstFailure = true
		return nil
	}
}

// WithConcurrentValidation runs the validators of one request concurrently.
// Safe only because validators are required to be free of cross-validator
// side effects. Ignored when stop-on-first-failure is enabled.
func WithConcurrentValidation() ValidationOption {
	return func(vb *ValidationBehavior) error {
		vb.concurrent = true
		return nil
	}
}

// WithValidationMetrics sets the metrics collector counting rejected dispatches.
func WithValidationMetrics(collector MetricsCollector) ValidationOption {
	return func(vb *ValidationBehavior) error {
		vb.metricsCollector = collector
		return nil
	}
}

// NewValidationBehavior creates a ValidationBehavior with optional configuration.
func NewValidationBehavior(options ...ValidationOption) (*ValidationBehavior, error) {
	vb := &ValidationBehavior{
		validators: make(map[string][]Validator),
	}

	for _, option := range options {
		if err := option(vb); err != nil {
			return nil, err
		}
	}

	return vb, nil
}

// RegisterValidator registers a validator for the request type Rq. Multiple
// validators per request type run in registration order (or concurrently,
// when enabled) and their failures aggregate into one report.
func RegisterValidator[Rq Request](vb *ValidationBehavior, validate func(ctx context.Context, request Rq) []Failure) {
	var zeroRequest Rq
	requestType := zeroRequest.RequestType()

	typed := ValidatorFunc(func(ctx context.Context, request Request) []Failure {
		return validate(ctx, request.(Rq))
	})

	vb.validators[requestType] = append(vb.validators[requestType], typed)
}

// Handle implements the Behavior interface. It collects every failure from
// every validator (unless stop-on-first-failure is enabled), orders them
// grouped by field path, and short-circuits with a ValidationError when any
// failure exists.
func (vb *ValidationBehavior) Handle(ctx context.Context, dctx *DispatchContext, request Request, next Next) (any, error) {
	validators := vb.validators[request.RequestType()]
	if len(validators) == 0 {
		return next(ctx)
	}

	var failures []Failure
	if vb.concurrent && !vb.stopOnFirstFailure {
		failures = vb.runConcurrently(ctx, request, validators)
	} else {
		failures = vb.runSequentially(ctx, request, validators)
	}

	if len(failures) == 0 {
		return next(ctx)
	}

	sortFailures(failures)

	incrementCounter(ctx, vb.metricsCollector, DispatchValidationFailedMetric,
		BuildDispatchLabels(request.RequestType(), StatusValidationFailed))

	return nil, &ValidationError{Failures: failures}
}

// runSequentially executes validators in registration order, stopping early
// only in stop-on-first-failure mode.
func (vb *ValidationBehavior) runSequentially(ctx context.Context, request Request, validators []Validator) []Failure {
	var failures []Failure

	for _, validator := range validators {
		failures = append(failures, validator.Validate(ctx, request)...)

		if vb.stopOnFirstFailure && len(failures) > 0 {
			break
		}
	}

	return failures
}

// runConcurrently executes all validators in parallel against the same
// request instance, then flattens the results in registration order so the
// aggregated report stays deterministic.
func (vb *ValidationBehavior) runConcurrently(ctx context.Context, request Request, validators []Validator) []Failure {
	resultsPerValidator := make([][]Failure, len(validators))

	var wg sync.WaitGroup
	for i, validator := range validators {
		wg.Add(1)
		go func(index int, v Validator) {
			defer wg.Done()
			resultsPerValidator[index] = v.Validate(ctx, request)
		}(i, validator)
	}
	wg.Wait()

	var failures []Failure
	for _, result := range resultsPerValidator {
		failures = append(failures, result...)
	}

	return failures
}

// Ensure ValidationBehavior implements Behavior.
var _ Behavior = (*ValidationBehavior)(nil)
