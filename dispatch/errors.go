package dispatch

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNilRequest is returned when Dispatch is called with a nil request.
	ErrNilRequest = errors.New("nil request supplied to dispatch")

	// ErrNilHandler is returned when a nil handler function is registered.
	ErrNilHandler = errors.New("nil handler function supplied")

	// ErrNilTransactionManager is returned when a TransactionBehavior is built without a transaction manager.
	ErrNilTransactionManager = errors.New("nil transaction manager supplied")

	// ErrInvalidRequestKind is returned when a request type declares neither KindCommand nor KindQuery.
	ErrInvalidRequestKind = errors.New("request type declares an invalid request kind")

	// ErrBeginUnitOfWorkFailed wraps failures to open a unit of work for a command dispatch.
	ErrBeginUnitOfWorkFailed = errors.New("failed to begin unit of work")

	// ErrCommandJournalFailed wraps failures to journal a command inside its unit of work.
	ErrCommandJournalFailed = errors.New("failed to journal command")
)

// HandlerNotFoundError reports a dispatch for a request type with no
// registered handler. This is a configuration bug: it is fatal and must not
// be retried.
type HandlerNotFoundError struct {
	RequestType string
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("no handler registered for request type %q", e.RequestType)
}

// DuplicateHandlerError reports a second handler registration for the same
// request type. It surfaces at registration time, never at dispatch time.
type DuplicateHandlerError struct {
	RequestType string
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("handler already registered for request type %q", e.RequestType)
}

// UnexpectedResultTypeError reports that a handler produced a result of a
// different type than the caller of the typed Dispatch entry point declared.
type UnexpectedResultTypeError struct {
	RequestType string
	Expected    string
	Actual      string
}

func (e *UnexpectedResultTypeError) Error() string {
	return fmt.Sprintf("handler for request type %q produced result of type %s, expected %s",
		e.RequestType, e.Actual, e.Expected)
}

// ValidationError aggregates every failure discovered by the validators of
// one request. It is expected and user-correctable: observability behaviors
// log it at warning severity at most, never as a system fault.
type ValidationError struct {
	Failures []Failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d failure(s)", len(e.Failures))
}

// FailuresFor returns the failures recorded for one field path, in validator
// registration order.
func (e *ValidationError) FailuresFor(field string) []Failure {
	var matching []Failure
	for _, failure := range e.Failures {
		if failure.Field == field {
			matching = append(matching, failure)
		}
	}

	return matching
}

// CommitError reports a commit failure after the handler already succeeded.
// It is a distinct, higher-severity condition than a normal handler failure
// because effects may have been partially applied.
type CommitError struct {
	RequestType string
	Err         error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed after successful execution of %q: %v", e.RequestType, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// IsValidationError checks whether an error is an aggregated validation failure.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsCommitError checks whether an error is a commit-after-success failure.
func IsCommitError(err error) bool {
	var commitErr *CommitError
	return errors.As(err, &commitErr)
}

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// classifyError maps an error onto the status label used by logging and
// metrics. Behaviors never convert one error kind into another; this
// classification only decorates observability output.
func classifyError(err error) string {
	switch {
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	case IsValidationError(err):
		return StatusValidationFailed
	case IsCommitError(err):
		return StatusCommitFailed
	default:
		return StatusError
	}
}
