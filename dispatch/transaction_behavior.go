package dispatch

import (
	"context"
	"errors"
	"time"
)

// TransactionBehavior wraps command execution in an atomic unit of work,
// committing on success and rolling back on any propagated failure,
// cancellation included. Queries bypass it entirely. A nested command
// dispatch finding an active unit of work on the DispatchContext defers to
// it and performs no commit or rollback of its own, so the outermost
// transaction owns the boundary.
type TransactionBehavior struct {
	manager          TransactionManager
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	journalPayloads  bool
}

// TransactionOption defines a functional option for configuring TransactionBehavior.
type TransactionOption func(*TransactionBehavior) error

// WithTransactionLogger sets the basic logger reporting commit and rollback failures.
func WithTransactionLogger(logger Logger) TransactionOption {
	return func(tb *TransactionBehavior) error {
		tb.logger = logger
		return nil
	}
}

// WithTransactionContextualLogger sets the context-aware logger reporting
// commit and rollback failures.
func WithTransactionContextualLogger(logger ContextualLogger) TransactionOption {
	return func(tb *TransactionBehavior) error {
		tb.contextualLogger = logger
		return nil
	}
}

// WithTransactionMetrics sets the metrics collector counting commits and rollbacks.
func WithTransactionMetrics(collector MetricsCollector) TransactionOption {
	return func(tb *TransactionBehavior) error {
		tb.metricsCollector = collector
		return nil
	}
}

// WithCommandJournaling serializes each successfully handled command
// (sensitive-field-masked) into the unit of work's command journal before
// commit, when the unit of work supports journaling.
func WithCommandJournaling() TransactionOption {
	return func(tb *TransactionBehavior) error {
		tb.journalPayloads = true
		return nil
	}
}

// NewTransactionBehavior creates a TransactionBehavior bound to the given
// transaction manager. The manager is required.
func NewTransactionBehavior(manager TransactionManager, options ...TransactionOption) (*TransactionBehavior, error) {
	if manager == nil {
		return nil, ErrNilTransactionManager
	}

	tb := &TransactionBehavior{
		manager: manager,
	}

	for _, option := range options {
		if err := option(tb); err != nil {
			return nil, err
		}
	}

	return tb, nil
}

// Handle implements the Behavior interface.
func (tb *TransactionBehavior) Handle(ctx context.Context, dctx *DispatchContext, request Request, next Next) (any, error) {
	if request.RequestKind() != KindCommand {
		return next(ctx)
	}

	if _, active := dctx.ActiveUnitOfWork(); active {
		// nested command dispatch: the outermost boundary commits or rolls back
		return next(ctx)
	}

	uow, beginErr := tb.manager.Begin(ctx)
	if beginErr != nil {
		return nil, errors.Join(ErrBeginUnitOfWorkFailed, beginErr)
	}

	dctx.setUnitOfWork(uow)
	defer dctx.clearUnitOfWork()

	result, err := next(ctx)
	if err != nil {
		tb.rollback(ctx, dctx, uow, request)
		return nil, err
	}

	if journalErr := tb.journal(ctx, dctx, uow, request); journalErr != nil {
		tb.rollback(ctx, dctx, uow, request)
		return nil, errors.Join(ErrCommandJournalFailed, journalErr)
	}

	if commitErr := uow.Commit(ctx); commitErr != nil {
		tb.logCommitFailure(ctx, dctx, request, commitErr)
		return nil, &CommitError{RequestType: request.RequestType(), Err: commitErr}
	}

	incrementCounter(ctx, tb.metricsCollector, UnitOfWorkCommitMetric,
		BuildDispatchLabels(request.RequestType(), StatusSuccess))

	return result, nil
}

// journal records the command into the unit of work's journal when enabled
// and supported. Runs after the handler succeeded, inside the transaction.
func (tb *TransactionBehavior) journal(ctx context.Context, dctx *DispatchContext, uow UnitOfWork, request Request) error {
	if !tb.journalPayloads {
		return nil
	}

	journaler, supported := uow.(CommandJournaler)
	if !supported {
		return nil
	}

	payload, err := marshalMaskedPayload(request, 0)
	if err != nil {
		return err
	}

	return journaler.JournalCommand(ctx, JournalEntry{
		RequestType:   request.RequestType(),
		CorrelationID: dctx.CorrelationID(),
		OccurredAt:    time.Now(),
		Payload:       []byte(payload),
	})
}

// rollback rolls the unit of work back after a downstream failure. A
// rollback failure is reported at error level but never masks the original
// error, which observability behaviors need intact.
func (tb *TransactionBehavior) rollback(ctx context.Context, dctx *DispatchContext, uow UnitOfWork, request Request) {
	incrementCounter(ctx, tb.metricsCollector, UnitOfWorkRollbackMetric,
		BuildDispatchLabels(request.RequestType(), StatusError))

	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil {
		args := []any{
			LogAttrRequestType, request.RequestType(),
			LogAttrCorrelationID, dctx.CorrelationID().String(),
			LogAttrError, rollbackErr.Error(),
		}

		if tb.contextualLogger != nil {
			tb.contextualLogger.ErrorContext(ctx, LogMsgRollbackFailed, args...)
		} else if tb.logger != nil {
			tb.logger.Error(LogMsgRollbackFailed, args...)
		}
	}
}

// logCommitFailure reports the data-consistency risk of a failed commit
// after successful handler execution.
func (tb *TransactionBehavior) logCommitFailure(ctx context.Context, dctx *DispatchContext, request Request, commitErr error) {
	args := []any{
		LogAttrRequestType, request.RequestType(),
		LogAttrCorrelationID, dctx.CorrelationID().String(),
		LogAttrError, commitErr.Error(),
	}

	if tb.contextualLogger != nil {
		tb.contextualLogger.ErrorContext(ctx, LogMsgCommitFailed, args...)
	} else if tb.logger != nil {
		tb.logger.Error(LogMsgCommitFailed, args...)
	}
}

// Ensure TransactionBehavior implements Behavior.
var _ Behavior = (*TransactionBehavior)(nil)
