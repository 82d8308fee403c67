package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransactionManager is the persistence collaborator consumed by the
// TransactionBehavior. The pipeline does not know or care what the unit of
// work wraps - a SQL transaction, an in-memory store, or anything else.
type TransactionManager interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// UnitOfWork is an atomic boundary around the persistence operations of one
// command dispatch. It is owned exclusively by the dispatch call tree that
// created it and must never be referenced after that call returns.
type UnitOfWork interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// JournalEntry describes one command dispatch for the optional command journal.
type JournalEntry struct {
	RequestType   string
	CorrelationID uuid.UUID
	OccurredAt    time.Time
	Payload       []byte
}

// CommandJournaler is an optional extension of UnitOfWork. When the unit of
// work returned by a TransactionManager implements it, the TransactionBehavior
// journals every successfully handled command inside the transaction, just
// before commit. A journal failure fails the command and triggers rollback.
type CommandJournaler interface {
	JournalCommand(ctx context.Context, entry JournalEntry) error
}
