package shell

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
	"github.com/mediatorkit/dispatch-pipeline-go/example/shared/core"
)

// InMemoryTransactionManager implements dispatch.TransactionManager over an
// InMemoryProductStore. Begin snapshots the catalog state; Rollback restores
// it. Journaled commands are captured in memory. Intended for the demo and
// for feature tests that need real rollback semantics without a database.
type InMemoryTransactionManager struct {
	store *InMemoryProductStore

	mu      sync.Mutex
	journal []dispatch.JournalEntry
}

// NewInMemoryTransactionManager creates a transaction manager bound to the given store.
func NewInMemoryTransactionManager(store *InMemoryProductStore) *InMemoryTransactionManager {
	return &InMemoryTransactionManager{store: store}
}

// Begin implements the dispatch.TransactionManager interface.
func (m *InMemoryTransactionManager) Begin(_ context.Context) (dispatch.UnitOfWork, error) {
	return &inMemoryUnitOfWork{
		manager:  m,
		snapshot: m.store.Snapshot(),
	}, nil
}

// Journal returns the entries journaled by committed units of work.
func (m *InMemoryTransactionManager) Journal() []dispatch.JournalEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]dispatch.JournalEntry(nil), m.journal...)
}

// inMemoryUnitOfWork holds the state snapshot taken at Begin. Commit drops
// it; Rollback restores it.
type inMemoryUnitOfWork struct {
	manager  *InMemoryTransactionManager
	snapshot map[uuid.UUID]core.Product
	pending  []dispatch.JournalEntry
}

// Commit implements the dispatch.UnitOfWork interface.
func (u *inMemoryUnitOfWork) Commit(_ context.Context) error {
	u.manager.mu.Lock()
	defer u.manager.mu.Unlock()

	u.manager.journal = append(u.manager.journal, u.pending...)
	u.pending = nil

	return nil
}

// Rollback implements the dispatch.UnitOfWork interface.
func (u *inMemoryUnitOfWork) Rollback(_ context.Context) error {
	u.manager.store.Restore(u.snapshot)
	u.pending = nil

	return nil
}

// JournalCommand implements the dispatch.CommandJournaler interface. Entries
// become visible in the manager's journal only on commit.
func (u *inMemoryUnitOfWork) JournalCommand(_ context.Context, entry dispatch.JournalEntry) error {
	u.pending = append(u.pending, entry)
	return nil
}

// Ensure InMemoryTransactionManager implements dispatch.TransactionManager.
var _ dispatch.TransactionManager = (*InMemoryTransactionManager)(nil)

// Ensure inMemoryUnitOfWork supports command journaling.
var _ dispatch.CommandJournaler = (*inMemoryUnitOfWork)(nil)
