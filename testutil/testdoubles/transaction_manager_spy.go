package testdoubles

import (
	"context"
	"sync"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

// TransactionManagerSpy is a TransactionManager implementation that counts
// unit-of-work lifecycle calls for testing the TransactionBehavior. Failures
// of Begin, Commit, Rollback, and JournalCommand are scriptable.
type TransactionManagerSpy struct {
	beginErr    error
	commitErr   error
	rollbackErr error
	journalErr  error

	beginCalls    int
	commitCalls   int
	rollbackCalls int

	journalEntries []dispatch.JournalEntry

	mu sync.Mutex
}

// NewTransactionManagerSpy creates a new TransactionManagerSpy.
func NewTransactionManagerSpy() *TransactionManagerSpy {
	return &TransactionManagerSpy{}
}

// FailBeginWith scripts Begin to fail with the given error.
func (s *TransactionManagerSpy) FailBeginWith(err error) *TransactionManagerSpy {
	s.beginErr = err
	return s
}

// FailCommitWith scripts Commit to fail with the given error.
func (s *TransactionManagerSpy) FailCommitWith(err error) *TransactionManagerSpy {
	s.commitErr = err
	return s
}

// FailRollbackWith scripts Rollback to fail with the given error.
func (s *TransactionManagerSpy) FailRollbackWith(err error) *TransactionManagerSpy {
	s.rollbackErr = err
	return s
}

// FailJournalWith scripts JournalCommand to fail with the given error.
func (s *TransactionManagerSpy) FailJournalWith(err error) *TransactionManagerSpy {
	s.journalErr = err
	return s
}

// Begin implements the TransactionManager interface for testing.
func (s *TransactionManagerSpy) Begin(_ context.Context) (dispatch.UnitOfWork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.beginErr != nil {
		return nil, s.beginErr
	}

	s.beginCalls++

	return &unitOfWorkSpy{manager: s}, nil
}

// BeginCalls returns the number of successfully opened units of work.
func (s *TransactionManagerSpy) BeginCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beginCalls
}

// CommitCalls returns the number of commit attempts.
func (s *TransactionManagerSpy) CommitCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitCalls
}

// RollbackCalls returns the number of rollback attempts.
func (s *TransactionManagerSpy) RollbackCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbackCalls
}

// JournalEntries returns a copy of all journaled commands.
func (s *TransactionManagerSpy) JournalEntries() []dispatch.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dispatch.JournalEntry(nil), s.journalEntries...)
}

// Reset clears all counters, entries, and scripted failures.
func (s *TransactionManagerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beginErr = nil
	s.commitErr = nil
	s.rollbackErr = nil
	s.journalErr = nil
	s.beginCalls = 0
	s.commitCalls = 0
	s.rollbackCalls = 0
	s.journalEntries = nil
}

// unitOfWorkSpy reports lifecycle calls back to its manager.
type unitOfWorkSpy struct {
	manager *TransactionManagerSpy
}

// Commit implements the UnitOfWork interface for testing.
func (u *unitOfWorkSpy) Commit(_ context.Context) error {
	u.manager.mu.Lock()
	defer u.manager.mu.Unlock()

	u.manager.commitCalls++

	return u.manager.commitErr
}

// Rollback implements the UnitOfWork interface for testing.
func (u *unitOfWorkSpy) Rollback(_ context.Context) error {
	u.manager.mu.Lock()
	defer u.manager.mu.Unlock()

	u.manager.rollbackCalls++

	return u.manager.rollbackErr
}

// JournalCommand implements the CommandJournaler interface for testing.
func (u *unitOfWorkSpy) JournalCommand(_ context.Context, entry dispatch.JournalEntry) error {
	u.manager.mu.Lock()
	defer u.manager.mu.Unlock()

	if u.manager.journalErr != nil {
		return u.manager.journalErr
	}

	u.manager.journalEntries = append(u.manager.journalEntries, entry)

	return nil
}

// Ensure the spies implement the pipeline collaborator interfaces.
var _ dispatch.TransactionManager = (*TransactionManagerSpy)(nil)
var _ dispatch.UnitOfWork = (*unitOfWorkSpy)(nil)
var _ dispatch.CommandJournaler = (*unitOfWorkSpy)(nil)

// IdentityProviderStub returns a fixed caller identity.
type IdentityProviderStub struct {
	User      dispatch.User
	Available bool
}

// NewIdentityProviderStub creates a stub returning the given user.
func NewIdentityProviderStub(user dispatch.User) *IdentityProviderStub {
	return &IdentityProviderStub{User: user, Available: true}
}

// CurrentUser implements the IdentityProvider interface for testing.
func (s *IdentityProviderStub) CurrentUser(_ context.Context) (dispatch.User, bool) {
	return s.User, s.Available
}

// Ensure IdentityProviderStub implements dispatch.IdentityProvider.
var _ dispatch.IdentityProvider = (*IdentityProviderStub)(nil)
