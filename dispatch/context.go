package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User describes the caller identity attached to a dispatch, as provided by
// an IdentityProvider at dispatch entry.
type User struct {
	ID            string
	Name          string
	Authenticated bool
}

// IdentityProvider supplies the ambient caller identity for a dispatch.
// Implementations typically read authentication data from the context
// (HTTP middleware, gRPC metadata). The second return value reports whether
// an identity is available at all.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (User, bool)
}

// DispatchContext is the ephemeral per-call state of one dispatch call tree.
// It is created when a dispatch enters the pipeline from the outside and is
// reused by nested dispatches issued from within a handler, so the
// correlation identifier stays stable and an already-open unit of work is
// visible to inner command dispatches. It is never stored globally and must
// not be referenced after the outermost dispatch returns.
type DispatchContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
	user          *User
	uow           UnitOfWork
}

// CorrelationID returns the identifier shared by all log records, spans and
// journal entries of one external call, including nested dispatches.
func (d *DispatchContext) CorrelationID() uuid.UUID {
	return d.correlationID
}

// StartedAt returns the timestamp at which the outermost dispatch entered the pipeline.
func (d *DispatchContext) StartedAt() time.Time {
	return d.startedAt
}

// User returns the caller identity, if one was available at dispatch entry.
func (d *DispatchContext) User() (User, bool) {
	if d.user == nil {
		return User{}, false
	}

	return *d.user, true
}

// ActiveUnitOfWork returns the unit of work opened by an enclosing
// TransactionBehavior, if any. An inner command dispatch finding an active
// unit of work must not open a second one.
func (d *DispatchContext) ActiveUnitOfWork() (UnitOfWork, bool) {
	if d.uow == nil {
		return nil, false
	}

	return d.uow, true
}

// setUnitOfWork attaches the unit of work owned by the outermost transaction boundary.
func (d *DispatchContext) setUnitOfWork(uow UnitOfWork) {
	d.uow = uow
}

// clearUnitOfWork detaches the unit of work when the owning boundary closes.
func (d *DispatchContext) clearUnitOfWork() {
	d.uow = nil
}

type dispatchContextKey struct{}

type correlationIDKey struct{}

// WithCorrelationID seeds the context with a correlation identifier generated
// outside the pipeline (for example by HTTP middleware). The next dispatch
// entering the pipeline on this context reuses the identifier instead of
// generating a fresh one.
func WithCorrelationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationIDFrom extracts a pre-seeded correlation identifier from the context.
func CorrelationIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(correlationIDKey{}).(uuid.UUID)
	return id, ok
}

// DispatchContextFrom extracts the active DispatchContext from the context.
// Handlers use this to access the correlation identifier or issue nested
// dispatches within the same call tree.
func DispatchContextFrom(ctx context.Context) (*DispatchContext, bool) {
	dctx, ok := ctx.Value(dispatchContextKey{}).(*DispatchContext)
	return dctx, ok
}

// withDispatchContext attaches the per-call state so nested dispatches find it.
func withDispatchContext(ctx context.Context, dctx *DispatchContext) context.Context {
	return context.WithValue(ctx, dispatchContextKey{}, dctx)
}

// newDispatchContext creates the per-call state for an outermost dispatch.
func newDispatchContext(ctx context.Context, identity IdentityProvider) *DispatchContext {
	dctx := &DispatchContext{
		startedAt: time.Now(),
	}

	if id, ok := CorrelationIDFrom(ctx); ok {
		dctx.correlationID = id
	} else {
		dctx.correlationID = uuid.New()
	}

	if identity != nil {
		if user, ok := identity.CurrentUser(ctx); ok {
			dctx.user = &user
		}
	}

	return dctx
}
