package shell

import (
	"context"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

type identityContextKey struct{}

// WithCurrentUser attaches a caller identity to the context, the way an HTTP
// or gRPC authentication middleware would.
func WithCurrentUser(ctx context.Context, user dispatch.User) context.Context {
	return context.WithValue(ctx, identityContextKey{}, user)
}

// ContextIdentityProvider reads the caller identity placed on the context by
// WithCurrentUser.
type ContextIdentityProvider struct{}

// NewContextIdentityProvider creates a new ContextIdentityProvider.
func NewContextIdentityProvider() ContextIdentityProvider {
	return ContextIdentityProvider{}
}

// CurrentUser returns the identity from the context, if one was attached.
func (p ContextIdentityProvider) CurrentUser(ctx context.Context) (dispatch.User, bool) {
	user, ok := ctx.Value(identityContextKey{}).(dispatch.User)
	return user, ok
}

// Ensure ContextIdentityProvider implements dispatch.IdentityProvider.
var _ dispatch.IdentityProvider = ContextIdentityProvider{}
