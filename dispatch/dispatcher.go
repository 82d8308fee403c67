package dispatch

import (
	"context"
	"fmt"
)

// Dispatcher is the entry point of the pipeline. It resolves the handler for
// a request's runtime type, builds the effective behavior chain, and executes
// it with the per-call DispatchContext attached. The Dispatcher itself
// performs no I/O; all registries are read-only after Build, so one
// Dispatcher is safely shared across concurrent dispatches.
type Dispatcher struct {
	handlers  map[string]handlerEntry
	behaviors []behaviorEntry
	identity  IdentityProvider
}

// Dispatch executes one request through the behavior chain and the resolved
// handler, returning the handler's raw result. A dispatch issued from within
// an active dispatch (nested dispatch) reuses the enclosing DispatchContext,
// keeping the correlation identifier stable and the open unit of work visible.
func (d *Dispatcher) Dispatch(ctx context.Context, request Request) (any, error) {
	if request == nil {
		return nil, ErrNilRequest
	}

	entry, found := d.handlers[request.RequestType()]
	if !found {
		return nil, &HandlerNotFoundError{RequestType: request.RequestType()}
	}

	dctx, nested := DispatchContextFrom(ctx)
	if !nested {
		dctx = newDispatchContext(ctx, d.identity)
		ctx = withDispatchContext(ctx, dctx)
	}

	terminal := func(ctx context.Context) (any, error) {
		return entry.handle(ctx, request)
	}

	chain := buildChain(d.behaviors, dctx, request, terminal)

	return chain(ctx)
}

// Dispatch is the typed entry point, asserting the handler result to the
// declared result type R. A mismatch between R and the type the handler
// produced is a configuration bug reported as UnexpectedResultTypeError.
func Dispatch[R any](ctx context.Context, d *Dispatcher, request Request) (R, error) {
	var zero R

	raw, err := d.Dispatch(ctx, request)
	if err != nil {
		return zero, err
	}

	result, ok := raw.(R)
	if !ok {
		return zero, &UnexpectedResultTypeError{
			RequestType: request.RequestType(),
			Expected:    fmt.Sprintf("%T", zero),
			Actual:      fmt.Sprintf("%T", raw),
		}
	}

	return result, nil
}
