package dispatch

import "context"

// Next invokes the remainder of the behavior chain, ending at the handler.
// A behavior must either call next exactly once (continuing the chain) or
// short-circuit by returning without calling it - never both or neither.
type Next func(ctx context.Context) (any, error)

// Behavior is a composable interceptor wrapping dispatch execution for
// cross-cutting concerns. Behaviors are registered once at startup and shared
// across concurrent dispatches, so implementations must not keep per-call
// state on the receiver.
type Behavior interface {
	Handle(ctx context.Context, dctx *DispatchContext, request Request, next Next) (any, error)
}

// BehaviorFunc adapts a plain function to the Behavior interface.
type BehaviorFunc func(ctx context.Context, dctx *DispatchContext, request Request, next Next) (any, error)

// Handle implements the Behavior interface.
func (f BehaviorFunc) Handle(ctx context.Context, dctx *DispatchContext, request Request, next Next) (any, error) {
	return f(ctx, dctx, request, next)
}

// RequestFilter decides whether a behavior applies to a given request.
// A nil filter means the behavior applies to every request.
type RequestFilter func(request Request) bool

// behaviorEntry pairs a registered behavior with its optional filter.
type behaviorEntry struct {
	behavior Behavior
	filter   RequestFilter
}

// buildChain folds the behavior list right-to-left around the terminal link,
// so the first-registered behavior becomes the outermost wrapper. Behaviors
// whose filter rejects the request are skipped for this dispatch.
func buildChain(
	behaviors []behaviorEntry,
	dctx *DispatchContext,
	request Request,
	terminal Next,
) Next {

	next := terminal

	for i := len(behaviors) - 1; i >= 0; i-- {
		entry := behaviors[i]
		if entry.filter != nil && !entry.filter(request) {
			continue
		}

		inner := next
		behavior := entry.behavior
		next = func(ctx context.Context) (any, error) {
			return behavior.Handle(ctx, dctx, request, inner)
		}
	}

	return next
}
