// Package dispatch provides a typed request-dispatch pipeline for CQRS
// applications.
//
// A Request is either a Command (state-changing) or a Query (read-only).
// Each request type has exactly one handler, registered at startup through a
// Config. Every dispatch runs through an ordered chain of behaviors before
// reaching the handler:
//
//   - LoggingBehavior records start and outcome of every dispatch
//   - PerformanceBehavior measures and classifies downstream latency
//   - ValidationBehavior rejects invalid requests before any side effect
//   - TransactionBehavior wraps command handlers in an atomic unit of work
//
// The first-registered behavior is the outermost wrapper, so pre-logic runs
// in registration order and post-logic in exact reverse order. Register
// logging before validation so rejected dispatches are still recorded.
//
// Common usage pattern:
//
//	cfg := dispatch.NewConfig()
//	_ = dispatch.RegisterHandler(cfg, createProductHandler)
//	cfg.AddBehavior(logging)
//	cfg.AddBehavior(performance)
//	cfg.AddBehavior(validation)
//	cfg.AddBehavior(transactional)
//
//	dispatcher, err := cfg.Build()
//	if err != nil {
//		// configuration error, abort startup
//	}
//
//	result, err := dispatch.Dispatch[CreateProductResult](ctx, dispatcher, cmd)
//
// All registries are immutable after Build and safe for concurrent
// dispatches. Per-call state lives in the DispatchContext, which carries the
// correlation identifier, the caller identity, and the active unit of work
// for nested command dispatches.
package dispatch
