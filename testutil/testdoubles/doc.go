// Package testdoubles provides test doubles (spies and stubs) for the
// pipeline's collaborator interfaces:
//   - LoggerSpy / ContextualLoggerSpy: capture structured logging calls
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures spans with start/end attributes
//   - TransactionManagerSpy: counts unit-of-work begins, commits, rollbacks
//     and journal entries, with scriptable failures
//   - IdentityProviderStub: returns a fixed caller identity
//
// These doubles enable testing of the dispatch pipeline's behaviors without
// real logging, metrics, tracing, or persistence backends.
package testdoubles
