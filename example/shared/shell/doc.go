// Package shell contains the infrastructure for the product catalog example:
// the product store, the in-memory transaction manager and the wiring that
// assembles handlers, validators and behaviors into a dispatcher.
//
// The core package holds the pure domain logic; this package owns everything
// with side effects.
package shell
