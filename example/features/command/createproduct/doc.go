// Package createproduct implements the Create Product use case.
//
// The command enters the catalog through the dispatch pipeline, so it is
// validated, logged, timed, and wrapped in a unit of work before the handler
// runs. The handler itself only enforces the uniqueness rule the store owns.
package createproduct
