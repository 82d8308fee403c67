package productsincatalog

import (
	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

// Query represents the intent to list every product in the catalog.
type Query struct {
	dispatch.QueryRequest
}

// RequestType returns the type identifier for this query.
func (q Query) RequestType() string {
	return "ProductsInCatalog"
}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}
