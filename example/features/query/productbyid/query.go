package productbyid

import (
	"github.com/google/uuid"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

// Query represents the intent to look up one product by its ID.
type Query struct {
	dispatch.QueryRequest

	ProductID uuid.UUID
}

// RequestType returns the type identifier for this query.
func (q Query) RequestType() string {
	return "ProductByID"
}

// BuildQuery creates a new Query for the given product ID.
func BuildQuery(productID uuid.UUID) Query {
	return Query{ProductID: productID}
}
