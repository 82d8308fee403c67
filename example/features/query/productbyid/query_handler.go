package productbyid

import (
	"context"

	"github.com/google/uuid"

	"github.com/mediatorkit/dispatch-pipeline-go/example/shared/core"
)

// ProductStore defines the interface needed by the QueryHandler for lookups.
type ProductStore interface {
	ByID(ctx context.Context, id uuid.UUID) (core.Product, error)
}

// QueryHandler looks up a single product in the catalog.
type QueryHandler struct {
	store ProductStore
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store ProductStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the product lookup.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ProductView, error) {
	product, err := h.store.ByID(ctx, query.ProductID)
	if err != nil {
		return ProductView{}, err
	}

	return ProductView{
		ProductID:  product.ID,
		Name:       product.Name,
		PriceCents: product.PriceCents,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}, nil
}
