package productsincatalog

import (
	"context"

	"github.com/mediatorkit/dispatch-pipeline-go/example/shared/core"
)

// ProductStore defines the interface needed by the QueryHandler for listing.
type ProductStore interface {
	All(ctx context.Context) ([]core.Product, error)
}

// QueryHandler lists the products in the catalog.
type QueryHandler struct {
	store ProductStore
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store ProductStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the catalog listing. The store returns products ordered by name.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (ProductsInCatalog, error) {
	products, err := h.store.All(ctx)
	if err != nil {
		return ProductsInCatalog{}, err
	}

	infos := make([]ProductInfo, 0, len(products))
	for _, product := range products {
		infos = append(infos, ProductInfo{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			CreatedAt:  product.CreatedAt,
		})
	}

	return ProductsInCatalog{Products: infos, Count: len(infos)}, nil
}
