package productsincatalog

import (
	"time"

	"github.com/google/uuid"
)

// ProductInfo represents information about one product in the catalog listing.
type ProductInfo struct {
	ProductID  uuid.UUID
	Name       string
	PriceCents int64
	CreatedAt  time.Time
}

// ProductsInCatalog represents the query result containing all products, ordered by name.
type ProductsInCatalog struct {
	Products []ProductInfo
	Count    int
}
