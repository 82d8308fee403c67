package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when a product does not exist in the catalog.
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrProductAlreadyExists is returned when a product with the same ID is added twice.
	ErrProductAlreadyExists = errors.New("product already exists in catalog")
)

// Product is one product in the catalog. Prices are stored in cents to avoid
// floating point arithmetic on money.
type Product struct {
	ID         uuid.UUID
	Name       string
	PriceCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewProduct creates a Product with the provided attributes.
func NewProduct(id uuid.UUID, name string, priceCents int64, createdAt time.Time) Product {
	return Product{
		ID:         id,
		Name:       name,
		PriceCents: priceCents,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

// WithPrice returns a copy of the product with a new price.
func (p Product) WithPrice(priceCents int64, changedAt time.Time) Product {
	p.PriceCents = priceCents
	p.UpdatedAt = changedAt

	return p
}
