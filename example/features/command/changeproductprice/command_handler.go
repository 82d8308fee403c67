package changeproductprice

import (
	"context"

	"github.com/google/uuid"

	"github.com/mediatorkit/dispatch-pipeline-go/example/shared/core"
)

// ProductStore defines the interface needed by the CommandHandler for persistence.
type ProductStore interface {
	ByID(ctx context.Context, id uuid.UUID) (core.Product, error)
	Update(ctx context.Context, product core.Product) error
}

// Result carries the outcome of a price change.
type Result struct {
	ProductID     uuid.UUID
	OldPriceCents int64
	NewPriceCents int64
}

// CommandHandler changes the price of an existing product.
type CommandHandler struct {
	store ProductStore
}

// NewCommandHandler creates a new CommandHandler with the provided store dependency.
func NewCommandHandler(store ProductStore) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the change product price use case. Changing the price of a
// missing product is a domain error, not a validation failure: structurally
// the command is fine, the catalog state just does not allow it.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	product, err := h.store.ByID(ctx, command.ProductID)
	if err != nil {
		return Result{}, err
	}

	oldPrice := product.PriceCents

	changed := product.WithPrice(command.NewPriceCents, command.OccurredAt)
	if err = h.store.Update(ctx, changed); err != nil {
		return Result{}, err
	}

	return Result{
		ProductID:     product.ID,
		OldPriceCents: oldPrice,
		NewPriceCents: changed.PriceCents,
	}, nil
}
