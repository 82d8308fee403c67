package createproduct

import (
	"context"

	"github.com/google/uuid"

	"github.com/mediatorkit/dispatch-pipeline-go/example/shared/core"
)

// ProductStore defines the interface needed by the CommandHandler for persistence.
type ProductStore interface {
	Insert(ctx context.Context, product core.Product) error
}

// Result carries the outcome of creating a product.
type Result struct {
	ProductID uuid.UUID
}

// CommandHandler creates new products in the catalog. Validation has already
// run when Handle is called; it only enforces the uniqueness rule the store
// owns.
type CommandHandler struct {
	store ProductStore
}

// NewCommandHandler creates a new CommandHandler with the provided store dependency.
func NewCommandHandler(store ProductStore) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the create product use case.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	product := core.NewProduct(command.ProductID, command.Name, command.PriceCents, command.OccurredAt)

	if err := h.store.Insert(ctx, product); err != nil {
		return Result{}, err
	}

	return Result{ProductID: product.ID}, nil
}
