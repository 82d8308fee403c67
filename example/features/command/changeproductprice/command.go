package changeproductprice

import (
	"time"

	"github.com/google/uuid"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

// Command represents the intent to change the price of a catalog product.
type Command struct {
	dispatch.CommandRequest

	ProductID     uuid.UUID
	NewPriceCents int64
	OccurredAt    time.Time
}

// RequestType returns the type identifier for this command.
func (c Command) RequestType() string {
	return "ChangeProductPrice"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(productID uuid.UUID, newPriceCents int64, occurredAt time.Time) Command {
	return Command{
		ProductID:     productID,
		NewPriceCents: newPriceCents,
		OccurredAt:    occurredAt,
	}
}
