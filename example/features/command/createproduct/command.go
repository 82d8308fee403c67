package createproduct

import (
	"time"

	"github.com/google/uuid"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

// Command represents the intent to add a new product to the catalog.
type Command struct {
	dispatch.CommandRequest

	ProductID  uuid.UUID
	Name       string
	PriceCents int64
	OccurredAt time.Time
}

// RequestType returns the type identifier for this command.
func (c Command) RequestType() string {
	return "CreateProduct"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(productID uuid.UUID, name string, priceCents int64, occurredAt time.Time) Command {
	return Command{
		ProductID:  productID,
		Name:       name,
		PriceCents: priceCents,
		OccurredAt: occurredAt,
	}
}
