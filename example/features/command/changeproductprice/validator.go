package changeproductprice

import (
	"context"

	"github.com/google/uuid"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

// ValidateCommand checks the structural validity of a price change command.
func ValidateCommand(_ context.Context, command Command) []dispatch.Failure {
	var failures []dispatch.Failure

	if command.ProductID == uuid.Nil {
		failures = append(failures, dispatch.NewFailure(
			"productId", "must not be empty", "required", command.ProductID))
	}

	if command.NewPriceCents <= 0 {
		failures = append(failures, dispatch.NewFailure(
			"newPriceCents", "must be positive", "min", command.NewPriceCents))
	}

	return failures
}
