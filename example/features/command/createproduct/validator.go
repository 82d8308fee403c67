package createproduct

import (
	"context"

	"github.com/google/uuid"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

const maxNameLength = 200

// ValidateCommand checks the structural validity of a create product command.
// It reports every violation so callers can fix their input in one round trip.
func ValidateCommand(_ context.Context, command Command) []dispatch.Failure {
	var failures []dispatch.Failure

	if command.ProductID == uuid.Nil {
		failures = append(failures, dispatch.NewFailure(
			"productId", "must not be empty", "required", command.ProductID))
	}

	if command.Name == "" {
		failures = append(failures, dispatch.NewFailure(
			"name", "must not be empty", "required", command.Name))
	} else if len(command.Name) > maxNameLength {
		failures = append(failures, dispatch.NewFailure(
			"name", "must be at most 200 characters", "max_length", command.Name))
	}

	if command.PriceCents <= 0 {
		failures = append(failures, dispatch.NewFailure(
			"priceCents", "must be positive", "min", command.PriceCents))
	}

	return failures
}
