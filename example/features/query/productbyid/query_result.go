package productbyid

import (
	"time"

	"github.com/google/uuid"
)

// ProductView represents the query result for a single product lookup.
type ProductView struct {
	ProductID  uuid.UUID
	Name       string
	PriceCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
