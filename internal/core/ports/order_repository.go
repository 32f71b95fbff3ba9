package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
)

// OrderRepository defines the persistence contract for fulfillment order
// aggregates. Order status transitions are persisted by the same
// transaction as the component operation that triggered them, so the
// order row never disagrees with the package and shipment rows.
type OrderRepository interface {
	// Add persists a newly registered order with its line items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *fulfillment.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *fulfillment.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its status and line items.
	Get(ctx context.Context, id kernel.UUID) (*fulfillment.Order, error)
}
