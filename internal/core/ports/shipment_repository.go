package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ScanCounts is the authoritative scan tally of a shipment, always
// recomputed from the persisted container rows rather than cached.
type ScanCounts struct {
	Total   int
	Scanned int
}

// ShipmentRepository defines the persistence contract for shipment
// aggregates. Besides the usual aggregate methods it exposes the atomic
// row-level operations that make scans idempotent and arrival tokens
// single-use under concurrency.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate with its containers.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier,
	// containers and arrival token state included.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByOrder retrieves the shipment created for the given order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error)

	// GetByArrivalToken retrieves the shipment whose current arrival
	// token equals the given value. A token invalidated by re-minting
	// matches nothing, because only the latest value is stored.
	GetByArrivalToken(ctx context.Context, token string) (*shipment.Shipment, error)

	// MarkScanned atomically records the first scan of a container.
	//
	// The write succeeds only if the container row is still unscanned at
	// commit time. Returns false, without error, when the container was
	// already scanned; the stored actor and timestamp are left untouched
	// and the caller treats the call as an acknowledged no-op.
	MarkScanned(ctx context.Context, containerID kernel.UUID, actor string, at time.Time) (bool, error)

	// ScanCounts recomputes a shipment's scan tally from its container
	// rows.
	ScanCounts(ctx context.Context, shipmentID kernel.UUID) (ScanCounts, error)

	// ConsumeArrivalToken atomically marks a shipment's arrival token as
	// used. The write succeeds only if the token is still unused and the
	// shipment is still in transit; returns false when a concurrent
	// confirmation won.
	ConsumeArrivalToken(ctx context.Context, shipmentID kernel.UUID, at time.Time) (bool, error)

	// GetAllAwaitingArrivalToken retrieves in-transit shipments whose
	// containers are fully scanned but which have no arrival token yet.
	// Used by the background minting job.
	GetAllAwaitingArrivalToken(ctx context.Context) ([]*shipment.Shipment, error)
}
