// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and read projection-friendly
// rows straight from the database.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetShipmentProgressQueryIsNotConstructed = errors.New(
	"GetShipmentProgressQuery must be created via NewGetShipmentProgressQuery constructor",
)

// GetShipmentProgressQuery retrieves the scan progress of one shipment.
//
// Example:
//
//	query, err := NewGetShipmentProgressQuery(shipmentID)
//	if err != nil {
//	    return err
//	}
//
//	progress, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get progress: %w", err)
//	}
//	fmt.Printf("%d of %d containers scanned\n", progress.Scanned, progress.Total)
type GetShipmentProgressQuery struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentProgressQuery creates a query for a shipment's progress.
func NewGetShipmentProgressQuery(shipmentID kernel.UUID) (GetShipmentProgressQuery, error) {
	query := GetShipmentProgressQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := shipmentID.Validate(); err != nil {
		return GetShipmentProgressQuery{}, err
	}

	query.shipmentID = shipmentID
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentProgressQueryIsNotConstructed)
}

// ShipmentID returns the shipment being queried.
func (q GetShipmentProgressQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// ContainerScanResponse describes one container's scan state.
type ContainerScanResponse struct {
	Barcode   string
	Scanned   bool
	ScannedBy *string
	ScannedAt *time.Time
}

// GetShipmentProgressQueryResponse represents a shipment's scan tally.
// Counts are derived from the container rows at read time, never from a
// cached column.
type GetShipmentProgressQueryResponse struct {
	ShipmentID kernel.UUID
	Status     string
	Total      int
	Scanned    int
	Containers []ContainerScanResponse
}
