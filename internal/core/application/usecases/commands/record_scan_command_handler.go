package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

// RecordScanCommandHandler handles the business logic for scan recording.
//
// The domain aggregate validates the scan (shipment in transit, barcode
// known); the persistence layer makes it idempotent with an atomic
// first-write-wins update on the container row. Rescans and concurrent
// duplicates succeed without changing stored state, and the returned
// progress is always recomputed from the container rows.
type RecordScanCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewRecordScanCommandHandler creates a handler for scan recording.
// Requires a ShipmentUoWFactory for transactional persistence.
func NewRecordScanCommandHandler(uowFactory ShipmentUoWFactory) RecordScanCommandHandler {
	return RecordScanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the scan command and returns the shipment's scan
// progress after the scan.
func (h RecordScanCommandHandler) Handle(ctx context.Context, cmd RecordScanCommand) (shipment.ScanProgress, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.ScanProgress{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return shipment.ScanProgress{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return shipment.ScanProgress{}, ErrShipmentNotFound
	}
	if err != nil {
		return shipment.ScanProgress{}, err
	}

	now := time.Now().UTC()

	if _, err = aggregate.RecordScan(cmd.Barcode(), cmd.Actor(), now); err != nil {
		return shipment.ScanProgress{}, err
	}

	container, err := aggregate.ContainerByBarcode(cmd.Barcode())
	if err != nil {
		return shipment.ScanProgress{}, err
	}

	// First-wins at the row level; a lost race is an acknowledged no-op.
	if _, err = shipmentRepo.MarkScanned(ctx, container.ID(), cmd.Actor(), now); err != nil {
		return shipment.ScanProgress{}, err
	}

	counts, err := shipmentRepo.ScanCounts(ctx, cmd.ShipmentID())
	if err != nil {
		return shipment.ScanProgress{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.ScanProgress{}, err
	}

	return shipment.ScanProgress{
		Total:   counts.Total,
		Scanned: counts.Scanned,
	}, nil
}
