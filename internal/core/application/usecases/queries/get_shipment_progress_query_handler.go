package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentProgressQueryHandler reads a shipment's scan progress from
// the database. The tally is computed from the container rows in the same
// statement that reads them, so it cannot drift from the stored scans.
type GetShipmentProgressQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentProgressQueryHandler creates a handler for progress queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentProgressQueryHandler(db *gorm.DB) GetShipmentProgressQueryHandler {
	return GetShipmentProgressQueryHandler{db: db}
}

// Handle executes the progress query.
// Returns errs.ErrObjectNotFound if the shipment does not exist.
func (h GetShipmentProgressQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentProgressQuery,
) (GetShipmentProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentProgressQueryResponse{}, err
	}

	var status int
	row := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().String()).Row()
	if err := row.Scan(&status); err != nil {
		return GetShipmentProgressQueryResponse{},
			errs.NewObjectNotFoundErrorWithCause("shipmentID", query.ShipmentID().String(), err)
	}

	response := GetShipmentProgressQueryResponse{
		ShipmentID: query.ShipmentID(),
		Status:     shipment.Status(status).String(),
		Containers: make([]ContainerScanResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			barcode,
			scanned_by,
			scanned_at
		FROM shipment_containers
		WHERE shipment_id = ?
		ORDER BY barcode
	`, query.ShipmentID().String()).Rows()
	if err != nil {
		return GetShipmentProgressQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var container ContainerScanResponse
		var scannedBy *string
		var scannedAt *time.Time

		if err = rows.Scan(&container.Barcode, &scannedBy, &scannedAt); err != nil {
			return GetShipmentProgressQueryResponse{}, err
		}

		container.ScannedBy = scannedBy
		container.ScannedAt = scannedAt
		container.Scanned = scannedAt != nil

		response.Total++
		if container.Scanned {
			response.Scanned++
		}
		response.Containers = append(response.Containers, container)
	}

	if err = rows.Err(); err != nil {
		return GetShipmentProgressQueryResponse{}, err
	}

	return response, nil
}

// uuidFromRow converts a scanned database UUID into the domain UUID type.
func uuidFromRow(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
