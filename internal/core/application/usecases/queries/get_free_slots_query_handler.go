package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetFreeSlotsQueryHandler retrieves free shelf slots from the database.
type GetFreeSlotsQueryHandler struct {
	db *gorm.DB
}

// NewGetFreeSlotsQueryHandler creates a handler for free slot queries.
// Requires a GORM database connection for query execution.
func NewGetFreeSlotsQueryHandler(db *gorm.DB) GetFreeSlotsQueryHandler {
	return GetFreeSlotsQueryHandler{db: db}
}

// Handle executes the query to retrieve all free slots of the center.
// Results are sorted by zone and code for consistent output.
func (h GetFreeSlotsQueryHandler) Handle(
	ctx context.Context,
	query GetFreeSlotsQuery,
) ([]GetFreeSlotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	slots := make([]GetFreeSlotsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			zone,
			code
		FROM shelf_slots
		WHERE logistic_center_id = ? AND occupant_package_id IS NULL
		ORDER BY zone, code
	`, query.LogisticCenterID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var slot GetFreeSlotsQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &slot.Zone, &slot.Code); err != nil {
			return nil, err
		}

		slotID, idErr := uuidFromRow(id)
		if idErr != nil {
			return nil, idErr
		}
		slot.ID = slotID

		slots = append(slots, slot)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}
