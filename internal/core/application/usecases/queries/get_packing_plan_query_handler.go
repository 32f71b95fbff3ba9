package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/packing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPackingPlanQueryHandler retrieves an order's packing plan from the
// database, ordered by piece sequence.
type GetPackingPlanQueryHandler struct {
	db *gorm.DB
}

// NewGetPackingPlanQueryHandler creates a handler for packing plan queries.
// Requires a GORM database connection for query execution.
func NewGetPackingPlanQueryHandler(db *gorm.DB) GetPackingPlanQueryHandler {
	return GetPackingPlanQueryHandler{db: db}
}

// Handle executes the packing plan query.
// An order with no plan yields an empty slice, not an error; callers
// distinguish "not packed yet" from "unknown order" via the order itself.
func (h GetPackingPlanQueryHandler) Handle(
	ctx context.Context,
	query GetPackingPlanQuery,
) ([]GetPackingPlanQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pieces := make([]GetPackingPlanQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			produce_type,
			mode,
			units,
			est_weight_kg,
			liters,
			sequence
		FROM pieces
		WHERE order_id = ?
		ORDER BY sequence
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var piece GetPackingPlanQueryResponse
		var id uuid.UUID
		var mode int

		err = rows.Scan(
			&id,
			&piece.ProduceType,
			&mode,
			&piece.Units,
			&piece.EstWeightKg,
			&piece.Liters,
			&piece.Sequence,
		)
		if err != nil {
			return nil, err
		}

		pieceID, idErr := uuidFromRow(id)
		if idErr != nil {
			return nil, idErr
		}
		piece.ID = pieceID
		piece.Mode = packing.Mode(mode).String()

		pieces = append(pieces, piece)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pieces, nil
}
