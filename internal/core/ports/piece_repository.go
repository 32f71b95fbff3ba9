package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
)

// PieceRepository defines the persistence contract for packing pieces.
// Pieces are immutable once written: a packing plan is persisted in one
// shot and only ever read back, so the contract has no update method.
type PieceRepository interface {
	// AddAll persists a complete packing plan for an order.
	// Either every piece is written or none are.
	AddAll(ctx context.Context, pieces []*packing.Piece) error

	// GetAllByOrder retrieves the pieces of an order's packing plan,
	// ordered by sequence.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*packing.Piece, error)
}
