package piecerepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"gorm.io/gorm"
)

// GormPieceRepository implements PieceRepository using GORM.
type GormPieceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPieceRepository creates a new GORM piece repository.
func NewGormPieceRepository(db *gorm.DB, tracker aggregateTracker) *GormPieceRepository {
	return &GormPieceRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddAll saves a complete packing plan to the database in a single insert.
// Either every piece is written or the insert fails as a whole.
func (r *GormPieceRepository) AddAll(ctx context.Context, pieces []*packing.Piece) error {
	dtos := make([]PieceDTO, 0, len(pieces))
	for _, piece := range pieces {
		if err := piece.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(piece))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	for _, piece := range pieces {
		r.tracker.TrackAggregate(piece.ID(), piece)
	}
	return nil
}

// GetAllByOrder retrieves the pieces of an order's packing plan ordered by sequence.
func (r *GormPieceRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*packing.Piece, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PieceDTO
	if err := r.db.WithContext(ctx).
		Order("sequence").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	pieces := make([]*packing.Piece, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, p)
	}

	return pieces, nil
}
