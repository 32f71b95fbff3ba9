package slotrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShelfSlotRepository implements ShelfSlotRepository using GORM.
type GormShelfSlotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShelfSlotRepository creates a new GORM shelf slot repository.
func NewGormShelfSlotRepository(db *gorm.DB, tracker aggregateTracker) *GormShelfSlotRepository {
	return &GormShelfSlotRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shelf slot to the database.
func (r *GormShelfSlotRepository) Add(ctx context.Context, slot *staging.ShelfSlot) error {
	if err := slot.Validate(); err != nil {
		return err
	}

	dto := fromDomain(slot)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(slot.ID(), slot)
	return nil
}

// Get retrieves a shelf slot by ID.
func (r *GormShelfSlotRepository) Get(ctx context.Context, id kernel.UUID) (*staging.ShelfSlot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShelfSlotDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shelf slot", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByLogisticCenter retrieves every slot of a logistic center,
// occupied ones included, ordered by zone and code.
func (r *GormShelfSlotRepository) GetAllByLogisticCenter(
	ctx context.Context,
	logisticCenterID kernel.UUID,
) ([]*staging.ShelfSlot, error) {
	if err := logisticCenterID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShelfSlotDTO
	if err := r.db.WithContext(ctx).
		Order("zone, code").
		Find(&dtos, "logistic_center_id = ?", logisticCenterID.Bytes()).Error; err != nil {
		return nil, err
	}

	slots := make([]*staging.ShelfSlot, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}

	return slots, nil
}

// Occupy claims a free slot for the given package with a conditional update.
// The occupant column is written only if it is still null, so exactly one
// of any number of concurrent claimants sees a positive row count.
func (r *GormShelfSlotRepository) Occupy(ctx context.Context, slotID, packageID kernel.UUID) (bool, error) {
	if err := errors.Join(slotID.Validate(), packageID.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&ShelfSlotDTO{}).
		Where("id = ? AND occupant_package_id IS NULL", slotID.Bytes()).
		Update("occupant_package_id", packageID.Bytes())
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// Vacate frees a slot currently held by the given package with a conditional
// update. Returns false when the slot no longer holds that package.
func (r *GormShelfSlotRepository) Vacate(ctx context.Context, slotID, packageID kernel.UUID) (bool, error) {
	if err := errors.Join(slotID.Validate(), packageID.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&ShelfSlotDTO{}).
		Where("id = ? AND occupant_package_id = ?", slotID.Bytes(), packageID.Bytes()).
		Update("occupant_package_id", nil)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
