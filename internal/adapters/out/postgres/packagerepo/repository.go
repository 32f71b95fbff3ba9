package packagerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPackageRepository implements PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackageRepository creates a new GORM package repository.
func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new package with its piece references to the database.
func (r *GormPackageRepository) Add(ctx context.Context, pkg *staging.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pkg)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(pkg.ID(), pkg)
	return nil
}

// Update saves an existing package to the database.
// Piece references are immutable after consolidation, so only the staging
// state is written. Select forces the slot column through even when the
// package left the shelf and the reference became null.
func (r *GormPackageRepository) Update(ctx context.Context, pkg *staging.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pkg)
	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "shelf_slot_id").
		Updates(map[string]any{
			"status":        dto.Status,
			"shelf_slot_id": dto.ShelfSlotID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(pkg.ID(), pkg)
	return nil
}

// Get retrieves a package by ID including its piece references.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*staging.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).
		Preload("Pieces", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves the package assembled for the given order.
func (r *GormPackageRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*staging.Package, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).
		Preload("Pieces", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
