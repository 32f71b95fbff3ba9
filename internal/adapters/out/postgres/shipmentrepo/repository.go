package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment with its containers to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment to the database.
// Only the shipment row is written: container scan state goes through
// MarkScanned so that concurrent scans never overwrite each other.
// Select forces the token columns through even when null, which is how
// re-minting clears a previous consumption.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Select(
			"status",
			"arrival_token_value",
			"arrival_token_issued_at",
			"arrival_token_expires_at",
			"arrival_token_used_at",
		).
		Updates(map[string]any{
			"status":                   dto.Status,
			"arrival_token_value":      dto.ArrivalTokenValue,
			"arrival_token_issued_at":  dto.ArrivalTokenIssuedAt,
			"arrival_token_expires_at": dto.ArrivalTokenExpiresAt,
			"arrival_token_used_at":    dto.ArrivalTokenUsedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID including containers and token state.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves the shipment created for the given order.
func (r *GormShipmentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.preloaded(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByArrivalToken retrieves the shipment whose current arrival token
// equals the given value. A token superseded by re-minting matches nothing
// because only the latest value is stored.
func (r *GormShipmentRepository) GetByArrivalToken(ctx context.Context, token string) (*shipment.Shipment, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("token is required")
	}

	var dto ShipmentDTO
	if err := r.preloaded(ctx).First(&dto, "arrival_token_value = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", "by arrival token")
		}
		return nil, err
	}

	return toDomain(dto)
}

// MarkScanned records the first scan of a container with a conditional
// update. The scan columns are written only if they are still null, so the
// first actor wins and a repeated or racing scan is a no-op.
func (r *GormShipmentRepository) MarkScanned(
	ctx context.Context,
	containerID kernel.UUID,
	actor string,
	at time.Time,
) (bool, error) {
	if err := containerID.Validate(); err != nil {
		return false, err
	}
	if actor == "" {
		return false, errs.NewValueIsRequiredError("actor is required")
	}

	result := r.db.WithContext(ctx).
		Model(&ContainerDTO{}).
		Where("id = ? AND scanned_at IS NULL", containerID.Bytes()).
		Updates(map[string]any{
			"scanned_by": actor,
			"scanned_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// ScanCounts recomputes a shipment's scan tally from its container rows.
func (r *GormShipmentRepository) ScanCounts(ctx context.Context, shipmentID kernel.UUID) (ports.ScanCounts, error) {
	if err := shipmentID.Validate(); err != nil {
		return ports.ScanCounts{}, err
	}

	var counts ports.ScanCounts
	row := r.db.WithContext(ctx).
		Model(&ContainerDTO{}).
		Select("COUNT(*) AS total, COUNT(scanned_at) AS scanned").
		Where("shipment_id = ?", shipmentID.Bytes()).
		Row()
	if err := row.Scan(&counts.Total, &counts.Scanned); err != nil {
		return ports.ScanCounts{}, err
	}

	return counts, nil
}

// ConsumeArrivalToken marks a shipment's arrival token as used with a
// conditional update. The used-at column is written only if the token is
// still unused and the shipment is still in transit, so exactly one of any
// number of concurrent confirmations succeeds.
func (r *GormShipmentRepository) ConsumeArrivalToken(
	ctx context.Context,
	shipmentID kernel.UUID,
	at time.Time,
) (bool, error) {
	if err := shipmentID.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where(
			"id = ? AND status = ? AND arrival_token_value IS NOT NULL AND arrival_token_used_at IS NULL",
			shipmentID.Bytes(),
			int(shipment.InTransit),
		).
		Update("arrival_token_used_at", at)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// GetAllAwaitingArrivalToken retrieves in-transit shipments whose containers
// are fully scanned but which have no arrival token yet.
func (r *GormShipmentRepository) GetAllAwaitingArrivalToken(ctx context.Context) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	if err := r.preloaded(ctx).
		Where("status = ? AND arrival_token_value IS NULL", int(shipment.InTransit)).
		Where("NOT EXISTS (SELECT 1 FROM shipment_containers c WHERE c.shipment_id = shipments.id AND c.scanned_at IS NULL)").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

func (r *GormShipmentRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Containers", func(db *gorm.DB) *gorm.DB { return db.Order("barcode") })
}
