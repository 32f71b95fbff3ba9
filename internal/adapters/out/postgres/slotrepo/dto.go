// Package slotrepo provides data transfer objects and mapping functions for shelf slot persistence.
// Slots are the contended resource of the staging area, so the repository
// implements occupancy changes as conditional updates that decide races at
// the database rather than in application memory.
package slotrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"

	"github.com/google/uuid"
)

// ShelfSlotDTO represents the database structure for persisting shelf slots.
// The occupant column doubles as the compare-and-set guard for claims:
// a free slot is a row where it is null.
type ShelfSlotDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LogisticCenterID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Zone              string     `gorm:"type:varchar(255);not null"`
	Code              string     `gorm:"type:varchar(255);not null"`
	OccupantPackageID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for shelf slot entities.
// Overrides GORM's default naming convention to use "shelf_slots".
func (ShelfSlotDTO) TableName() string {
	return "shelf_slots"
}

// fromDomain converts a shelf slot domain aggregate to its database representation.
func fromDomain(slot *staging.ShelfSlot) ShelfSlotDTO {
	var occupantID *uuid.UUID
	if id := slot.OccupantPackageID(); id != nil {
		raw := id.Bytes()
		occupantID = &raw
	}

	return ShelfSlotDTO{
		ID:                slot.ID().Bytes(),
		LogisticCenterID:  slot.LogisticCenterID().Bytes(),
		Zone:              slot.Zone(),
		Code:              slot.Code(),
		OccupantPackageID: occupantID,
	}
}

// toDomain converts a database DTO to a shelf slot domain aggregate using RestoreShelfSlot.
func toDomain(dto ShelfSlotDTO) (*staging.ShelfSlot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	logisticCenterID, err := kernel.UUIDFromBytes(dto.LogisticCenterID[:])
	if err != nil {
		return nil, err
	}

	var occupantID *kernel.UUID
	if dto.OccupantPackageID != nil {
		oID, occupantErr := kernel.UUIDFromBytes((*dto.OccupantPackageID)[:])
		if occupantErr != nil {
			return nil, occupantErr
		}
		occupantID = &oID
	}

	return staging.RestoreShelfSlot(id, logisticCenterID, dto.Zone, dto.Code, occupantID)
}
