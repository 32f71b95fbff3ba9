// Package shipmentrepo provides data transfer objects and mapping functions for shipment persistence.
// This package implements the repository pattern for the shipment aggregate, handling
// the conversion between domain entities and database representations. The arrival
// token lives on the shipment row itself: re-minting overwrites the stored value,
// which is what makes a superseded token unresolvable.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
// Token columns are null until the first mint; the used-at column doubles as the
// compare-and-set guard for arrival confirmation.
type ShipmentDTO struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID               uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status                int            `gorm:"type:int;not null;index"`
	ArrivalTokenValue     *string        `gorm:"type:varchar(255);index"`
	ArrivalTokenIssuedAt  *time.Time     `gorm:""`
	ArrivalTokenExpiresAt *time.Time     `gorm:""`
	ArrivalTokenUsedAt    *time.Time     `gorm:""`
	Containers            []ContainerDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
// Overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ContainerDTO represents the database structure for persisting shipment containers.
// The scanned-at column doubles as the compare-and-set guard for scans:
// an unscanned container is a row where it is null.
type ContainerDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Barcode     string     `gorm:"type:varchar(255);not null;index"`
	ProduceType string     `gorm:"type:varchar(255);not null"`
	Quantity    float64    `gorm:"not null"`
	ScannedBy   *string    `gorm:"type:varchar(255)"`
	ScannedAt   *time.Time `gorm:""`
}

// TableName specifies the database table name for container entities.
// Overrides GORM's default naming convention to use "shipment_containers".
func (ContainerDTO) TableName() string {
	return "shipment_containers"
}

// fromDomain converts a shipment domain aggregate to its database representation.
// Maps the status, token state and all containers.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	shipmentID := aggregate.ID().Bytes()
	containers := make([]ContainerDTO, 0, len(aggregate.Containers()))

	for _, c := range aggregate.Containers() {
		containers = append(containers, ContainerDTO{
			ID:          c.ID().Bytes(),
			ShipmentID:  shipmentID,
			Barcode:     c.Barcode(),
			ProduceType: c.ProduceType(),
			Quantity:    c.Quantity(),
			ScannedBy:   c.ScannedBy(),
			ScannedAt:   c.ScannedAt(),
		})
	}

	dto := ShipmentDTO{
		ID:         shipmentID,
		OrderID:    aggregate.OrderID().Bytes(),
		Status:     int(aggregate.Status()),
		Containers: containers,
	}

	if token := aggregate.ArrivalToken(); token != nil {
		value := token.Value()
		issuedAt := token.IssuedAt()
		expiresAt := token.ExpiresAt()
		dto.ArrivalTokenValue = &value
		dto.ArrivalTokenIssuedAt = &issuedAt
		dto.ArrivalTokenExpiresAt = &expiresAt
		dto.ArrivalTokenUsedAt = token.UsedAt()
	}

	return dto
}

// toDomain converts a database DTO to a shipment domain aggregate.
// Reconstructs the complete aggregate including containers and the
// persisted arrival token using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	containers := make([]*shipment.Container, 0, len(dto.Containers))
	for _, cDto := range dto.Containers {
		c, cErr := containerToDomain(cDto)
		if cErr != nil {
			return nil, cErr
		}
		containers = append(containers, c)
	}

	var token *shipment.ArrivalToken
	if dto.ArrivalTokenValue != nil {
		token, err = shipment.RestoreArrivalToken(
			*dto.ArrivalTokenValue,
			*dto.ArrivalTokenIssuedAt,
			*dto.ArrivalTokenExpiresAt,
			dto.ArrivalTokenUsedAt,
		)
		if err != nil {
			return nil, err
		}
	}

	return shipment.RestoreShipment(id, orderID, shipment.Status(dto.Status), containers, token)
}

// containerToDomain converts a container DTO to a domain entity.
// Uses RestoreContainer to reconstruct the entity with its persisted scan state.
func containerToDomain(dto ContainerDTO) (*shipment.Container, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestoreContainer(
		id,
		dto.Barcode,
		dto.ProduceType,
		dto.Quantity,
		dto.ScannedBy,
		dto.ScannedAt,
	)
}
