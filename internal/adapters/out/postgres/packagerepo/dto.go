// Package packagerepo provides data transfer objects and mapping functions for package persistence.
// This package implements the repository pattern for the staging package aggregate, handling
// the conversion between domain entities and database representations.
package packagerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"

	"github.com/google/uuid"
)

// PackageDTO represents the database structure for persisting package aggregates.
// Maps package domain entities to relational database tables with an optional
// shelf slot reference that mirrors the staging state.
type PackageDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	ShiftName   string            `gorm:"type:varchar(255);not null"`
	Status      int               `gorm:"type:int;not null"`
	ShelfSlotID *uuid.UUID        `gorm:"type:uuid;index"`
	Pieces      []PackagePieceDTO `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for package entities.
// Overrides GORM's default naming convention to use "packages".
func (PackageDTO) TableName() string {
	return "packages"
}

// PackagePieceDTO represents the join rows linking a package to the pieces it holds.
// Position preserves the order in which pieces were consolidated.
type PackagePieceDTO struct {
	PackageID uuid.UUID `gorm:"type:uuid;primaryKey"`
	PieceID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"not null"`
}

// TableName specifies the database table name for package piece rows.
// Overrides GORM's default naming convention to use "package_pieces".
func (PackagePieceDTO) TableName() string {
	return "package_pieces"
}

// fromDomain converts a package domain aggregate to its database representation.
// Maps the staging state and all piece references.
func fromDomain(pkg *staging.Package) PackageDTO {
	packageID := pkg.ID().Bytes()
	pieces := make([]PackagePieceDTO, 0, len(pkg.PieceIDs()))

	for i, pieceID := range pkg.PieceIDs() {
		pieces = append(pieces, PackagePieceDTO{
			PackageID: packageID,
			PieceID:   pieceID.Bytes(),
			Position:  i,
		})
	}

	var shelfSlotID *uuid.UUID
	if id := pkg.ShelfSlotID(); id != nil {
		raw := id.Bytes()
		shelfSlotID = &raw
	}

	return PackageDTO{
		ID:          packageID,
		OrderID:     pkg.OrderID().Bytes(),
		ShiftName:   pkg.ShiftName(),
		Status:      int(pkg.Status()),
		ShelfSlotID: shelfSlotID,
		Pieces:      pieces,
	}
}

// toDomain converts a database DTO to a package domain aggregate.
// Reconstructs the complete aggregate including staging state using RestorePackage.
func toDomain(dto PackageDTO) (*staging.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	pieceIDs := make([]kernel.UUID, 0, len(dto.Pieces))
	for _, pieceDto := range dto.Pieces {
		pieceID, pieceErr := kernel.UUIDFromBytes(pieceDto.PieceID[:])
		if pieceErr != nil {
			return nil, pieceErr
		}
		pieceIDs = append(pieceIDs, pieceID)
	}

	var shelfSlotID *kernel.UUID
	if dto.ShelfSlotID != nil {
		sID, slotErr := kernel.UUIDFromBytes((*dto.ShelfSlotID)[:])
		if slotErr != nil {
			return nil, slotErr
		}
		shelfSlotID = &sID
	}

	return staging.RestorePackage(
		id,
		orderID,
		pieceIDs,
		dto.ShiftName,
		staging.Status(dto.Status),
		shelfSlotID,
	)
}
