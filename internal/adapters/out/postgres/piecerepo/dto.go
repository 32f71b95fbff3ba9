// Package piecerepo provides data transfer objects and mapping functions for piece persistence.
// Pieces are the immutable output of packing: a plan is written in one shot
// and only ever read back, so the package implements no update path.
package piecerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/google/uuid"
)

// PieceDTO represents the database structure for persisting packing pieces.
// Maps piece domain entities to relational database tables indexed by order
// for efficient plan retrieval.
type PieceDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProduceType string    `gorm:"type:varchar(255);not null"`
	Mode        int       `gorm:"type:int;not null"`
	Units       int       `gorm:"not null"`
	EstWeightKg float64   `gorm:"not null"`
	Liters      float64   `gorm:"not null"`
	Sequence    int       `gorm:"not null"`
}

// TableName specifies the database table name for piece entities.
// Overrides GORM's default naming convention to use "pieces".
func (PieceDTO) TableName() string {
	return "pieces"
}

// fromDomain converts a piece domain entity to its database representation.
func fromDomain(piece *packing.Piece) PieceDTO {
	return PieceDTO{
		ID:          piece.ID().Bytes(),
		OrderID:     piece.OrderID().Bytes(),
		ProduceType: piece.ProduceType(),
		Mode:        int(piece.Mode()),
		Units:       piece.Units(),
		EstWeightKg: piece.EstWeightKg(),
		Liters:      piece.Liters(),
		Sequence:    piece.Sequence(),
	}
}

// toDomain converts a database DTO to a piece domain entity using RestorePiece.
func toDomain(dto PieceDTO) (*packing.Piece, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return packing.RestorePiece(
		id,
		orderID,
		dto.ProduceType,
		packing.Mode(dto.Mode),
		dto.Units,
		dto.EstWeightKg,
		dto.Liters,
		dto.Sequence,
	)
}
