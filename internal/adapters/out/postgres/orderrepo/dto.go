// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the fulfillment order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with indexed status
// for efficient pipeline queries.
type OrderDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Status    int           `gorm:"type:int;not null;index"`
	LineItems []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents the database structure for persisting order line items.
// Line items are written once at registration and never updated, so the row
// carries no state beyond the registered quantities.
type LineItemDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProduceType string    `gorm:"type:varchar(255);not null"`
	Mode        int       `gorm:"type:int;not null"`
	QuantityKg  float64   `gorm:"not null"`
	UnitCount   int       `gorm:"not null"`
}

// TableName specifies the database table name for line item entities.
// Overrides GORM's default naming convention to use "order_line_items".
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps the order status and all registered line items.
func fromDomain(order *fulfillment.Order) OrderDTO {
	orderID := order.ID().Bytes()
	lineItems := make([]LineItemDTO, 0, len(order.LineItems()))

	for _, item := range order.LineItems() {
		lineItems = append(lineItems, LineItemDTO{
			OrderID:     orderID,
			ProduceType: item.ProduceType(),
			Mode:        int(item.Mode()),
			QuantityKg:  item.QuantityKg(),
			UnitCount:   item.UnitCount(),
		})
	}

	return OrderDTO{
		ID:        orderID,
		Status:    int(order.Status()),
		LineItems: lineItems,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and line items using RestoreOrder.
func toDomain(dto OrderDTO) (*fulfillment.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lineItems := make([]packing.LineItem, 0, len(dto.LineItems))
	for _, itemDto := range dto.LineItems {
		item, itemErr := packing.NewLineItem(
			itemDto.ProduceType,
			packing.Mode(itemDto.Mode),
			itemDto.QuantityKg,
			itemDto.UnitCount,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		lineItems = append(lineItems, item)
	}

	return fulfillment.RestoreOrder(id, fulfillment.Status(dto.Status), lineItems)
}
