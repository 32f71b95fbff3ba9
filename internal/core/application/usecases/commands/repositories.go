// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PieceRepoFactory provides access to the piece repository within a transaction.
	PieceRepoFactory interface {
		PieceRepository() ports.PieceRepository
	}

	// PackageRepoFactory provides access to the package repository within a transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// ShelfSlotRepoFactory provides access to the shelf slot repository within a transaction.
	ShelfSlotRepoFactory interface {
		ShelfSlotRepository() ports.ShelfSlotRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PackingUoW manages transactions for packing operations, which write
	// the packing plan and advance the order status together.
	PackingUoW interface {
		TxManager
		OrderRepoFactory
		PieceRepoFactory
	}

	// PackingUoWFactory creates new packing unit of work instances.
	PackingUoWFactory interface {
		Create() PackingUoW
	}

	// StagingUoW manages transactions for staging operations: assembling a
	// package from pieces, claiming a shelf slot, and advancing the order.
	StagingUoW interface {
		TxManager
		OrderRepoFactory
		PieceRepoFactory
		PackageRepoFactory
		ShelfSlotRepoFactory
	}

	// StagingUoWFactory creates new staging unit of work instances.
	StagingUoWFactory interface {
		Create() StagingUoW
	}

	// RelocationUoW manages transactions for moving or releasing staged
	// packages, which touch the package and its shelf slots only.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   packageRepo := uow.PackageRepository()
	//   slotRepo := uow.ShelfSlotRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	RelocationUoW interface {
		TxManager
		PackageRepoFactory
		ShelfSlotRepoFactory
	}

	// RelocationUoWFactory creates new relocation unit of work instances.
	RelocationUoWFactory interface {
		Create() RelocationUoW
	}

	// ShipmentUoW manages transactions for shipment creation and scan
	// tracking. Creation reads the order to verify pipeline position.
	ShipmentUoW interface {
		TxManager
		OrderRepoFactory
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// FulfillmentUoW manages transactions spanning the whole pipeline:
	// dispatch and arrival confirmation update the shipment, the order,
	// and the staged package in one atomic step.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		PackageRepoFactory
		ShelfSlotRepoFactory
		ShipmentRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}
)
