package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/pkg/errs"
)

// ErrShipmentNotFound indicates the referenced shipment does not exist.
var ErrShipmentNotFound = errors.New("shipment not found")

// DispatchShipmentCommandHandler handles the business logic for dispatch.
// Transitions the shipment to "in transit", advances the order to
// "shipped", and releases the staged package's shelf slot, all in one
// transaction. The staging area reclaims the slot the moment the goods
// physically leave.
type DispatchShipmentCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewDispatchShipmentCommandHandler creates a handler for dispatch operations.
// Requires a FulfillmentUoWFactory for coordinating updates across the
// shipment, order, and staging aggregates.
func NewDispatchShipmentCommandHandler(uowFactory FulfillmentUoWFactory) DispatchShipmentCommandHandler {
	return DispatchShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispatch command.
func (h DispatchShipmentCommandHandler) Handle(ctx context.Context, cmd DispatchShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrShipmentNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.Dispatch(); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()

	order, err := orderRepo.Get(ctx, aggregate.OrderID())
	if err != nil {
		return err
	}

	if err = order.MarkShipped(); err != nil {
		return err
	}

	if err = h.releaseStagedPackage(ctx, uow, aggregate.OrderID()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, order); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// releaseStagedPackage frees the order's shelf slot. An order with no
// package on the shelf, or already released, needs nothing done.
func (h DispatchShipmentCommandHandler) releaseStagedPackage(
	ctx context.Context,
	uow FulfillmentUoW,
	orderID kernel.UUID,
) error {
	packageRepo := uow.PackageRepository()

	pkg, err := packageRepo.GetByOrder(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if !pkg.Status().IsOnShelf() {
		return nil
	}

	fromSlotID := pkg.ShelfSlotID()

	if err = pkg.Release(); err != nil {
		return err
	}

	freed, err := uow.ShelfSlotRepository().Vacate(ctx, *fromSlotID, pkg.ID())
	if err != nil {
		return err
	}
	if !freed {
		return staging.ErrPackageNotInSlot
	}

	return packageRepo.Update(ctx, pkg)
}
