package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

// CreateShipmentCommandHandler handles the business logic for building a
// shipment. The shipment starts in "building" status; dispatching it is a
// separate operation performed once loading is finished.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
// Requires a ShipmentUoWFactory for transactional persistence.
func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the create shipment command.
// Verifies the order is registered before building containers; barcode
// uniqueness within the shipment is enforced by the aggregate.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
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

	if _, err := uow.OrderRepository().Get(ctx, cmd.OrderID()); errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	} else if err != nil {
		return err
	}

	containers := make([]*shipment.Container, 0, len(cmd.Containers()))
	for _, input := range cmd.Containers() {
		container, err := shipment.NewContainer(kernel.NewUUID(), input.Barcode, input.ProduceType, input.Quantity)
		if err != nil {
			return err
		}

		containers = append(containers, container)
	}

	aggregate, err := shipment.NewShipment(cmd.ShipmentID(), cmd.OrderID(), containers)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
