package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillment"
)

// RegisterOrderCommandHandler handles the business logic for order
// registration. Creates the coordination aggregate in "placed" status with
// its line items; packing happens as a separate, later operation.
type RegisterOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRegisterOrderCommandHandler creates a handler for order registration.
// Requires an OrderUoWFactory for transactional persistence.
func NewRegisterOrderCommandHandler(uowFactory OrderUoWFactory) RegisterOrderCommandHandler {
	return RegisterOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order registration command.
// Uses a transaction to ensure the order is properly persisted or rolled
// back on error.
func (h RegisterOrderCommandHandler) Handle(ctx context.Context, cmd RegisterOrderCommand) error {
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

	aggregate, err := fulfillment.NewOrder(cmd.OrderID(), cmd.LineItems())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
