package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

// ConfirmArrivalResult reports which shipment the token confirmed and when.
type ConfirmArrivalResult struct {
	ShipmentID  kernel.UUID
	ConfirmedAt time.Time
}

// ConfirmArrivalCommandHandler handles the business logic for arrival
// confirmation, the terminal step of the pipeline.
//
// The aggregate enforces the token check order (unknown, expired, used,
// wrong state) and the persistence layer enforces single use with an
// atomic conditional update on the token row. Exactly one of two
// concurrent confirmations with the same token commits; the other gets
// shipment.ErrTokenAlreadyUsed.
type ConfirmArrivalCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewConfirmArrivalCommandHandler creates a handler for arrival
// confirmation. Requires a FulfillmentUoWFactory because the shipment and
// order transitions commit together.
func NewConfirmArrivalCommandHandler(uowFactory FulfillmentUoWFactory) ConfirmArrivalCommandHandler {
	return ConfirmArrivalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the confirmation command.
// Tokens invalidated by a re-mint match no shipment row and report
// shipment.ErrTokenNotFound.
func (h ConfirmArrivalCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmArrivalCommand,
) (ConfirmArrivalResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmArrivalResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmArrivalResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.GetByArrivalToken(ctx, cmd.Token())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ConfirmArrivalResult{}, shipment.ErrTokenNotFound
	}
	if err != nil {
		return ConfirmArrivalResult{}, err
	}

	now := time.Now().UTC()

	if err = aggregate.ConsumeArrivalToken(cmd.Token(), now); err != nil {
		return ConfirmArrivalResult{}, err
	}

	won, err := shipmentRepo.ConsumeArrivalToken(ctx, aggregate.ID(), now)
	if err != nil {
		return ConfirmArrivalResult{}, err
	}
	if !won {
		return ConfirmArrivalResult{}, shipment.ErrTokenAlreadyUsed
	}

	orderRepo := uow.OrderRepository()

	order, err := orderRepo.Get(ctx, aggregate.OrderID())
	if err != nil {
		return ConfirmArrivalResult{}, err
	}

	if err = order.MarkArrived(); err != nil {
		return ConfirmArrivalResult{}, err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return ConfirmArrivalResult{}, err
	}

	if err = orderRepo.Update(ctx, order); err != nil {
		return ConfirmArrivalResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ConfirmArrivalResult{}, err
	}

	return ConfirmArrivalResult{
		ShipmentID:  aggregate.ID(),
		ConfirmedAt: now,
	}, nil
}
