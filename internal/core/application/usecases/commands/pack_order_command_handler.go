package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"
)

// ErrOrderNotFound indicates the referenced order is not registered.
var ErrOrderNotFound = errors.New("order not found")

// PackOrderCommandHandler handles the business logic for packing.
// Computes the deterministic piece split for an order's line items,
// persists the plan, and advances the order to "packed" in one transaction.
//
// Example:
//
//	handler := NewPackOrderCommandHandler(uowFactory, planner)
//	cmd, _ := NewPackOrderCommand(orderID)
//	pieces, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrOrderNotFound) {
//	    log.Println("Unknown order")
//	}
type PackOrderCommandHandler struct {
	uowFactory PackingUoWFactory
	planner    packing.Planner
}

// NewPackOrderCommandHandler creates a handler for packing operations.
// Requires a PackingUoWFactory and the planner carrying the warehouse's
// packing policy.
func NewPackOrderCommandHandler(uowFactory PackingUoWFactory, planner packing.Planner) PackOrderCommandHandler {
	return PackOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
	}
}

// Handle processes the pack command and returns the persisted plan.
//
// The same order and policy always yield the same plan, so retrying a
// failed pack produces identical pieces. The order transition to "packed"
// commits atomically with the plan: either both are visible or neither.
func (h PackOrderCommandHandler) Handle(ctx context.Context, cmd PackOrderCommand) ([]*packing.Piece, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	pieces, err := h.planner.Plan(aggregate.ID(), aggregate.LineItems())
	if err != nil {
		return nil, err
	}

	if err = aggregate.MarkPacked(); err != nil {
		return nil, err
	}

	if err = uow.PieceRepository().AddAll(ctx, pieces); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pieces, nil
}
