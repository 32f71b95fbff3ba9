package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"
)

// CreateShelfSlotCommandHandler handles the business logic for shelf slot
// registration. New slots start free and become candidates for staging
// immediately.
type CreateShelfSlotCommandHandler struct {
	uowFactory StagingUoWFactory
}

// NewCreateShelfSlotCommandHandler creates a handler for slot registration.
func NewCreateShelfSlotCommandHandler(uowFactory StagingUoWFactory) CreateShelfSlotCommandHandler {
	return CreateShelfSlotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the slot registration command and returns the new slot's
// identifier.
func (h CreateShelfSlotCommandHandler) Handle(ctx context.Context, cmd CreateShelfSlotCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	slot, err := staging.NewShelfSlot(kernel.NewUUID(), cmd.LogisticCenterID(), cmd.Zone(), cmd.Code())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.ShelfSlotRepository().Add(ctx, slot); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return slot.ID(), nil
}
