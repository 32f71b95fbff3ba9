package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/pkg/errs"
)

// UnstagePackageCommandHandler handles the business logic for releasing a
// staged package from the staging area, typically when its order leaves
// the warehouse outside the normal dispatch flow.
type UnstagePackageCommandHandler struct {
	uowFactory RelocationUoWFactory
}

// NewUnstagePackageCommandHandler creates a handler for unstage operations.
// Requires a RelocationUoWFactory for transactional persistence.
func NewUnstagePackageCommandHandler(uowFactory RelocationUoWFactory) UnstagePackageCommandHandler {
	return UnstagePackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the unstage command.
// Frees the shelf slot and marks the package released in one transaction.
func (h UnstagePackageCommandHandler) Handle(ctx context.Context, cmd UnstagePackageCommand) error {
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

	packageRepo := uow.PackageRepository()

	pkg, err := packageRepo.Get(ctx, cmd.PackageID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPackageNotFound
	}
	if err != nil {
		return err
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

	if err = packageRepo.Update(ctx, pkg); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
