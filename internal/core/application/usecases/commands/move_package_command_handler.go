package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrPackageNotFound indicates the referenced package does not exist.
	ErrPackageNotFound = errors.New("package not found")

	// ErrSlotNotFound indicates the referenced shelf slot does not exist.
	ErrSlotNotFound = errors.New("shelf slot not found")
)

// MovePackageCommandHandler handles the business logic for relocating a
// staged package to a different shelf slot.
//
// The destination is claimed before the source is vacated, so the package
// is never observable without a slot mid-move. Both slot writes and the
// package update commit in one transaction.
type MovePackageCommandHandler struct {
	uowFactory RelocationUoWFactory
}

// NewMovePackageCommandHandler creates a handler for move operations.
// Requires a RelocationUoWFactory for transactional persistence.
func NewMovePackageCommandHandler(uowFactory RelocationUoWFactory) MovePackageCommandHandler {
	return MovePackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the move command.
// Returns staging.ErrSlotOccupied when the destination was claimed by a
// concurrent operation first; the move fails rather than falling back to
// another slot, because the caller asked for that specific destination.
func (h MovePackageCommandHandler) Handle(ctx context.Context, cmd MovePackageCommand) error {
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

	slotRepo := uow.ShelfSlotRepository()

	if _, err = slotRepo.Get(ctx, cmd.ToSlotID()); errors.Is(err, errs.ErrObjectNotFound) {
		return ErrSlotNotFound
	} else if err != nil {
		return err
	}

	fromSlotID := pkg.ShelfSlotID()

	if err = pkg.MoveTo(cmd.ToSlotID()); err != nil {
		return err
	}

	won, err := slotRepo.Occupy(ctx, cmd.ToSlotID(), pkg.ID())
	if err != nil {
		return err
	}
	if !won {
		return staging.ErrSlotOccupied
	}

	freed, err := slotRepo.Vacate(ctx, *fromSlotID, pkg.ID())
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
