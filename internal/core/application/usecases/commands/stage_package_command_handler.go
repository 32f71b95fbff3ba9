package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrNoCapacity indicates no free shelf slot could be claimed for the
	// package, either because none existed or because concurrent staging
	// operations won every candidate.
	ErrNoCapacity = errors.New("no shelf slot capacity available")

	// ErrNoPiecesFound indicates the order has no persisted packing plan,
	// so there is nothing to assemble into a package.
	ErrNoPiecesFound = errors.New("no pieces found for order")
)

// StagePackageResult reports where a staged package ended up.
type StagePackageResult struct {
	PackageID   kernel.UUID
	ShelfSlotID kernel.UUID
}

// StagePackageCommandHandler handles the business logic for staging.
// Assembles the order's pieces into a package, picks a free shelf slot
// using the configured heuristic, and claims it atomically.
//
// Slot claims race against concurrent staging and move operations. The
// handler walks the picker's candidates in order and attempts an atomic
// claim on each; losing a candidate is not an error, only exhausting all
// of them is (ErrNoCapacity).
type StagePackageCommandHandler struct {
	uowFactory StagingUoWFactory
	picker     services.SlotPicker
}

// NewStagePackageCommandHandler creates a handler for staging operations.
// Requires a StagingUoWFactory and a slot selection policy.
func NewStagePackageCommandHandler(uowFactory StagingUoWFactory, picker services.SlotPicker) StagePackageCommandHandler {
	return StagePackageCommandHandler{
		uowFactory: uowFactory,
		picker:     picker,
	}
}

// Handle processes the stage command.
// Advances the order to "staged" in the same transaction as the slot
// claim, so occupancy and order status never disagree.
func (h StagePackageCommandHandler) Handle(ctx context.Context, cmd StagePackageCommand) (StagePackageResult, error) {
	if err := cmd.Validate(); err != nil {
		return StagePackageResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StagePackageResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return StagePackageResult{}, ErrOrderNotFound
	}
	if err != nil {
		return StagePackageResult{}, err
	}

	pieces, err := uow.PieceRepository().GetAllByOrder(ctx, cmd.OrderID())
	if err != nil {
		return StagePackageResult{}, err
	}
	if len(pieces) == 0 {
		return StagePackageResult{}, ErrNoPiecesFound
	}

	pieceIDs := make([]kernel.UUID, 0, len(pieces))
	for _, piece := range pieces {
		pieceIDs = append(pieceIDs, piece.ID())
	}

	pkg, err := staging.NewPackage(kernel.NewUUID(), cmd.OrderID(), pieceIDs, cmd.ShiftName())
	if err != nil {
		return StagePackageResult{}, err
	}

	slotRepo := uow.ShelfSlotRepository()

	slots, err := slotRepo.GetAllByLogisticCenter(ctx, cmd.LogisticCenterID())
	if err != nil {
		return StagePackageResult{}, err
	}

	candidates, err := h.picker.Pick(slots)
	if errors.Is(err, services.ErrNoFreeSlots) {
		return StagePackageResult{}, ErrNoCapacity
	}
	if err != nil {
		return StagePackageResult{}, err
	}

	claimed, err := claimFirstFreeSlot(ctx, slotRepo, candidates, pkg.ID())
	if err != nil {
		return StagePackageResult{}, err
	}

	if err = pkg.StageInto(claimed.ID()); err != nil {
		return StagePackageResult{}, err
	}

	if err = aggregate.MarkStaged(); err != nil {
		return StagePackageResult{}, err
	}

	if err = uow.PackageRepository().Add(ctx, pkg); err != nil {
		return StagePackageResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return StagePackageResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StagePackageResult{}, err
	}

	return StagePackageResult{
		PackageID:   pkg.ID(),
		ShelfSlotID: claimed.ID(),
	}, nil
}

// claimFirstFreeSlot walks the candidates in preference order and returns
// the first one whose atomic claim succeeds. Candidates lost to concurrent
// claims are skipped; exhausting the list yields ErrNoCapacity.
func claimFirstFreeSlot(
	ctx context.Context,
	slotRepo ports.ShelfSlotRepository,
	candidates []*staging.ShelfSlot,
	packageID kernel.UUID,
) (*staging.ShelfSlot, error) {
	for _, candidate := range candidates {
		won, err := slotRepo.Occupy(ctx, candidate.ID(), packageID)
		if err != nil {
			return nil, err
		}
		if won {
			return candidate, nil
		}
	}

	return nil, ErrNoCapacity
}
