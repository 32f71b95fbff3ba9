// Package ports defines repository interfaces for the fulfillment domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"
)

// ShelfSlotRepository defines the persistence contract for shelf slots.
// Slots are the contended resource of the staging area, so the contract
// separates plain reads from the atomic claim operations that decide
// occupancy races.
type ShelfSlotRepository interface {
	// Add persists a new shelf slot to storage.
	// The slot must be valid and not already exist in the repository.
	Add(ctx context.Context, slot *staging.ShelfSlot) error

	// Get retrieves a shelf slot by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*staging.ShelfSlot, error)

	// GetAllByLogisticCenter retrieves every slot of a logistic center,
	// occupied ones included, so slot selection heuristics can weigh
	// zone load.
	GetAllByLogisticCenter(ctx context.Context, logisticCenterID kernel.UUID) ([]*staging.ShelfSlot, error)

	// Occupy atomically claims a free slot for the given package.
	//
	// The implementation must perform a compare-and-set against the
	// persisted occupancy: the write succeeds only if the slot is still
	// free at commit time. Returns false, without error, when a
	// concurrent operation claimed the slot first; the caller moves on
	// to its next candidate.
	//
	// Example:
	//   claimed, err := repo.Occupy(ctx, slot.ID(), pkg.ID())
	//   if err != nil {
	//       return err
	//   }
	//   if !claimed {
	//       continue // lost the race, try the next candidate
	//   }
	Occupy(ctx context.Context, slotID, packageID kernel.UUID) (bool, error)

	// Vacate atomically frees a slot currently held by the given package.
	// Returns false when the slot does not hold that package, which means
	// the state changed underneath the caller and the operation must fail.
	Vacate(ctx context.Context, slotID, packageID kernel.UUID) (bool, error)
}
