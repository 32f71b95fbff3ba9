package staging

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrSlotOccupied indicates that a shelf slot already holds a package
	// and cannot accept another one. Callers recover by choosing a
	// different slot; the operation is never retried against the same slot.
	ErrSlotOccupied = errors.New("shelf slot is occupied")

	// ErrPackageNotInSlot indicates that the package being released is not
	// the one the slot currently holds.
	ErrPackageNotInSlot = errors.New("package not stored in this shelf slot")

	// ErrShelfSlotIsNotConstructed indicates that the ShelfSlot was not
	// created through NewShelfSlot or RestoreShelfSlot.
	ErrShelfSlotIsNotConstructed = errors.New("ShelfSlot must be created via NewShelfSlot constructor")
)

// ShelfSlot represents a uniquely addressable physical storage location
// with capacity for exactly one package. It is the shared mutable resource
// of the staging area: concurrent stage and move operations compete for
// free slots, and occupancy must never be double-booked.
//
// The entity enforces binary occupancy in memory; the persistence layer
// mirrors the same rule with an atomic compare-and-set on the slot row so
// the invariant holds across service instances. Slots are grouped into
// zones within a logistic center; zone selection is a pluggable policy,
// not a property of the slot itself.
type ShelfSlot struct {
	// id uniquely identifies the shelf slot
	id kernel.UUID

	// logisticCenterID identifies the warehouse the slot belongs to
	logisticCenterID kernel.UUID

	// zone is the named area of the warehouse containing the slot
	zone string

	// code is the human-readable slot address within the zone
	code string

	// occupantPackageID points to the currently stored package, nil if free
	occupantPackageID *kernel.UUID

	// guard ensures the entity was properly initialized
	guard kernel.ConstructorGuard
}

// NewShelfSlot creates a new, free ShelfSlot.
//
// Parameters:
//   - id: Unique identifier for the slot (must be valid UUID)
//   - logisticCenterID: Warehouse the slot belongs to (must be valid UUID)
//   - zone: Named warehouse area (must not be empty)
//   - code: Slot address within the zone (must not be empty)
func NewShelfSlot(id, logisticCenterID kernel.UUID, zone, code string) (*ShelfSlot, error) {
	slot := &ShelfSlot{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		slot.setID(id),
		slot.setLogisticCenterID(logisticCenterID),
		slot.setZone(zone),
		slot.setCode(code),
	); err != nil {
		return nil, err
	}

	return slot, nil
}

// RestoreShelfSlot reconstructs a ShelfSlot from persistent storage,
// including its occupancy at the time of persistence.
func RestoreShelfSlot(
	id, logisticCenterID kernel.UUID,
	zone, code string,
	occupantPackageID *kernel.UUID,
) (*ShelfSlot, error) {
	slot, err := NewShelfSlot(id, logisticCenterID, zone, code)
	if err != nil {
		return nil, err
	}

	if err = slot.setOccupantPackageID(occupantPackageID); err != nil {
		return nil, err
	}

	return slot, nil
}

// IsEqual compares two slots by their unique identifiers.
func (s *ShelfSlot) IsEqual(other *ShelfSlot) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the unique identifier of the shelf slot.
func (s *ShelfSlot) ID() kernel.UUID {
	return s.id
}

// LogisticCenterID returns the warehouse the slot belongs to.
func (s *ShelfSlot) LogisticCenterID() kernel.UUID {
	return s.logisticCenterID
}

// Zone returns the named warehouse area containing the slot.
func (s *ShelfSlot) Zone() string {
	return s.zone
}

// Code returns the human-readable slot address within the zone.
func (s *ShelfSlot) Code() string {
	return s.code
}

// OccupantPackageID returns the ID of the currently stored package,
// or nil if the slot is free.
func (s *ShelfSlot) OccupantPackageID() *kernel.UUID {
	return s.occupantPackageID
}

// IsFree reports whether the slot holds no package.
func (s *ShelfSlot) IsFree() bool {
	return s.occupantPackageID == nil
}

// Occupy places a package in this slot, marking it occupied.
//
// Returns ErrSlotOccupied if the slot already holds a package. The in-memory
// check mirrors the persistence-level compare-and-set; under concurrency the
// database write is authoritative and exactly one writer wins.
func (s *ShelfSlot) Occupy(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	if !s.IsFree() {
		return ErrSlotOccupied
	}

	s.occupantPackageID = &packageID
	return nil
}

// Vacate removes the specified package from this slot, freeing it.
//
// Returns ErrPackageNotInSlot if the slot is free or holds a different
// package.
func (s *ShelfSlot) Vacate(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	if s.IsFree() || !s.occupantPackageID.IsEqual(packageID) {
		return ErrPackageNotInSlot
	}

	s.occupantPackageID = nil
	return nil
}

func (s *ShelfSlot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *ShelfSlot) setLogisticCenterID(logisticCenterID kernel.UUID) error {
	if err := logisticCenterID.Validate(); err != nil {
		return err
	}
	s.logisticCenterID = logisticCenterID
	return nil
}

func (s *ShelfSlot) setZone(zone string) error {
	if zone == "" {
		return errs.NewValueIsRequiredError("zone is required")
	}
	s.zone = zone
	return nil
}

func (s *ShelfSlot) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code is required")
	}
	s.code = code
	return nil
}

func (s *ShelfSlot) setOccupantPackageID(occupantPackageID *kernel.UUID) error {
	if occupantPackageID != nil {
		if err := occupantPackageID.Validate(); err != nil {
			return err
		}
	}
	s.occupantPackageID = occupantPackageID
	return nil
}

// Validate checks if the ShelfSlot entity is in a valid state.
func (s *ShelfSlot) Validate() error {
	if s == nil {
		return ErrShelfSlotIsNotConstructed
	}
	return s.guard.Validate(ErrShelfSlotIsNotConstructed)
}
