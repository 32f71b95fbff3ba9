package staging

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrPackageNotStaged indicates an operation that requires the package
	// to occupy a shelf slot was attempted on a package that does not.
	// The caller acted on a stale view; the error is surfaced directly.
	ErrPackageNotStaged = errors.New("package is not staged")

	// ErrPackageIsNotConstructed is returned when a Package was not created
	// through NewPackage or RestorePackage.
	ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage constructor")
)

// Package is the aggregate root of the staging area: a group of pieces
// picked for one order, staged together on a single shelf slot until
// consolidated into a shipment.
//
// Invariants:
//   - A package holds at most one active shelf slot assignment
//   - Staged and Moved packages always reference a slot; Unstaged and
//     Released packages never do
//   - Released is terminal; a released package cannot be restaged
type Package struct {
	// id is the unique identifier for the package
	id kernel.UUID

	// orderID is the order the grouped pieces were picked for
	orderID kernel.UUID

	// pieceIDs are the pieces grouped into this package, immutable once set
	pieceIDs []kernel.UUID

	// shelfSlotID is the currently occupied slot (nil unless on a shelf)
	shelfSlotID *kernel.UUID

	// shiftName records the warehouse shift that staged the package
	shiftName string

	// status is the current state in the staging lifecycle
	status Status

	// guard ensures the package was created via its constructor
	guard kernel.ConstructorGuard
}

// NewPackage creates a new Package in Unstaged status with no slot.
//
// Parameters:
//   - id: Unique identifier for the package
//   - orderID: Order the pieces belong to
//   - pieceIDs: Pieces grouped into the package (at least one)
//   - shiftName: Warehouse shift performing the staging (must not be empty)
func NewPackage(id, orderID kernel.UUID, pieceIDs []kernel.UUID, shiftName string) (*Package, error) {
	pkg := &Package{
		status: Unstaged,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		pkg.setID(id),
		pkg.setOrderID(orderID),
		pkg.setPieceIDs(pieceIDs),
		pkg.setShiftName(shiftName),
	); err != nil {
		return nil, err
	}

	return pkg, nil
}

// RestorePackage reconstructs a Package from persistent storage, including
// its status and slot assignment at the time of persistence.
//
// The restoration re-checks the status/slot consistency invariant so a
// corrupted row cannot produce an aggregate in an impossible state.
func RestorePackage(
	id, orderID kernel.UUID,
	pieceIDs []kernel.UUID,
	shiftName string,
	status Status,
	shelfSlotID *kernel.UUID,
) (*Package, error) {
	pkg, err := NewPackage(id, orderID, pieceIDs, shiftName)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if status.IsOnShelf() != (shelfSlotID != nil) {
		return nil, errs.NewValueIsInvalidError("status and shelf slot assignment are inconsistent")
	}

	if shelfSlotID != nil {
		if err = shelfSlotID.Validate(); err != nil {
			return nil, err
		}
	}

	pkg.status = status
	pkg.shelfSlotID = shelfSlotID
	return pkg, nil
}

// IsEqual compares two packages by their unique identifiers.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the package's unique identifier.
func (p *Package) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order the package's pieces were picked for.
func (p *Package) OrderID() kernel.UUID {
	return p.orderID
}

// PieceIDs returns the pieces grouped into the package.
func (p *Package) PieceIDs() []kernel.UUID {
	return p.pieceIDs
}

// ShiftName returns the warehouse shift that staged the package.
func (p *Package) ShiftName() string {
	return p.shiftName
}

// Status returns the current staging status of the package.
func (p *Package) Status() Status {
	return p.status
}

// ShelfSlotID returns the currently occupied shelf slot.
// Returns nil unless the package is on a shelf.
func (p *Package) ShelfSlotID() *kernel.UUID {
	return p.shelfSlotID
}

// StageInto assigns the package its first shelf slot and marks it Staged.
//
// Returns an error if the package is not Unstaged or the slot ID is
// invalid. The slot's own occupancy is enforced separately by
// ShelfSlot.Occupy and the persistence-level compare-and-set.
func (p *Package) StageInto(slotID kernel.UUID) error {
	if err := slotID.Validate(); err != nil {
		return err
	}

	newStatus, err := p.status.Stage()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.shelfSlotID = &slotID
	return nil
}

// MoveTo relocates the package to a different shelf slot and marks it Moved.
//
// The source and destination swap happens in one assignment so the package
// is never observably slotless. Returns ErrPackageNotStaged if the package
// is not on a shelf, or a validation error if the destination equals the
// current slot.
func (p *Package) MoveTo(toSlotID kernel.UUID) error {
	if err := toSlotID.Validate(); err != nil {
		return err
	}

	if p.shelfSlotID != nil && p.shelfSlotID.IsEqual(toSlotID) {
		return errs.NewValueIsInvalidError("destination slot equals current slot")
	}

	newStatus, err := p.status.Move()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.shelfSlotID = &toSlotID
	return nil
}

// Release takes the package off its shelf slot and marks it Released.
//
// Returns ErrPackageNotStaged if the package is not on a shelf.
// Released is final: the package cannot be restaged.
func (p *Package) Release() error {
	newStatus, err := p.status.Release()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.shelfSlotID = nil
	return nil
}

func (p *Package) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Package) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Package) setPieceIDs(pieceIDs []kernel.UUID) error {
	if len(pieceIDs) == 0 {
		return errs.NewValueIsRequiredError("pieceIDs are required")
	}

	copied := make([]kernel.UUID, len(pieceIDs))
	for i, pieceID := range pieceIDs {
		if err := pieceID.Validate(); err != nil {
			return err
		}
		copied[i] = pieceID
	}

	p.pieceIDs = copied
	return nil
}

func (p *Package) setShiftName(shiftName string) error {
	if shiftName == "" {
		return errs.NewValueIsRequiredError("shiftName is required")
	}
	p.shiftName = shiftName
	return nil
}

// Validate ensures the Package was created through its constructor.
func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}
