package packing

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrPieceIsNotConstructed is returned when a Piece was not created through
// NewPiece or RestorePiece.
var ErrPieceIsNotConstructed = errors.New("Piece must be created via NewPiece constructor")

// Piece is a discrete carryable unit derived from an order line item.
// Pieces are immutable once created: the planner produces them, the
// staging manager groups them into packages, and pickers carry them.
//
// A piece records its estimated weight (rounded to two decimal places),
// the derived liquid volume for produce with a known density, and its
// position within the order's packing plan.
type Piece struct {
	id          kernel.UUID
	orderID     kernel.UUID
	produceType string
	mode        Mode
	units       int
	estWeightKg float64
	liters      float64
	sequence    int

	guard kernel.ConstructorGuard
}

// NewPiece creates a new Piece with validation.
//
// The weight must be positive and is expected to already carry the
// planner's two-decimal rounding. Units is zero for kg-mode pieces.
// Sequence is the piece's zero-based position in the packing plan.
func NewPiece(
	id kernel.UUID,
	orderID kernel.UUID,
	produceType string,
	mode Mode,
	units int,
	estWeightKg float64,
	liters float64,
	sequence int,
) (*Piece, error) {
	piece := &Piece{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		piece.setID(id),
		piece.setOrderID(orderID),
		piece.setProduceType(produceType),
		piece.setMode(mode),
		piece.setUnits(mode, units),
		piece.setEstWeightKg(estWeightKg),
		piece.setLiters(liters),
		piece.setSequence(sequence),
	); err != nil {
		return nil, err
	}

	return piece, nil
}

// RestorePiece reconstructs a Piece from persistent storage.
// The restored piece behaves identically to a freshly planned one.
func RestorePiece(
	id kernel.UUID,
	orderID kernel.UUID,
	produceType string,
	mode Mode,
	units int,
	estWeightKg float64,
	liters float64,
	sequence int,
) (*Piece, error) {
	return NewPiece(id, orderID, produceType, mode, units, estWeightKg, liters, sequence)
}

// IsEqual compares two pieces by their unique identifiers.
func (p *Piece) IsEqual(other *Piece) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the piece's unique identifier.
func (p *Piece) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order the piece was planned for.
func (p *Piece) OrderID() kernel.UUID {
	return p.orderID
}

// ProduceType returns the produce type carried by the piece.
func (p *Piece) ProduceType() string {
	return p.produceType
}

// Mode returns the splitting mode of the originating line item.
func (p *Piece) Mode() Mode {
	return p.mode
}

// Units returns the number of discrete units in the piece.
// Zero for kg-mode pieces.
func (p *Piece) Units() int {
	return p.units
}

// EstWeightKg returns the estimated weight of the piece,
// rounded half-up to two decimal places.
func (p *Piece) EstWeightKg() float64 {
	return p.estWeightKg
}

// Liters returns the liquid volume derived from the produce density policy.
// Zero when no density entry applies.
func (p *Piece) Liters() float64 {
	return p.liters
}

// Sequence returns the piece's zero-based position in the packing plan.
func (p *Piece) Sequence() int {
	return p.sequence
}

// Validate ensures the Piece was created through its constructor.
func (p *Piece) Validate() error {
	if p == nil {
		return ErrPieceIsNotConstructed
	}
	return p.guard.Validate(ErrPieceIsNotConstructed)
}

func (p *Piece) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Piece) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Piece) setProduceType(produceType string) error {
	if produceType == "" {
		return errs.NewValueIsRequiredError("produceType is required")
	}
	p.produceType = produceType
	return nil
}

func (p *Piece) setMode(mode Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	p.mode = mode
	return nil
}

func (p *Piece) setUnits(mode Mode, units int) error {
	if mode == ModeUnits && units <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"units is invalid",
			fmt.Errorf("%d is not greater than 0", units),
		)
	}
	p.units = units
	return nil
}

func (p *Piece) setEstWeightKg(estWeightKg float64) error {
	if estWeightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"estWeightKg is invalid",
			fmt.Errorf("%v is not greater than 0", estWeightKg),
		)
	}
	p.estWeightKg = estWeightKg
	return nil
}

func (p *Piece) setLiters(liters float64) error {
	if liters < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"liters is invalid",
			fmt.Errorf("%v is negative", liters),
		)
	}
	p.liters = liters
	return nil
}

func (p *Piece) setSequence(sequence int) error {
	if sequence < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"sequence is invalid",
			fmt.Errorf("%d is negative", sequence),
		)
	}
	p.sequence = sequence
	return nil
}
