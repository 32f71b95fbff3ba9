package packing

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Mode describes how a line item's quantity is carved into pieces.
//
// Kg items hold a continuous weight that is split into bounded-weight
// pieces. Units items hold a discrete count of produce units that is split
// into bounded-size unit groups.
type Mode int

const (
	// ModeUnknown represents an invalid or undefined mode.
	ModeUnknown Mode = iota

	// ModeKg splits a continuous weight into bounded-weight pieces.
	ModeKg

	// ModeUnits splits a discrete unit count into bounded unit groups.
	ModeUnits
)

// String returns the human-readable name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeKg:
		return "kg"
	case ModeUnits:
		return "units"
	default:
		return "Unknown"
	}
}

// Validate checks if the Mode value is valid.
func (m Mode) Validate() error {
	if m != ModeKg && m != ModeUnits {
		return errs.NewValueIsInvalidErrorWithCause("mode is invalid", fmt.Errorf("%d is not a valid mode", m))
	}
	return nil
}

// LineItem is a read-only view of one line of a customer order: a produce
// type with a continuous weight and, for unit-counted produce, a discrete
// unit count. Line items are owned by the external order system; this
// package only consumes them.
type LineItem struct {
	produceType string
	mode        Mode
	quantityKg  float64
	unitCount   int
}

// NewLineItem creates a validated line item.
// QuantityKg must be positive for both modes; unitCount must be positive
// for units-mode items and is ignored for kg-mode items.
func NewLineItem(produceType string, mode Mode, quantityKg float64, unitCount int) (LineItem, error) {
	if produceType == "" {
		return LineItem{}, errs.NewValueIsRequiredError("produceType is required")
	}
	if err := mode.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantityKg <= 0 {
		return LineItem{}, NewInvalidLineItemError(
			produceType,
			fmt.Errorf("quantity %v is not greater than 0", quantityKg),
		)
	}
	if mode == ModeUnits && unitCount <= 0 {
		return LineItem{}, NewInvalidLineItemError(
			produceType,
			fmt.Errorf("unit count %d is not greater than 0", unitCount),
		)
	}

	return LineItem{
		produceType: produceType,
		mode:        mode,
		quantityKg:  quantityKg,
		unitCount:   unitCount,
	}, nil
}

// ProduceType returns the produce type of the line item.
func (l LineItem) ProduceType() string {
	return l.produceType
}

// Mode returns how the line item's quantity is split into pieces.
func (l LineItem) Mode() Mode {
	return l.mode
}

// QuantityKg returns the total ordered weight of the line item.
func (l LineItem) QuantityKg() float64 {
	return l.quantityKg
}

// UnitCount returns the discrete unit count for units-mode items.
// Zero for kg-mode items.
func (l LineItem) UnitCount() int {
	return l.unitCount
}
