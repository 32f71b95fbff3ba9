package packing

import (
	"fmt"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
)

// Planner deterministically splits an order's line items into carryable
// pieces under a packing policy.
//
// Determinism is a hard requirement: pickers work off printed plans, so
// planning the same unmodified order twice must yield an identical piece
// sequence. The planner therefore walks line items in their given order
// and numbers pieces with a global, stable sequence.
type Planner struct {
	policy Policy
}

// NewPlanner creates a planner bound to the given policy.
func NewPlanner(policy Policy) Planner {
	return Planner{policy: policy}
}

// Plan converts the order's line items into pieces.
//
// For kg-mode items the total weight is divided into pieces bounded by the
// policy's maximum piece weight; the last piece absorbs the remainder, and
// quantities exactly divisible by the maximum produce only full pieces.
// Each piece's weight rounds half-up to two decimal places and its liters
// derive from the density table. A kg-mode produce type without a density
// entry is rejected with ErrInvalidLineItem.
//
// For units-mode items units are grouped into pieces of at most the
// policy's maximum units per piece, the weight being apportioned by unit
// share. Liters are derived only when a density entry exists.
//
// The whole plan fails on the first invalid line item; no partial plans
// are produced.
func (p Planner) Plan(orderID kernel.UUID, items []LineItem) ([]*Piece, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	pieces := make([]*Piece, 0, len(items))
	for _, item := range items {
		if item.QuantityKg() <= 0 {
			return nil, NewInvalidLineItemError(
				item.ProduceType(),
				fmt.Errorf("quantity %v is not greater than 0", item.QuantityKg()),
			)
		}

		var (
			planned []*Piece
			err     error
		)
		switch item.Mode() {
		case ModeKg:
			planned, err = p.planKgItem(orderID, item, len(pieces))
		case ModeUnits:
			planned, err = p.planUnitsItem(orderID, item, len(pieces))
		default:
			err = NewInvalidLineItemError(item.ProduceType(), fmt.Errorf("%d is not a valid mode", item.Mode()))
		}
		if err != nil {
			return nil, err
		}

		pieces = append(pieces, planned...)
	}

	return pieces, nil
}

func (p Planner) planKgItem(orderID kernel.UUID, item LineItem, nextSequence int) ([]*Piece, error) {
	litersPerKg, ok := p.policy.LitersPerKg(item.ProduceType())
	if !ok {
		return nil, NewInvalidLineItemError(
			item.ProduceType(),
			fmt.Errorf("no density policy entry for produce type"),
		)
	}

	maxWeight := p.policy.MaxPieceWeightKg()
	count := int(math.Ceil(item.QuantityKg() / maxWeight))
	if count < 1 {
		count = 1
	}

	pieces := make([]*Piece, 0, count)
	for i := range count {
		weight := maxWeight
		if i == count-1 {
			weight = item.QuantityKg() - maxWeight*float64(count-1)
		}

		weight = roundHalfUp(weight)
		piece, err := NewPiece(
			kernel.NewUUID(),
			orderID,
			item.ProduceType(),
			ModeKg,
			0,
			weight,
			roundHalfUp(weight*litersPerKg),
			nextSequence+i,
		)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
	}

	return pieces, nil
}

func (p Planner) planUnitsItem(orderID kernel.UUID, item LineItem, nextSequence int) ([]*Piece, error) {
	if item.UnitCount() <= 0 {
		return nil, NewInvalidLineItemError(
			item.ProduceType(),
			fmt.Errorf("unit count %d is not greater than 0", item.UnitCount()),
		)
	}

	maxUnits := p.policy.MaxUnitsPerPiece()
	weightPerUnit := item.QuantityKg() / float64(item.UnitCount())
	litersPerKg, hasDensity := p.policy.LitersPerKg(item.ProduceType())

	pieces := make([]*Piece, 0, (item.UnitCount()+maxUnits-1)/maxUnits)
	for remaining, i := item.UnitCount(), 0; remaining > 0; i++ {
		units := remaining
		if units > maxUnits {
			units = maxUnits
		}

		weight := roundHalfUp(weightPerUnit * float64(units))
		liters := 0.0
		if hasDensity {
			liters = roundHalfUp(weight * litersPerKg)
		}

		piece, err := NewPiece(
			kernel.NewUUID(),
			orderID,
			item.ProduceType(),
			ModeUnits,
			units,
			weight,
			liters,
			nextSequence+i,
		)
		if err != nil {
			return nil, err
		}

		pieces = append(pieces, piece)
		remaining -= units
	}

	return pieces, nil
}

// roundHalfUp rounds to two decimal places with ties going up,
// the rounding rule printed picking sheets are calibrated to.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
