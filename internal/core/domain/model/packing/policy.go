package packing

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Policy holds the tunable constants of the packing planner: the maximum
// weight a picker carries in one piece, the maximum number of discrete
// units grouped into one piece, and the liters-per-kilogram density table
// keyed by produce type.
//
// The policy is injected into the planner rather than hard-coded so zone
// operators can tune it per logistic center and tests can pin exact values.
type Policy struct {
	maxPieceWeightKg float64
	maxUnitsPerPiece int
	densities        map[string]float64
}

// NewPolicy creates a validated packing policy.
// The density table is copied; later mutation of the argument does not
// affect the policy.
func NewPolicy(maxPieceWeightKg float64, maxUnitsPerPiece int, densities map[string]float64) (Policy, error) {
	if maxPieceWeightKg <= 0 {
		return Policy{}, errs.NewValueIsInvalidErrorWithCause(
			"maxPieceWeightKg is invalid",
			fmt.Errorf("%v is not greater than 0", maxPieceWeightKg),
		)
	}
	if maxUnitsPerPiece <= 0 {
		return Policy{}, errs.NewValueIsInvalidErrorWithCause(
			"maxUnitsPerPiece is invalid",
			fmt.Errorf("%d is not greater than 0", maxUnitsPerPiece),
		)
	}

	copied := make(map[string]float64, len(densities))
	for produceType, litersPerKg := range densities {
		if litersPerKg <= 0 {
			return Policy{}, errs.NewValueIsInvalidErrorWithCause(
				"density is invalid",
				fmt.Errorf("%v liters/kg for %s is not greater than 0", litersPerKg, produceType),
			)
		}
		copied[produceType] = litersPerKg
	}

	return Policy{
		maxPieceWeightKg: maxPieceWeightKg,
		maxUnitsPerPiece: maxUnitsPerPiece,
		densities:        copied,
	}, nil
}

// MaxPieceWeightKg returns the maximum weight of a single piece.
func (p Policy) MaxPieceWeightKg() float64 {
	return p.maxPieceWeightKg
}

// MaxUnitsPerPiece returns the maximum number of units grouped into a piece.
func (p Policy) MaxUnitsPerPiece() int {
	return p.maxUnitsPerPiece
}

// LitersPerKg looks up the density entry for a produce type.
// The second return reports whether an entry exists.
func (p Policy) LitersPerKg(produceType string) (float64, bool) {
	litersPerKg, ok := p.densities[produceType]
	return litersPerKg, ok
}
