package fulfillment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order moving through the
// warehouse pipeline. Transitions are strictly monotonic and each step is
// driven by exactly one pipeline component:
//
//	Placed ──> Packed ──> Staged ──> Shipped ──> Arrived
//
// Packing produces the pieces, staging puts them on a shelf, dispatching
// the shipment marks the order shipped, and only arrival-token
// confirmation marks it arrived.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Placed is the initial status of a registered order.
	Placed

	// Packed indicates the order's pieces have been planned.
	Packed

	// Staged indicates the order's package occupies a shelf slot.
	Staged

	// Shipped indicates the order's shipment has been dispatched.
	Shipped

	// Arrived indicates the recipient confirmed arrival.
	// This is a final state with no further transitions.
	Arrived
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Placed:        "Placed",
		Packed:        "Packed",
		Staged:        "Staged",
		Shipped:       "Shipped",
		Arrived:       "Arrived",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:  "Placed",
		Packed:  "Packed",
		Staged:  "Staged",
		Shipped: "Shipped",
		Arrived: "Arrived",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) advance(from, to Status) (Status, error) {
	if s != from {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to become %s", s.String(), to.String()),
		)
	}
	return to, nil
}

// Pack transitions Placed -> Packed.
func (s Status) Pack() (Status, error) {
	return s.advance(Placed, Packed)
}

// Stage transitions Packed -> Staged.
func (s Status) Stage() (Status, error) {
	return s.advance(Packed, Staged)
}

// Ship transitions Staged -> Shipped.
func (s Status) Ship() (Status, error) {
	return s.advance(Staged, Shipped)
}

// Arrive transitions Shipped -> Arrived.
func (s Status) Arrive() (Status, error) {
	return s.advance(Shipped, Arrived)
}
