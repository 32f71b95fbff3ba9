package shipment

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidShipmentState indicates a transition was attempted from a
// status that does not allow it. Shipment statuses are monotonic:
// a shipment never regresses to an earlier state.
var ErrInvalidShipmentState = errors.New("shipment is not in a valid state for this operation")

// Status represents the lifecycle state of a shipment.
//
// State transitions are strictly monotonic:
//
//	Building ──> InTransit ──> Arrived
//
// Building shipments accumulate containers; InTransit shipments are being
// loaded and scanned by the driver; Arrived is the final state, reached
// only through arrival-token confirmation.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Building is the initial status while containers are consolidated.
	Building

	// InTransit indicates the shipment has been dispatched and its
	// containers are being scanned.
	InTransit

	// Arrived indicates the recipient confirmed arrival.
	// This is a final state with no further transitions.
	Arrived
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Building:      "Building",
		InTransit:     "InTransit",
		Arrived:       "Arrived",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Building:  "Building",
		InTransit: "InTransit",
		Arrived:   "Arrived",
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

// Dispatch transitions the status to InTransit.
//
// Valid transitions:
//   - Building -> InTransit
//
// Any other starting status returns ErrInvalidShipmentState.
func (s Status) Dispatch() (Status, error) {
	if s != Building {
		return 0, ErrInvalidShipmentState
	}
	return InTransit, nil
}

// Arrive transitions the status to Arrived.
//
// Valid transitions:
//   - InTransit -> Arrived
//
// Any other starting status returns ErrInvalidShipmentState; in particular
// an Arrived shipment can never arrive twice.
func (s Status) Arrive() (Status, error) {
	if s != InTransit {
		return 0, ErrInvalidShipmentState
	}
	return Arrived, nil
}
