package fulfillment

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the coordination aggregate of the fulfillment pipeline. It
// tracks one customer order's progress through the warehouse as a
// monotonic state machine and carries the read-only line items the
// external order system registered it with.
//
// Each transition is performed in the same transaction as the component
// effect it reflects, so a failed component call leaves the order's
// status untouched and no partial transition is ever visible to readers.
type Order struct {
	// id is the order's unique identifier, issued by the order system
	id kernel.UUID

	// status is the current position in the fulfillment pipeline
	status Status

	// lineItems are the ordered lines, immutable once registered
	lineItems []packing.LineItem

	// isConstructed ensures the order was created via its constructor
	isConstructed bool
}

// NewOrder registers a new order in Placed status.
// At least one line item is required; line items carry their own
// validation through packing.NewLineItem.
func NewOrder(id kernel.UUID, lineItems []packing.LineItem) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(lineItems) == 0 {
		return nil, errs.NewValueIsRequiredError("lineItems are required")
	}

	copied := make([]packing.LineItem, len(lineItems))
	copy(copied, lineItems)

	return &Order{
		id:            id,
		status:        Placed,
		lineItems:     copied,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistent storage.
func RestoreOrder(id kernel.UUID, status Status, lineItems []packing.LineItem) (*Order, error) {
	order, err := NewOrder(id, lineItems)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	order.status = status
	return order, nil
}

// Validate ensures the Order was created through its constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the order's current pipeline status.
func (o *Order) Status() Status {
	return o.status
}

// LineItems returns the order's registered line items.
func (o *Order) LineItems() []packing.LineItem {
	return o.lineItems
}

// MarkPacked records that the order's pieces have been planned.
func (o *Order) MarkPacked() error {
	return o.transition(Status.Pack)
}

// MarkStaged records that the order's package occupies a shelf slot.
func (o *Order) MarkStaged() error {
	return o.transition(Status.Stage)
}

// MarkShipped records that the order's shipment has been dispatched.
func (o *Order) MarkShipped() error {
	return o.transition(Status.Ship)
}

// MarkArrived records that the recipient confirmed arrival.
func (o *Order) MarkArrived() error {
	return o.transition(Status.Arrive)
}

func (o *Order) transition(step func(Status) (Status, error)) error {
	newStatus, err := step(o.status)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}
