package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRegisterOrderCommandIsNotConstructed = errors.New(
		"RegisterOrderCommand must be created via NewRegisterOrderCommand constructor",
	)
	ErrLineItemsAreRequired = errors.New("at least one line item is required")
)

// RegisterOrderCommand represents a request to register a customer order
// with the warehouse. Encapsulates the order identity assigned by the
// external order system and the line items to fulfill.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewRegisterOrderCommand(orderID, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewRegisterOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register order: %w", err)
//	}
type RegisterOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	lineItems []packing.LineItem

	guard guard.ConstructorGuard
}

// NewRegisterOrderCommand creates a command to register a new order.
// Validates that the order ID is valid and at least one line item is present.
// Returns an error if any validation fails.
func NewRegisterOrderCommand(orderID kernel.UUID, lineItems []packing.LineItem) (RegisterOrderCommand, error) {
	command := RegisterOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setLineItems(lineItems),
	); err != nil {
		return RegisterOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterOrderCommandIsNotConstructed if validation fails.
func (c RegisterOrderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c RegisterOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineItems returns the line items to fulfill.
func (c RegisterOrderCommand) LineItems() []packing.LineItem {
	return c.lineItems
}

func (c *RegisterOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RegisterOrderCommand) setLineItems(lineItems []packing.LineItem) error {
	if len(lineItems) == 0 {
		return ErrLineItemsAreRequired
	}

	c.lineItems = lineItems
	return nil
}
