package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchShipmentCommandIsNotConstructed = errors.New(
	"DispatchShipmentCommand must be created via NewDispatchShipmentCommand constructor",
)

// DispatchShipmentCommand represents a request to send a built shipment
// out of the warehouse.
type DispatchShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchShipmentCommand creates a command to dispatch a shipment.
func NewDispatchShipmentCommand(shipmentID kernel.UUID) (DispatchShipmentCommand, error) {
	command := DispatchShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setShipmentID(shipmentID); err != nil {
		return DispatchShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDispatchShipmentCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier of the shipment to dispatch.
func (c DispatchShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *DispatchShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
