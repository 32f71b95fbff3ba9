package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrContainersAreRequired = errors.New("at least one container is required")
)

// ContainerInput describes one physical container loaded into a shipment.
type ContainerInput struct {
	Barcode     string
	ProduceType string
	Quantity    float64
}

// CreateShipmentCommand represents a request to build a shipment for a
// staged order out of labeled containers.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	orderID    kernel.UUID
	containers []ContainerInput

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to build a shipment.
// Container-level validation (barcode uniqueness, quantities) is performed
// by the shipment aggregate; the command only requires a non-empty list.
func NewCreateShipmentCommand(shipmentID, orderID kernel.UUID, containers []ContainerInput) (CreateShipmentCommand, error) {
	command := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setOrderID(orderID),
		command.setContainers(containers),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OrderID returns the order the shipment fulfills.
func (c CreateShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Containers returns the containers to load into the shipment.
func (c CreateShipmentCommand) Containers() []ContainerInput {
	return c.containers
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateShipmentCommand) setContainers(containers []ContainerInput) error {
	if len(containers) == 0 {
		return ErrContainersAreRequired
	}

	c.containers = containers
	return nil
}
