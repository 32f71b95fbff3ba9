package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMintArrivalTokenCommandIsNotConstructed = errors.New(
	"MintArrivalTokenCommand must be created via NewMintArrivalTokenCommand constructor",
)

// MintArrivalTokenCommand represents a request to issue a fresh arrival
// confirmation token for an in-transit shipment. Minting replaces any
// previously issued token, invalidating links already sent out.
type MintArrivalTokenCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMintArrivalTokenCommand creates a command to mint an arrival token.
func NewMintArrivalTokenCommand(shipmentID kernel.UUID) (MintArrivalTokenCommand, error) {
	command := MintArrivalTokenCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setShipmentID(shipmentID); err != nil {
		return MintArrivalTokenCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MintArrivalTokenCommand) Validate() error {
	return c.guard.Validate(ErrMintArrivalTokenCommandIsNotConstructed)
}

// ShipmentID returns the shipment to mint a token for.
func (c MintArrivalTokenCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *MintArrivalTokenCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
