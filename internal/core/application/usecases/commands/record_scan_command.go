package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRecordScanCommandIsNotConstructed = errors.New(
		"RecordScanCommand must be created via NewRecordScanCommand constructor",
	)
	ErrBarcodeIsRequired = errors.New("barcode is required")
	ErrActorIsRequired   = errors.New("actor is required")
)

// RecordScanCommand represents a container scan reported from a handheld
// device at the destination. Devices retry on flaky networks, so the same
// scan may arrive more than once; recording is idempotent.
type RecordScanCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	barcode    string
	actor      string

	guard guard.ConstructorGuard
}

// NewRecordScanCommand creates a command to record a container scan.
// Validates that the shipment ID is valid and barcode and actor are not empty.
func NewRecordScanCommand(shipmentID kernel.UUID, barcode, actor string) (RecordScanCommand, error) {
	command := RecordScanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setBarcode(barcode),
		command.setActor(actor),
	); err != nil {
		return RecordScanCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordScanCommand) Validate() error {
	return c.guard.Validate(ErrRecordScanCommandIsNotConstructed)
}

// ShipmentID returns the shipment the scanned container belongs to.
func (c RecordScanCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Barcode returns the scanned container barcode.
func (c RecordScanCommand) Barcode() string {
	return c.barcode
}

// Actor returns who performed the scan.
func (c RecordScanCommand) Actor() string {
	return c.actor
}

func (c *RecordScanCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *RecordScanCommand) setBarcode(barcode string) error {
	if barcode == "" {
		return ErrBarcodeIsRequired
	}

	c.barcode = barcode
	return nil
}

func (c *RecordScanCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
