package shipment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrContainerIsNotConstructed is returned when a Container was not created
// through NewContainer or RestoreContainer.
var ErrContainerIsNotConstructed = errors.New("Container must be created via NewContainer constructor")

// Container is a barcoded physical unit loaded onto a shipment and scanned
// by the driver during loading and arrival. A container is effectively
// scanned at most once: the first scan records who and when, every later
// scan of the same barcode is a no-op rather than an error, because
// drivers rescan by accident and scanning devices retry on flaky networks.
type Container struct {
	// id uniquely identifies the container
	id kernel.UUID

	// barcode is the scannable label, unique within the shipment
	barcode string

	// produceType describes the container's contents
	produceType string

	// quantity is the packed amount in kilograms
	quantity float64

	// scanned reports whether the driver has scanned the container
	scanned bool

	// scannedBy records the actor of the first scan, nil if unscanned
	scannedBy *string

	// scannedAt records the time of the first scan, nil if unscanned
	scannedAt *time.Time

	// guard ensures the container was created via its constructor
	guard kernel.ConstructorGuard
}

// NewContainer creates an unscanned container.
func NewContainer(id kernel.UUID, barcode, produceType string, quantity float64) (*Container, error) {
	container := &Container{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		container.setID(id),
		container.setBarcode(barcode),
		container.setProduceType(produceType),
		container.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return container, nil
}

// RestoreContainer reconstructs a container from persistent storage,
// including its scan state at the time of persistence.
func RestoreContainer(
	id kernel.UUID,
	barcode, produceType string,
	quantity float64,
	scannedBy *string,
	scannedAt *time.Time,
) (*Container, error) {
	container, err := NewContainer(id, barcode, produceType, quantity)
	if err != nil {
		return nil, err
	}

	if (scannedBy == nil) != (scannedAt == nil) {
		return nil, errs.NewValueIsInvalidError("scannedBy and scannedAt must be set together")
	}

	if scannedBy != nil {
		container.scanned = true
		container.scannedBy = scannedBy
		container.scannedAt = scannedAt
	}

	return container, nil
}

// ID returns the container's unique identifier.
func (c *Container) ID() kernel.UUID {
	return c.id
}

// Barcode returns the container's scannable label.
func (c *Container) Barcode() string {
	return c.barcode
}

// ProduceType returns the container's contents description.
func (c *Container) ProduceType() string {
	return c.produceType
}

// Quantity returns the packed amount in kilograms.
func (c *Container) Quantity() float64 {
	return c.quantity
}

// IsScanned reports whether the container has been scanned.
func (c *Container) IsScanned() bool {
	return c.scanned
}

// ScannedBy returns the actor of the first scan, or nil if unscanned.
func (c *Container) ScannedBy() *string {
	return c.scannedBy
}

// ScannedAt returns the time of the first scan, or nil if unscanned.
func (c *Container) ScannedAt() *time.Time {
	return c.scannedAt
}

// RecordScan marks the container scanned by the given actor at the given
// time. The first call wins; subsequent calls are no-ops and leave the
// original actor and timestamp untouched.
//
// Returns true if this call performed the scan, false if the container was
// already scanned.
func (c *Container) RecordScan(actor string, at time.Time) (bool, error) {
	if actor == "" {
		return false, errs.NewValueIsRequiredError("actor is required")
	}

	if c.scanned {
		return false, nil
	}

	c.scanned = true
	c.scannedBy = &actor
	c.scannedAt = &at
	return true, nil
}

func (c *Container) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Container) setBarcode(barcode string) error {
	if barcode == "" {
		return errs.NewValueIsRequiredError("barcode is required")
	}
	c.barcode = barcode
	return nil
}

func (c *Container) setProduceType(produceType string) error {
	if produceType == "" {
		return errs.NewValueIsRequiredError("produceType is required")
	}
	c.produceType = produceType
	return nil
}

func (c *Container) setQuantity(quantity float64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%v is not greater than 0", quantity),
		)
	}
	c.quantity = quantity
	return nil
}

// Validate ensures the Container was created through its constructor.
func (c *Container) Validate() error {
	if c == nil {
		return ErrContainerIsNotConstructed
	}
	return c.guard.Validate(ErrContainerIsNotConstructed)
}
