package shipment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrContainerNotFound indicates the scanned barcode does not belong
	// to the shipment. The scan is rejected with no mutation.
	ErrContainerNotFound = errors.New("container not found in shipment")

	// ErrShipmentIsNotConstructed is returned when a Shipment was not
	// created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// ScanProgress reports how many of a shipment's containers have been
// scanned. Scanned never exceeds Total.
type ScanProgress struct {
	Total   int
	Scanned int
}

// Shipment is the aggregate root for outbound delivery: a logical grouping
// of barcoded containers moving together to a destination, tracked through
// the monotonic Building -> InTransit -> Arrived lifecycle.
//
// Invariants:
//   - Container barcodes are unique within the shipment
//   - The scanned count never exceeds the container count; rescanning is
//     a no-op, not an error
//   - At most one arrival token is valid at a time; minting replaces the
//     previous token
//   - Status never regresses; Arrived is reached only by consuming a
//     valid arrival token
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// orderID is the customer order the shipment fulfills
	orderID kernel.UUID

	// status is the current state in the shipment lifecycle
	status Status

	// containers are the barcoded units moving with the shipment
	containers []*Container

	// arrivalToken is the currently active token, nil before first mint
	arrivalToken *ArrivalToken

	// guard ensures the shipment was created via its constructor
	guard kernel.ConstructorGuard
}

// NewShipment creates a shipment in Building status from consolidated
// containers. At least one container is required and barcodes must be
// unique within the shipment.
func NewShipment(id, orderID kernel.UUID, containers []*Container) (*Shipment, error) {
	s := &Shipment{
		status: Building,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setContainers(containers),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistent storage,
// including its status and any persisted arrival token.
func RestoreShipment(
	id, orderID kernel.UUID,
	status Status,
	containers []*Container,
	arrivalToken *ArrivalToken,
) (*Shipment, error) {
	s, err := NewShipment(id, orderID, containers)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	s.status = status
	s.arrivalToken = arrivalToken
	return s, nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the customer order the shipment fulfills.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// Status returns the current status of the shipment.
func (s *Shipment) Status() Status {
	return s.status
}

// Containers returns the shipment's containers.
func (s *Shipment) Containers() []*Container {
	return s.containers
}

// ArrivalToken returns the currently active arrival token,
// or nil if none has been minted.
func (s *Shipment) ArrivalToken() *ArrivalToken {
	return s.arrivalToken
}

// ContainerByBarcode finds the container with the given barcode.
// Returns ErrContainerNotFound if the barcode does not belong to the
// shipment.
func (s *Shipment) ContainerByBarcode(barcode string) (*Container, error) {
	if barcode == "" {
		return nil, errs.NewValueIsRequiredError("barcode is required")
	}

	for _, container := range s.containers {
		if container.Barcode() == barcode {
			return container, nil
		}
	}

	return nil, ErrContainerNotFound
}

// Dispatch transitions the shipment from Building to InTransit.
// Returns ErrInvalidShipmentState for any other starting status.
func (s *Shipment) Dispatch() error {
	newStatus, err := s.status.Dispatch()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// RecordScan marks the container with the given barcode as scanned by the
// actor and returns the updated progress. Rescanning an already scanned
// container returns the current progress unchanged; it is deliberately not
// an error, because drivers rescan by accident.
//
// Returns ErrContainerNotFound if the barcode does not belong to the
// shipment, and ErrInvalidShipmentState if the shipment is still Building.
func (s *Shipment) RecordScan(barcode, actor string, at time.Time) (ScanProgress, error) {
	if s.status != InTransit {
		return ScanProgress{}, ErrInvalidShipmentState
	}

	container, err := s.ContainerByBarcode(barcode)
	if err != nil {
		return ScanProgress{}, err
	}

	if _, err = container.RecordScan(actor, at); err != nil {
		return ScanProgress{}, err
	}

	return s.Progress(), nil
}

// Progress returns the shipment's current scan counts.
func (s *Shipment) Progress() ScanProgress {
	progress := ScanProgress{Total: len(s.containers)}
	for _, container := range s.containers {
		if container.IsScanned() {
			progress.Scanned++
		}
	}
	return progress
}

// IsScanComplete reports whether every container has been scanned.
// This is a pure query; completing the scan does not itself transition
// the shipment.
func (s *Shipment) IsScanComplete() bool {
	progress := s.Progress()
	return progress.Scanned == progress.Total
}

// MintArrivalToken mints a fresh arrival token at the given time with the
// given lifetime, replacing and thereby invalidating any previously active
// token. Only InTransit shipments can mint; Building shipments have
// nothing to confirm yet and Arrived shipments never need another token.
func (s *Shipment) MintArrivalToken(now time.Time, ttl time.Duration) (*ArrivalToken, error) {
	if s.status != InTransit {
		return nil, ErrInvalidShipmentState
	}

	token, err := NewArrivalToken(now, ttl)
	if err != nil {
		return nil, err
	}

	s.arrivalToken = token
	return token, nil
}

// ConsumeArrivalToken redeems the presented token value and transitions
// the shipment to Arrived.
//
// Check order is fixed: unknown value first (ErrTokenNotFound), then
// expiry (ErrTokenExpired), then single-use (ErrTokenAlreadyUsed), then
// shipment state (ErrInvalidShipmentState). A value invalidated by a
// re-mint no longer matches and reports ErrTokenNotFound.
func (s *Shipment) ConsumeArrivalToken(value string, now time.Time) error {
	if s.arrivalToken == nil || s.arrivalToken.Value() != value {
		return ErrTokenNotFound
	}

	if s.arrivalToken.IsExpired(now) {
		return ErrTokenExpired
	}
	if s.arrivalToken.IsUsed() {
		return ErrTokenAlreadyUsed
	}

	newStatus, err := s.status.Arrive()
	if err != nil {
		return err
	}

	if err = s.arrivalToken.Consume(now); err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setContainers(containers []*Container) error {
	if len(containers) == 0 {
		return errs.NewValueIsRequiredError("containers are required")
	}

	seen := make(map[string]struct{}, len(containers))
	copied := make([]*Container, len(containers))
	for i, container := range containers {
		if err := container.Validate(); err != nil {
			return err
		}
		if _, duplicate := seen[container.Barcode()]; duplicate {
			return errs.NewValueIsInvalidError("barcode " + container.Barcode() + " is duplicated within shipment")
		}
		seen[container.Barcode()] = struct{}{}
		copied[i] = container
	}

	s.containers = copied
	return nil
}

// Validate ensures the Shipment was created through its constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}
