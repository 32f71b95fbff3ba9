package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrStagePackageCommandIsNotConstructed = errors.New(
		"StagePackageCommand must be created via NewStagePackageCommand constructor",
	)
	ErrShiftNameIsRequired = errors.New("shift name is required")
)

// StagePackageCommand represents a request to assemble a packed order's
// pieces into a package and place it on a free shelf slot of the given
// logistic center.
type StagePackageCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	logisticCenterID kernel.UUID
	shiftName        string

	guard guard.ConstructorGuard
}

// NewStagePackageCommand creates a command to stage a packed order.
// Validates that both identifiers are valid and the shift name is not empty.
func NewStagePackageCommand(orderID, logisticCenterID kernel.UUID, shiftName string) (StagePackageCommand, error) {
	command := StagePackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setLogisticCenterID(logisticCenterID),
		command.setShiftName(shiftName),
	); err != nil {
		return StagePackageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StagePackageCommand) Validate() error {
	return c.guard.Validate(ErrStagePackageCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to stage.
func (c StagePackageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LogisticCenterID returns the warehouse whose slots are eligible.
func (c StagePackageCommand) LogisticCenterID() kernel.UUID {
	return c.logisticCenterID
}

// ShiftName returns the name of the shift performing the staging.
func (c StagePackageCommand) ShiftName() string {
	return c.shiftName
}

func (c *StagePackageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StagePackageCommand) setLogisticCenterID(logisticCenterID kernel.UUID) error {
	if err := logisticCenterID.Validate(); err != nil {
		return err
	}

	c.logisticCenterID = logisticCenterID
	return nil
}

func (c *StagePackageCommand) setShiftName(shiftName string) error {
	if shiftName == "" {
		return ErrShiftNameIsRequired
	}

	c.shiftName = shiftName
	return nil
}
