package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateShelfSlotCommandIsNotConstructed = errors.New(
	"CreateShelfSlotCommand must be created via NewCreateShelfSlotCommand constructor",
)

// CreateShelfSlotCommand represents a command to register a new shelf slot
// in a logistic center's staging area.
type CreateShelfSlotCommand struct { //nolint:recvcheck //using for validation
	logisticCenterID kernel.UUID
	zone             string
	code             string

	guard guard.ConstructorGuard
}

// NewCreateShelfSlotCommand creates a new validated command instance.
func NewCreateShelfSlotCommand(logisticCenterID kernel.UUID, zone, code string) (CreateShelfSlotCommand, error) {
	command := CreateShelfSlotCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setLogisticCenterID(logisticCenterID),
		command.setZone(zone),
		command.setCode(code),
	); err != nil {
		return CreateShelfSlotCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShelfSlotCommand) Validate() error {
	return c.guard.Validate(ErrCreateShelfSlotCommandIsNotConstructed)
}

// LogisticCenterID returns the warehouse the slot belongs to.
func (c CreateShelfSlotCommand) LogisticCenterID() kernel.UUID {
	return c.logisticCenterID
}

// Zone returns the staging zone of the slot.
func (c CreateShelfSlotCommand) Zone() string {
	return c.zone
}

// Code returns the slot code within its zone.
func (c CreateShelfSlotCommand) Code() string {
	return c.code
}

func (c *CreateShelfSlotCommand) setLogisticCenterID(logisticCenterID kernel.UUID) error {
	if err := logisticCenterID.Validate(); err != nil {
		return err
	}
	c.logisticCenterID = logisticCenterID
	return nil
}

func (c *CreateShelfSlotCommand) setZone(zone string) error {
	if zone == "" {
		return errs.NewValueIsRequiredError("zone is required")
	}
	c.zone = zone
	return nil
}

func (c *CreateShelfSlotCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code is required")
	}
	c.code = code
	return nil
}
