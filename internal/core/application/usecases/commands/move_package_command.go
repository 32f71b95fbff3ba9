package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMovePackageCommandIsNotConstructed = errors.New(
	"MovePackageCommand must be created via NewMovePackageCommand constructor",
)

// MovePackageCommand represents a request to relocate a staged package to
// a specific destination slot.
type MovePackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	toSlotID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewMovePackageCommand creates a command to move a staged package.
func NewMovePackageCommand(packageID, toSlotID kernel.UUID) (MovePackageCommand, error) {
	command := MovePackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setPackageID(packageID),
		command.setToSlotID(toSlotID),
	); err != nil {
		return MovePackageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MovePackageCommand) Validate() error {
	return c.guard.Validate(ErrMovePackageCommandIsNotConstructed)
}

// PackageID returns the unique identifier of the package to move.
func (c MovePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

// ToSlotID returns the destination shelf slot.
func (c MovePackageCommand) ToSlotID() kernel.UUID {
	return c.toSlotID
}

func (c *MovePackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *MovePackageCommand) setToSlotID(toSlotID kernel.UUID) error {
	if err := toSlotID.Validate(); err != nil {
		return err
	}

	c.toSlotID = toSlotID
	return nil
}
