package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUnstagePackageCommandIsNotConstructed = errors.New(
	"UnstagePackageCommand must be created via NewUnstagePackageCommand constructor",
)

// UnstagePackageCommand represents a request to release a staged package
// from its shelf slot, freeing the slot for other packages.
type UnstagePackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnstagePackageCommand creates a command to release a staged package.
func NewUnstagePackageCommand(packageID kernel.UUID) (UnstagePackageCommand, error) {
	command := UnstagePackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setPackageID(packageID); err != nil {
		return UnstagePackageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UnstagePackageCommand) Validate() error {
	return c.guard.Validate(ErrUnstagePackageCommandIsNotConstructed)
}

// PackageID returns the unique identifier of the package to release.
func (c UnstagePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

func (c *UnstagePackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}
