package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrConfirmArrivalCommandIsNotConstructed = errors.New(
		"ConfirmArrivalCommand must be created via NewConfirmArrivalCommand constructor",
	)
	ErrTokenIsRequired = errors.New("token is required")
)

// ConfirmArrivalCommand represents an arrival confirmation presented
// through a token link. The token alone identifies the shipment.
type ConfirmArrivalCommand struct { //nolint:recvcheck //using for validation
	token string

	guard guard.ConstructorGuard
}

// NewConfirmArrivalCommand creates a command to confirm an arrival.
func NewConfirmArrivalCommand(token string) (ConfirmArrivalCommand, error) {
	command := ConfirmArrivalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setToken(token); err != nil {
		return ConfirmArrivalCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmArrivalCommand) Validate() error {
	return c.guard.Validate(ErrConfirmArrivalCommandIsNotConstructed)
}

// Token returns the presented arrival token value.
func (c ConfirmArrivalCommand) Token() string {
	return c.token
}

func (c *ConfirmArrivalCommand) setToken(token string) error {
	if token == "" {
		return ErrTokenIsRequired
	}

	c.token = token
	return nil
}
