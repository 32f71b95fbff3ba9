package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmArrivalCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewConfirmArrivalCommand("some-token-value")
	require.NoError(t, err)
	assert.Equal(t, "some-token-value", cmd.Token())
}

func TestNewConfirmArrivalCommand_EmptyToken(t *testing.T) {
	_, err := commands.NewConfirmArrivalCommand("")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrTokenIsRequired)
}

func TestConfirmArrivalCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.ConfirmArrivalCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrConfirmArrivalCommandIsNotConstructed)
}
