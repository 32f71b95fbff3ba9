package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kgLineItem(t *testing.T, produceType string, quantityKg float64) packing.LineItem {
	t.Helper()
	item, err := packing.NewLineItem(produceType, packing.ModeKg, quantityKg, 0)
	require.NoError(t, err)
	return item
}

func TestNewRegisterOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	items := []packing.LineItem{kgLineItem(t, "tomato", 7.3)}
	cmd, err := commands.NewRegisterOrderCommand(id, items)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Len(t, cmd.LineItems(), 1)
}

func TestNewRegisterOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewRegisterOrderCommand(invalidID, []packing.LineItem{kgLineItem(t, "tomato", 1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewRegisterOrderCommand_NoLineItems(t *testing.T) {
	_, err := commands.NewRegisterOrderCommand(kernel.NewUUID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrLineItemsAreRequired)
}

func TestRegisterOrderCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.RegisterOrderCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRegisterOrderCommandIsNotConstructed)
}
