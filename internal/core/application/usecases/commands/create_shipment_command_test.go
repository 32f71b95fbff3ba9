package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateShipmentCommand_ValidInput(t *testing.T) {
	shipmentID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	containers := []commands.ContainerInput{{Barcode: "BC-1", ProduceType: "tomato", Quantity: 3.0}}

	cmd, err := commands.NewCreateShipmentCommand(shipmentID, orderID, containers)
	require.NoError(t, err)
	assert.Equal(t, shipmentID, cmd.ShipmentID())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Len(t, cmd.Containers(), 1)
}

func TestNewCreateShipmentCommand_NoContainers(t *testing.T) {
	_, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrContainersAreRequired)
}

func TestCreateShipmentCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.CreateShipmentCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateShipmentCommandIsNotConstructed)
}

func TestNewDispatchShipmentCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewDispatchShipmentCommand(id)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.ShipmentID())
}

func TestDispatchShipmentCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.DispatchShipmentCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrDispatchShipmentCommandIsNotConstructed)
}

func TestNewMintArrivalTokenCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewMintArrivalTokenCommand(id)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.ShipmentID())
}

func TestMintArrivalTokenCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.MintArrivalTokenCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrMintArrivalTokenCommandIsNotConstructed)
}

func TestNewMovePackageCommand_ValidInput(t *testing.T) {
	packageID := kernel.NewUUID()
	toSlotID := kernel.NewUUID()
	cmd, err := commands.NewMovePackageCommand(packageID, toSlotID)
	require.NoError(t, err)
	assert.Equal(t, packageID, cmd.PackageID())
	assert.Equal(t, toSlotID, cmd.ToSlotID())
}

func TestNewUnstagePackageCommand_ValidInput(t *testing.T) {
	packageID := kernel.NewUUID()
	cmd, err := commands.NewUnstagePackageCommand(packageID)
	require.NoError(t, err)
	assert.Equal(t, packageID, cmd.PackageID())
}
