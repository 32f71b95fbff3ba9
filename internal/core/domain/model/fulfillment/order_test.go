package fulfillment_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPlacedOrder(t *testing.T) *fulfillment.Order {
	t.Helper()
	item, err := packing.NewLineItem("tomato", packing.ModeKg, 5, 0)
	require.NoError(t, err)
	order, err := fulfillment.NewOrder(kernel.NewUUID(), []packing.LineItem{item})
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("should create placed order", func(t *testing.T) {
		order := createPlacedOrder(t)

		assert.Equal(t, fulfillment.Placed, order.Status())
		assert.Len(t, order.LineItems(), 1)
		require.NoError(t, order.Validate())
	})

	t.Run("should reject empty line items", func(t *testing.T) {
		order, err := fulfillment.NewOrder(kernel.NewUUID(), nil)

		require.Error(t, err)
		assert.Nil(t, order)
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var order fulfillment.Order
		require.ErrorIs(t, order.Validate(), fulfillment.ErrOrderIsNotConstructed)
	})
}

func TestOrder_PipelineTransitions(t *testing.T) {
	t.Run("full pipeline walks in order", func(t *testing.T) {
		order := createPlacedOrder(t)

		require.NoError(t, order.MarkPacked())
		assert.Equal(t, fulfillment.Packed, order.Status())

		require.NoError(t, order.MarkStaged())
		assert.Equal(t, fulfillment.Staged, order.Status())

		require.NoError(t, order.MarkShipped())
		assert.Equal(t, fulfillment.Shipped, order.Status())

		require.NoError(t, order.MarkArrived())
		assert.Equal(t, fulfillment.Arrived, order.Status())
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		order := createPlacedOrder(t)

		require.Error(t, order.MarkStaged())
		require.Error(t, order.MarkShipped())
		require.Error(t, order.MarkArrived())
		assert.Equal(t, fulfillment.Placed, order.Status())
	})

	t.Run("no regression from a later status", func(t *testing.T) {
		order := createPlacedOrder(t)
		require.NoError(t, order.MarkPacked())
		require.NoError(t, order.MarkStaged())

		require.Error(t, order.MarkPacked())
		assert.Equal(t, fulfillment.Staged, order.Status())
	})

	t.Run("arrived is terminal", func(t *testing.T) {
		order := createPlacedOrder(t)
		require.NoError(t, order.MarkPacked())
		require.NoError(t, order.MarkStaged())
		require.NoError(t, order.MarkShipped())
		require.NoError(t, order.MarkArrived())

		require.Error(t, order.MarkArrived())
		assert.Equal(t, fulfillment.Arrived, order.Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	item, err := packing.NewLineItem("grape", packing.ModeUnits, 2, 8)
	require.NoError(t, err)

	t.Run("restores persisted status", func(t *testing.T) {
		order, err := fulfillment.RestoreOrder(kernel.NewUUID(), fulfillment.Shipped, []packing.LineItem{item})

		require.NoError(t, err)
		assert.Equal(t, fulfillment.Shipped, order.Status())
		require.NoError(t, order.MarkArrived())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		order, err := fulfillment.RestoreOrder(kernel.NewUUID(), fulfillment.StatusUnknown, []packing.LineItem{item})

		require.Error(t, err)
		assert.Nil(t, order)
	})
}
