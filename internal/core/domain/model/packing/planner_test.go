package packing_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(t *testing.T) packing.Policy {
	t.Helper()
	policy, err := packing.NewPolicy(3, 6, map[string]float64{
		"tomato": 1.1,
		"grape":  0.95,
	})
	require.NoError(t, err)
	return policy
}

func kgItem(t *testing.T, produceType string, quantityKg float64) packing.LineItem {
	t.Helper()
	item, err := packing.NewLineItem(produceType, packing.ModeKg, quantityKg, 0)
	require.NoError(t, err)
	return item
}

func unitsItem(t *testing.T, produceType string, quantityKg float64, unitCount int) packing.LineItem {
	t.Helper()
	item, err := packing.NewLineItem(produceType, packing.ModeUnits, quantityKg, unitCount)
	require.NoError(t, err)
	return item
}

func pieceWeights(pieces []*packing.Piece) []float64 {
	weights := make([]float64, len(pieces))
	for i, piece := range pieces {
		weights[i] = piece.EstWeightKg()
	}
	return weights
}

func TestPlanner_Plan_KgItemSplitsWithRemainder(t *testing.T) {
	planner := packing.NewPlanner(testPolicy(t))
	orderID := kernel.NewUUID()

	pieces, err := planner.Plan(orderID, []packing.LineItem{kgItem(t, "tomato", 7.3)})

	require.NoError(t, err)
	require.Len(t, pieces, 3)
	assert.Equal(t, []float64{3, 3, 1.3}, pieceWeights(pieces))
	for i, piece := range pieces {
		assert.Equal(t, i, piece.Sequence())
		assert.Equal(t, "tomato", piece.ProduceType())
		assert.Equal(t, packing.ModeKg, piece.Mode())
		assert.Equal(t, orderID, piece.OrderID())
	}
}

func TestPlanner_Plan_KgItemExactMultipleHasNoZeroPiece(t *testing.T) {
	planner := packing.NewPlanner(testPolicy(t))

	pieces, err := planner.Plan(kernel.NewUUID(), []packing.LineItem{kgItem(t, "tomato", 6)})

	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3}, pieceWeights(pieces))
}

func TestPlanner_Plan_KgItemBelowMaxYieldsSinglePiece(t *testing.T) {
	planner := packing.NewPlanner(testPolicy(t))

	pieces, err := planner.Plan(kernel.NewUUID(), []packing.LineItem{kgItem(t, "grape", 1.25)})

	require.NoError(t, err)
	require.Len(t, pieces, 1)
	assert.Equal(t, 1.25, pieces[0].EstWeightKg())
	// 1.25 kg * 0.95 l/kg = 1.1875 -> 1.19 rounded half-up
	assert.Equal(t, 1.19, pieces[0].Liters())
}

func TestPlanner_Plan_KgItemDerivesLitersFromDensity(t *testing.T) {
	planner := packing.NewPlanner(testPolicy(t))

	pieces, err := planner.Plan(kernel.NewUUID(), []packing.LineItem{kgItem(t, "tomato", 3)})

	require.NoError(t, err)
	require.Len(t, pieces, 1)
	assert.Equal(t, 3.3, pieces[0].Liters())
}

func TestPlanner_Plan_KgItemWithoutDensityEntryFails(t *testing.T) {
	planner := packing.NewPlanner(testPolicy(t))

	pieces, err := planner.Plan(kernel.NewUUID(), []packing.LineItem{kgItem(t, "durian", 4)})

	require.ErrorIs(t, err, packing.ErrInvalidLineItem)
	assert.Nil(t, pieces)
}

func TestPlanner_Plan_UnitsItemGroupsByCap(t *testing.T) {
	planner := packing.NewPlanner(testPolicy(t))

	pieces, err := planner.Plan(kernel.NewUUID(), []packing.LineItem{unitsItem(t, "grape", 7, 14)})

	require.NoError(t, err)
	require.Len(t, pieces, 3)
	assert.Equal(t, 6, pieces[0].Units())
	assert.Equal(t, 6, pieces[1].Units())
	assert.Equal(t, 2, pieces[2].Units())
	assert.Equal(t, []float64{3, 3, 1}, pieceWeights(pieces))
}

func TestPlanner_Plan_SequenceIsGlobalAcrossLineItems(t *testing.T) {
	planner := packing.NewPlanner(testPolicy(t))

	pieces, err := planner.Plan(kernel.NewUUID(), []packing.LineItem{
		kgItem(t, "tomato", 4),
		unitsItem(t, "grape", 2, 8),
	})

	require.NoError(t, err)
	require.Len(t, pieces, 4)
	for i, piece := range pieces {
		assert.Equal(t, i, piece.Sequence())
	}
	assert.Equal(t, "tomato", pieces[0].ProduceType())
	assert.Equal(t, "grape", pieces[2].ProduceType())
}

func TestPlanner_Plan_IsDeterministic(t *testing.T) {
	planner := packing.NewPlanner(testPolicy(t))
	orderID := kernel.NewUUID()
	items := []packing.LineItem{
		kgItem(t, "tomato", 7.3),
		unitsItem(t, "grape", 5, 11),
	}

	first, err := planner.Plan(orderID, items)
	require.NoError(t, err)
	second, err := planner.Plan(orderID, items)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ProduceType(), second[i].ProduceType())
		assert.Equal(t, first[i].Mode(), second[i].Mode())
		assert.Equal(t, first[i].Units(), second[i].Units())
		assert.Equal(t, first[i].EstWeightKg(), second[i].EstWeightKg())
		assert.Equal(t, first[i].Liters(), second[i].Liters())
		assert.Equal(t, first[i].Sequence(), second[i].Sequence())
	}
}

func TestPlanner_Plan_RejectsWholeOrderOnInvalidItem(t *testing.T) {
	planner := packing.NewPlanner(testPolicy(t))

	pieces, err := planner.Plan(kernel.NewUUID(), []packing.LineItem{
		kgItem(t, "tomato", 3),
		kgItem(t, "durian", 1),
	})

	require.ErrorIs(t, err, packing.ErrInvalidLineItem)
	assert.Nil(t, pieces)
}

func TestNewLineItem_Validation(t *testing.T) {
	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := packing.NewLineItem("tomato", packing.ModeKg, 0, 0)
		require.ErrorIs(t, err, packing.ErrInvalidLineItem)
	})

	t.Run("rejects units mode without unit count", func(t *testing.T) {
		_, err := packing.NewLineItem("grape", packing.ModeUnits, 2, 0)
		require.ErrorIs(t, err, packing.ErrInvalidLineItem)
	})

	t.Run("rejects empty produce type", func(t *testing.T) {
		_, err := packing.NewLineItem("", packing.ModeKg, 2, 0)
		require.Error(t, err)
	})
}
