package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func lot(id string, remaining, cost string, ordered time.Time) *entity.IngredientInventoryAddition {
	return &entity.IngredientInventoryAddition{
		ID:                id,
		IngredientID:      "malt",
		Quantity:          d(remaining),
		QuantityRemaining: d(remaining),
		UnitCost:          d(cost),
		OrderDate:         ordered,
		CreatedAt:         ordered,
	}
}

var (
	sep1 = time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	oct1 = time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
)

func TestAllocateFIFO_ConsumeElLoteMasAntiguoPrimero(t *testing.T) {
	// El lote nuevo va primero en el slice: el orden lo decide la fecha de pedido.
	lots := []*entity.IngredientInventoryAddition{lot("b", "30", "2.00", oct1), lot("a", "20", "1.00", sep1)}

	allocs, err := inventory.AllocateFIFO("malt", lots, d("25"))
	require.NoError(t, err)
	require.Len(t, allocs, 2)

	assert.Equal(t, "a", allocs[0].LotID)
	assert.True(t, allocs[0].Quantity.Equal(d("20")))
	assert.True(t, allocs[0].NewRemaining.IsZero())

	assert.Equal(t, "b", allocs[1].LotID)
	assert.True(t, allocs[1].Quantity.Equal(d("5")))
	assert.True(t, allocs[1].NewRemaining.Equal(d("25")))

	assert.True(t, inventory.AllocationCost(allocs).Equal(d("30")), "20*1 + 5*2")
	// Los lotes de entrada no se tocan.
	assert.True(t, lots[1].QuantityRemaining.Equal(d("20")))
}

func TestAllocateFIFO_Insuficiente(t *testing.T) {
	lots := []*entity.IngredientInventoryAddition{lot("a", "10", "1", sep1), lot("b", "5", "1", oct1)}

	allocs, err := inventory.AllocateFIFO("malt", lots, d("15.5"))
	require.Error(t, err)
	assert.Nil(t, allocs)
	assert.True(t, errors.Is(err, domain.ErrInsufficientInventory))

	var detail *domain.InsufficientInventoryError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "malt", detail.IngredientID)
	assert.True(t, detail.OnHand.Equal(d("15")))
	assert.True(t, detail.Shortfall().Equal(d("0.5")))
}

func TestAllocateFIFO_CeroYNegativo(t *testing.T) {
	lots := []*entity.IngredientInventoryAddition{lot("a", "10", "1", sep1)}

	allocs, err := inventory.AllocateFIFO("malt", lots, decimal.Zero)
	require.NoError(t, err)
	assert.Empty(t, allocs)

	_, err = inventory.AllocateFIFO("malt", lots, d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllocateFIFO_ExactoAgotaTodo(t *testing.T) {
	lots := []*entity.IngredientInventoryAddition{lot("a", "10", "1", sep1), lot("b", "5", "1", oct1)}

	allocs, err := inventory.AllocateFIFO("malt", lots, d("15"))
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	for _, a := range allocs {
		assert.True(t, a.NewRemaining.IsZero())
	}
}

func TestAllocateFIFO_OmiteLotesCerrados(t *testing.T) {
	closed := lot("a", "0", "9", sep1)
	lots := []*entity.IngredientInventoryAddition{closed, lot("b", "5", "1", oct1)}

	allocs, err := inventory.AllocateFIFO("malt", lots, d("3"))
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, "b", allocs[0].LotID)
}

func TestSortFIFO_DesempatePorCreacionEId(t *testing.T) {
	x := lot("x", "1", "1", sep1)
	y := lot("y", "1", "1", sep1)
	w := lot("w", "1", "1", sep1)
	w.CreatedAt = sep1.Add(time.Hour)
	lots := []*entity.IngredientInventoryAddition{w, y, x}

	inventory.SortFIFO(lots)

	assert.Equal(t, []string{"x", "y", "w"}, []string{lots[0].ID, lots[1].ID, lots[2].ID})
}

func TestWeightedAverageCost(t *testing.T) {
	lots := []*entity.IngredientInventoryAddition{
		lot("a", "10", "1.00", sep1),
		lot("b", "30", "2.00", oct1),
		lot("c", "0", "99", oct1),
	}
	// (10*1 + 30*2) / 40 = 1.75
	assert.True(t, inventory.WeightedAverageCost(lots).Equal(d("1.75")))
	assert.True(t, inventory.WeightedAverageCost(nil).IsZero())
	assert.True(t, inventory.OnHand(lots).Equal(d("40")))
}
