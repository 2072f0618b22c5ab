package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// LotAllocation porción de un consumo asignada a un lote.
type LotAllocation struct {
	LotID        string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	NewRemaining decimal.Decimal
}

// OnHand suma de QuantityRemaining de todos los lotes.
func OnHand(lots []*entity.IngredientInventoryAddition) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.QuantityRemaining)
	}
	return total
}

// SortFIFO ordena los lotes por fecha de pedido ascendente (desempate: creación, ID).
func SortFIFO(lots []*entity.IngredientInventoryAddition) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		if !a.OrderDate.Equal(b.OrderDate) {
			return a.OrderDate.Before(b.OrderDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// AllocateFIFO reparte quantity entre los lotes abiertos, el más antiguo primero.
// No modifica los lotes: el llamador aplica NewRemaining. Si el total disponible
// no alcanza devuelve *domain.InsufficientInventoryError y ninguna asignación.
func AllocateFIFO(ingredientID string, lots []*entity.IngredientInventoryAddition, quantity decimal.Decimal) ([]LotAllocation, error) {
	if quantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if quantity.IsZero() {
		return nil, nil
	}
	onHand := OnHand(lots)
	if onHand.LessThan(quantity) {
		return nil, &domain.InsufficientInventoryError{IngredientID: ingredientID, Requested: quantity, OnHand: onHand}
	}

	ordered := make([]*entity.IngredientInventoryAddition, len(lots))
	copy(ordered, lots)
	SortFIFO(ordered)

	pending := quantity
	var allocs []LotAllocation
	for _, lot := range ordered {
		if pending.IsZero() {
			break
		}
		if !lot.IsOpen() {
			continue
		}
		take := decimal.Min(lot.QuantityRemaining, pending)
		allocs = append(allocs, LotAllocation{
			LotID:        lot.ID,
			Quantity:     take,
			UnitCost:     lot.UnitCost,
			NewRemaining: lot.QuantityRemaining.Sub(take),
		})
		pending = pending.Sub(take)
	}
	return allocs, nil
}
