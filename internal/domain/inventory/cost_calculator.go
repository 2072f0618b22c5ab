package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// WeightedAverageCost costo promedio ponderado de lo que queda en los lotes abiertos.
// Costo = Σ(QuantityRemaining * UnitCost) / Σ(QuantityRemaining)
func WeightedAverageCost(lots []*entity.IngredientInventoryAddition) decimal.Decimal {
	qty := decimal.Zero
	num := decimal.Zero
	for _, l := range lots {
		if !l.IsOpen() {
			continue
		}
		qty = qty.Add(l.QuantityRemaining)
		num = num.Add(l.QuantityRemaining.Mul(l.UnitCost))
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return num.Div(qty)
}

// AllocationCost costo real de un consumo según los lotes de los que se tomó.
func AllocationCost(allocs []LotAllocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.Quantity.Mul(a.UnitCost))
	}
	return total
}
