package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngredientInventoryAddition lote de entrada de un ingrediente.
// Invariante: 0 <= QuantityRemaining <= Quantity.
type IngredientInventoryAddition struct {
	ID                    string
	IngredientID          string
	Quantity              decimal.Decimal
	QuantityRemaining     decimal.Decimal
	UnitCost              decimal.Decimal
	OrderDate             time.Time
	EstimatedDeliveryDate *time.Time
	SupplierID            string
	CreatedAt             time.Time
}

// IsOpen indica si el lote aún tiene cantidad por consumir.
func (a *IngredientInventoryAddition) IsOpen() bool {
	return a.QuantityRemaining.GreaterThan(decimal.Zero)
}

// IngredientInventorySubtraction evento de consumo; inmutable una vez creado.
// BatchID vacío = consumo ajeno a producción (merma, ajuste).
type IngredientInventorySubtraction struct {
	ID              string
	IngredientID    string
	Quantity        decimal.Decimal
	BatchID         string
	Reason          string
	TransactionDate time.Time
}

// LedgerTotals sumas del libro de un ingrediente usadas para verificar consistencia.
type LedgerTotals struct {
	Added      decimal.Decimal // sum(additions.quantity)
	Subtracted decimal.Decimal // sum(subtractions.quantity)
	Remaining  decimal.Decimal // sum(additions.quantity_remaining)
}

// Consistent verifica Remaining == Added - Subtracted.
func (t LedgerTotals) Consistent() bool {
	return t.Remaining.Equal(t.Added.Sub(t.Subtracted))
}
