package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// LedgerRepository define el puerto del libro de inventario (lotes de entrada y consumos).
type LedgerRepository interface {
	CreateAddition(ctx context.Context, addition *entity.IngredientInventoryAddition) error
	ListAdditions(ctx context.Context, ingredientID string) ([]*entity.IngredientInventoryAddition, error)
	// ListOpenLots lotes con QuantityRemaining > 0, más antiguo primero. Sin bloqueo.
	ListOpenLots(ctx context.Context, ingredientID string) ([]*entity.IngredientInventoryAddition, error)
	// LockOpenLots igual que ListOpenLots pero bloquea los lotes hasta el fin de la tx.
	// Reservado a la asignación de consumos.
	LockOpenLots(ctx context.Context, ingredientID string) ([]*entity.IngredientInventoryAddition, error)
	// UpdateRemaining compara-y-asigna: falla con domain.ErrConcurrencyConflict si el
	// remanente almacenado ya no es expected.
	UpdateRemaining(ctx context.Context, lotID string, expected, remaining decimal.Decimal) error

	CreateSubtraction(ctx context.Context, subtraction *entity.IngredientInventorySubtraction) error
	ListSubtractions(ctx context.Context, ingredientID string) ([]*entity.IngredientInventorySubtraction, error)
	CountSubtractionsByBatch(ctx context.Context, batchID string) (int, error)

	Totals(ctx context.Context, ingredientID string) (entity.LedgerTotals, error)
}
