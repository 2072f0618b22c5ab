package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia del catálogo de ingredientes.
// GetByID/GetForUpdate devuelven (nil, nil) si no existe.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	// GetForUpdate bloquea la fila del ingrediente (SELECT FOR UPDATE): es el candado
	// exclusivo por ingrediente que serializa la asignación de lotes.
	GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error)
	List(ctx context.Context) ([]*entity.Ingredient, error)
	// UpdateUnitCost fija el costo nominal (el del lote más reciente).
	UpdateUnitCost(ctx context.Context, id string, unitCost decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	// HasReferences indica si hay entradas de libro o líneas de receta que lo referencian.
	HasReferences(ctx context.Context, id string) (bool, error)
}
