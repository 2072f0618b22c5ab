package repository

import (
	"context"

	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para batches.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// GetForUpdate bloquea el batch: dos transiciones sobre el mismo batch se serializan.
	GetForUpdate(ctx context.Context, id string) (*entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	// Delete elimina el batch junto con sus productos y transacciones de auditoría.
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*entity.Batch, error)
	ListByRecipe(ctx context.Context, recipeID string) ([]*entity.Batch, error)
	ListWithRecipe(ctx context.Context) ([]*entity.BatchWithRecipe, error)
	CountByRecipe(ctx context.Context, recipeID string) (int, error)
}
