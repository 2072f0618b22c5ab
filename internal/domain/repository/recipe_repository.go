package repository

import (
	"context"

	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia para recetas y sus líneas.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	// GetByID incluye las líneas de ingredientes; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	// Update reemplaza datos y líneas si RowVersion coincide (concurrencia optimista)
	// e incrementa recipe.RowVersion; si no coincide devuelve domain.ErrConcurrencyConflict.
	Update(ctx context.Context, recipe *entity.Recipe) error
	Delete(ctx context.Context, id string) error
	// List sin líneas de ingredientes, ordenadas por nombre.
	List(ctx context.Context) ([]*entity.Recipe, error)
}
