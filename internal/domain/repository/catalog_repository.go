package repository

import (
	"context"

	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// CatalogRepository catálogos de referencia (unidades de medida y estilos).
// Upsert por ID: volver a cargar el mismo catálogo no falla.
type CatalogRepository interface {
	UpsertUnitType(ctx context.Context, u entity.UnitType) error
	UpsertStyle(ctx context.Context, s entity.Style) error
	ListUnitTypes(ctx context.Context) ([]entity.UnitType, error)
	ListStyles(ctx context.Context) ([]entity.Style, error)
}
