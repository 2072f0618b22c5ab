package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

// CatalogUseCase unidades de medida y estilos de cerveza.
type CatalogUseCase struct {
	txRunner TxRunner
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(txRunner TxRunner) *CatalogUseCase {
	return &CatalogUseCase{txRunner: txRunner}
}

// PutUnitType crea o renombra una unidad.
func (uc *CatalogUseCase) PutUnitType(ctx context.Context, u entity.UnitType) error {
	u.ID, u.Name = strings.TrimSpace(u.ID), strings.TrimSpace(u.Name)
	if u.ID == "" || u.Name == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		return repos.Catalog.UpsertUnitType(ctx, u)
	})
}

// PutStyle crea o renombra un estilo.
func (uc *CatalogUseCase) PutStyle(ctx context.Context, s entity.Style) error {
	s.ID, s.Name = strings.TrimSpace(s.ID), strings.TrimSpace(s.Name)
	if s.ID == "" || s.Name == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		return repos.Catalog.UpsertStyle(ctx, s)
	})
}

func (uc *CatalogUseCase) UnitTypes(ctx context.Context) ([]entity.UnitType, error) {
	var out []entity.UnitType
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = repos.Catalog.ListUnitTypes(ctx)
		return err
	})
	return out, err
}

func (uc *CatalogUseCase) Styles(ctx context.Context) ([]entity.Style, error) {
	var out []entity.Style
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = repos.Catalog.ListStyles(ctx)
		return err
	})
	return out, err
}
