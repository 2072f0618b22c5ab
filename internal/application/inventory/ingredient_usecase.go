package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	domaininv "github.com/jhoicas/brewery-tracker-api/internal/domain/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

// IngredientUseCase casos de uso del catálogo de ingredientes.
type IngredientUseCase struct {
	txRunner TxRunner
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(txRunner TxRunner) *IngredientUseCase {
	return &IngredientUseCase{txRunner: txRunner}
}

// Create registra un ingrediente sin existencias.
func (uc *IngredientUseCase) Create(ctx context.Context, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.UnitTypeID == "" || in.ReorderPoint.LessThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	ing := &entity.Ingredient{
		ID:           uuid.New().String(),
		Name:         name,
		ReorderPoint: in.ReorderPoint,
		UnitTypeID:   in.UnitTypeID,
		UnitCost:     in.UnitCost,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		return repos.Ingredients.Create(ctx, ing)
	})
	if err != nil {
		return nil, err
	}
	return toIngredientResponse(ing, decimal.Zero), nil
}

// GetByID devuelve el ingrediente con su disponible derivado de los lotes.
func (uc *IngredientUseCase) GetByID(ctx context.Context, id string) (*dto.IngredientResponse, error) {
	var out *dto.IngredientResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		ing, err := repos.Ingredients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		lots, err := repos.Ledger.ListOpenLots(ctx, id)
		if err != nil {
			return err
		}
		out = toIngredientResponse(ing, domaininv.OnHand(lots))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List todos los ingredientes con su disponible.
func (uc *IngredientUseCase) List(ctx context.Context) ([]dto.IngredientResponse, error) {
	var out []dto.IngredientResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		list, err := repos.Ingredients.List(ctx)
		if err != nil {
			return err
		}
		out = make([]dto.IngredientResponse, 0, len(list))
		for _, ing := range list {
			lots, err := repos.Ledger.ListOpenLots(ctx, ing.ID)
			if err != nil {
				return err
			}
			out = append(out, *toIngredientResponse(ing, domaininv.OnHand(lots)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un ingrediente sin entradas de libro ni líneas de receta;
// si las tiene devuelve domain.ErrReferentialConflict.
func (uc *IngredientUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		ing, err := repos.Ingredients.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		referenced, err := repos.Ingredients.HasReferences(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return domain.ErrReferentialConflict
		}
		return repos.Ingredients.Delete(ctx, id)
	})
}

func toIngredientResponse(ing *entity.Ingredient, onHand decimal.Decimal) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:           ing.ID,
		Name:         ing.Name,
		ReorderPoint: ing.ReorderPoint,
		UnitTypeID:   ing.UnitTypeID,
		Unit:         ing.UnitName,
		UnitCost:     ing.UnitCost,
		OnHand:       onHand,
		BelowReorder: onHand.LessThan(ing.ReorderPoint),
		Notes:        ing.Notes,
	}
}
