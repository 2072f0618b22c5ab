package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	domaininv "github.com/jhoicas/brewery-tracker-api/internal/domain/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

// DefaultReorderTargetFactor stock objetivo = punto de reorden * factor.
var DefaultReorderTargetFactor = decimal.NewFromFloat(1.5)

// LedgerUseCase libro de inventario de ingredientes: cantidad disponible derivada,
// alertas de reorden y consumo FIFO por lotes.
type LedgerUseCase struct {
	txRunner      TxRunner
	log           *logger.Logger
	reorderFactor decimal.Decimal
	now           func() time.Time
}

// NewLedgerUseCase construye el caso de uso. reorderFactor <= 0 usa DefaultReorderTargetFactor.
func NewLedgerUseCase(txRunner TxRunner, log *logger.Logger, reorderFactor decimal.Decimal) *LedgerUseCase {
	if !reorderFactor.GreaterThan(decimal.Zero) {
		reorderFactor = DefaultReorderTargetFactor
	}
	return &LedgerUseCase{
		txRunner:      txRunner,
		log:           log.Component("inventory_ledger"),
		reorderFactor: reorderFactor,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// OnHandQuantity suma de quantity_remaining de los lotes. Verifica además que coincida con
// Σadiciones - Σsustracciones; si diverge devuelve domain.ErrLedgerInconsistent.
func (uc *LedgerUseCase) OnHandQuantity(ctx context.Context, ingredientID string) (decimal.Decimal, error) {
	var onHand decimal.Decimal
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		ing, err := repos.Ingredients.GetByID(ctx, ingredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		onHand, err = uc.verifiedOnHand(ctx, repos, ingredientID)
		return err
	})
	return onHand, err
}

// IsBelowReorderPoint OnHandQuantity < ReorderPoint.
func (uc *LedgerUseCase) IsBelowReorderPoint(ctx context.Context, ingredientID string) (bool, error) {
	res, err := uc.OnHand(ctx, ingredientID)
	if err != nil {
		return false, err
	}
	return res.BelowReorder, nil
}

// OnHand devuelve cantidad disponible, punto de reorden y costo promedio de lotes abiertos.
func (uc *LedgerUseCase) OnHand(ctx context.Context, ingredientID string) (*dto.OnHandResponse, error) {
	var out *dto.OnHandResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		ing, err := repos.Ingredients.GetByID(ctx, ingredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		onHand, err := uc.verifiedOnHand(ctx, repos, ingredientID)
		if err != nil {
			return err
		}
		lots, err := repos.Ledger.ListOpenLots(ctx, ingredientID)
		if err != nil {
			return err
		}
		out = &dto.OnHandResponse{
			IngredientID:    ingredientID,
			OnHand:          onHand,
			ReorderPoint:    ing.ReorderPoint,
			BelowReorder:    onHand.LessThan(ing.ReorderPoint),
			AverageUnitCost: domaininv.WeightedAverageCost(lots),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *LedgerUseCase) verifiedOnHand(ctx context.Context, repos repository.Repositories, ingredientID string) (decimal.Decimal, error) {
	totals, err := repos.Ledger.Totals(ctx, ingredientID)
	if err != nil {
		return decimal.Zero, err
	}
	if !totals.Consistent() {
		uc.log.Error().
			Str("ingredient_id", ingredientID).
			Str("added", totals.Added.String()).
			Str("subtracted", totals.Subtracted.String()).
			Str("remaining", totals.Remaining.String()).
			Msg("libro de inventario inconsistente")
		return decimal.Zero, fmt.Errorf("%w: ingrediente %s remanente %s, esperado %s",
			domain.ErrLedgerInconsistent, ingredientID, totals.Remaining, totals.Added.Sub(totals.Subtracted))
	}
	return totals.Remaining, nil
}

// RecordAddition crea un lote nuevo con QuantityRemaining = Quantity y actualiza el costo nominal.
func (uc *LedgerUseCase) RecordAddition(ctx context.Context, in dto.RecordAdditionRequest) (*dto.AdditionDTO, error) {
	if in.IngredientID == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) || in.OrderDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var lot *entity.IngredientInventoryAddition
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		// Mismo candado que el consumo: una entrada no se intercala con una asignación en curso.
		ing, err := repos.Ingredients.GetForUpdate(ctx, in.IngredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		lot = &entity.IngredientInventoryAddition{
			ID:                    uuid.New().String(),
			IngredientID:          in.IngredientID,
			Quantity:              in.Quantity,
			QuantityRemaining:     in.Quantity,
			UnitCost:              in.UnitCost,
			OrderDate:             in.OrderDate,
			EstimatedDeliveryDate: in.EstimatedDeliveryDate,
			SupplierID:            in.SupplierID,
			CreatedAt:             uc.now(),
		}
		if err := repos.Ledger.CreateAddition(ctx, lot); err != nil {
			return err
		}
		return repos.Ingredients.UpdateUnitCost(ctx, in.IngredientID, in.UnitCost)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("ingredient_id", lot.IngredientID).
		Str("lot_id", lot.ID).
		Str("quantity", lot.Quantity.String()).
		Msg("lote registrado")
	return toAdditionDTO(lot), nil
}

// RecordConsumption asigna la cantidad a los lotes abiertos (FIFO por fecha de pedido) y crea
// una única sustracción por el total. Todo o nada: si no alcanza no se persiste nada.
// Cantidad cero es un no-op exitoso y devuelve (nil, nil).
func (uc *LedgerUseCase) RecordConsumption(ctx context.Context, in dto.RecordConsumptionRequest) (*dto.SubtractionDTO, error) {
	if in.IngredientID == "" || in.Quantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsZero() {
		return nil, nil
	}
	var sub *entity.IngredientInventorySubtraction
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if in.BatchID != "" {
			b, err := repos.Batches.GetByID(ctx, in.BatchID)
			if err != nil {
				return err
			}
			if b == nil {
				return domain.ErrNotFound
			}
		}
		var err error
		sub, err = uc.RecordConsumptionInTx(ctx, repos, in.IngredientID, in.Quantity, in.BatchID, in.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toSubtractionDTO(sub), nil
}

// RecordConsumptionInTx ejecuta el consumo con los repositorios del llamador (misma transacción).
// Bloquea el ingrediente antes de leer los lotes: dos consumos concurrentes del mismo
// ingrediente nunca leen el mismo remanente.
func (uc *LedgerUseCase) RecordConsumptionInTx(
	ctx context.Context,
	repos repository.Repositories,
	ingredientID string,
	quantity decimal.Decimal,
	batchID, reason string,
) (*entity.IngredientInventorySubtraction, error) {
	if quantity.IsZero() {
		return nil, nil
	}
	ing, err := repos.Ingredients.GetForUpdate(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	lots, err := repos.Ledger.LockOpenLots(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	allocs, err := domaininv.AllocateFIFO(ingredientID, lots, quantity)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.IngredientInventoryAddition, len(lots))
	for _, l := range lots {
		byID[l.ID] = l
	}
	for _, a := range allocs {
		if err := repos.Ledger.UpdateRemaining(ctx, a.LotID, byID[a.LotID].QuantityRemaining, a.NewRemaining); err != nil {
			return nil, err
		}
	}
	sub := &entity.IngredientInventorySubtraction{
		ID:              uuid.New().String(),
		IngredientID:    ingredientID,
		Quantity:        quantity,
		BatchID:         batchID,
		Reason:          reason,
		TransactionDate: uc.now(),
	}
	if err := repos.Ledger.CreateSubtraction(ctx, sub); err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("ingredient_id", ingredientID).
		Str("quantity", quantity.String()).
		Str("batch_id", batchID).
		Int("lots", len(allocs)).
		Str("cost", domaininv.AllocationCost(allocs).String()).
		Msg("consumo asignado")
	return sub, nil
}

// ListBelowReorderPoint ingredientes con disponible < punto de reorden, mayor déficit primero.
func (uc *LedgerUseCase) ListBelowReorderPoint(ctx context.Context) ([]dto.ReorderAlertDTO, error) {
	var alerts []dto.ReorderAlertDTO
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		alerts = alerts[:0]
		ingredients, err := repos.Ingredients.List(ctx)
		if err != nil {
			return err
		}
		for _, ing := range ingredients {
			lots, err := repos.Ledger.ListOpenLots(ctx, ing.ID)
			if err != nil {
				return err
			}
			onHand := domaininv.OnHand(lots)
			if !onHand.LessThan(ing.ReorderPoint) {
				continue
			}
			target := ing.ReorderPoint.Mul(uc.reorderFactor)
			suggested := target.Sub(onHand)
			if suggested.LessThan(decimal.Zero) {
				suggested = decimal.Zero
			}
			alerts = append(alerts, dto.ReorderAlertDTO{
				IngredientID:       ing.ID,
				Name:               ing.Name,
				Unit:               ing.UnitName,
				OnHand:             onHand,
				ReorderPoint:       ing.ReorderPoint,
				TargetStock:        target,
				SuggestedOrderQty:  suggested,
				UnitCost:           ing.UnitCost,
				EstimatedOrderCost: suggested.Mul(ing.UnitCost),
				AverageUnitCost:    domaininv.WeightedAverageCost(lots),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		defA := alerts[i].ReorderPoint.Sub(alerts[i].OnHand)
		defB := alerts[j].ReorderPoint.Sub(alerts[j].OnHand)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return alerts[i].Name < alerts[j].Name
	})
	if alerts == nil {
		alerts = []dto.ReorderAlertDTO{}
	}
	return alerts, nil
}

// LedgerHistory lotes y consumos de un ingrediente.
func (uc *LedgerUseCase) LedgerHistory(ctx context.Context, ingredientID string) (*dto.LedgerHistoryResponse, error) {
	var out *dto.LedgerHistoryResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		ing, err := repos.Ingredients.GetByID(ctx, ingredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		additions, err := repos.Ledger.ListAdditions(ctx, ingredientID)
		if err != nil {
			return err
		}
		subtractions, err := repos.Ledger.ListSubtractions(ctx, ingredientID)
		if err != nil {
			return err
		}
		out = &dto.LedgerHistoryResponse{
			IngredientID: ingredientID,
			OnHand:       domaininv.OnHand(additions),
			Additions:    make([]dto.AdditionDTO, 0, len(additions)),
			Subtractions: make([]dto.SubtractionDTO, 0, len(subtractions)),
		}
		for _, a := range additions {
			out.Additions = append(out.Additions, *toAdditionDTO(a))
		}
		for _, s := range subtractions {
			out.Subtractions = append(out.Subtractions, *toSubtractionDTO(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toAdditionDTO(a *entity.IngredientInventoryAddition) *dto.AdditionDTO {
	return &dto.AdditionDTO{
		ID:                    a.ID,
		IngredientID:          a.IngredientID,
		Quantity:              a.Quantity,
		QuantityRemaining:     a.QuantityRemaining,
		UnitCost:              a.UnitCost,
		OrderDate:             a.OrderDate,
		EstimatedDeliveryDate: a.EstimatedDeliveryDate,
		SupplierID:            a.SupplierID,
	}
}

func toSubtractionDTO(s *entity.IngredientInventorySubtraction) *dto.SubtractionDTO {
	return &dto.SubtractionDTO{
		ID:              s.ID,
		IngredientID:    s.IngredientID,
		Quantity:        s.Quantity,
		BatchID:         s.BatchID,
		Reason:          s.Reason,
		TransactionDate: s.TransactionDate,
	}
}
