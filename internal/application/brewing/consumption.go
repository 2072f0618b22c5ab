package brewing

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/batch"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	domaininv "github.com/jhoicas/brewery-tracker-api/internal/domain/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

// ConsumptionPolicy momento del ciclo de vida en que un batch consume ingredientes.
type ConsumptionPolicy string

const (
	ConsumeOnFinish ConsumptionPolicy = "on_finish"
	ConsumeOnStart  ConsumptionPolicy = "on_start"
)

// ParseConsumptionPolicy vacío = on_finish.
func ParseConsumptionPolicy(s string) (ConsumptionPolicy, error) {
	switch ConsumptionPolicy(s) {
	case "", ConsumeOnFinish:
		return ConsumeOnFinish, nil
	case ConsumeOnStart:
		return ConsumeOnStart, nil
	}
	return "", fmt.Errorf("política de consumo desconocida %q", s)
}

// Consumes indica si un batch en el estado s ya debió consumir bajo esta política.
func (p ConsumptionPolicy) Consumes(s batch.State) bool {
	if p == ConsumeOnStart {
		return s == batch.StateInProgress || s == batch.StateFinished
	}
	return s == batch.StateFinished
}

// quantityScale decimales con los que se redondea la cantidad escalada por volumen.
const quantityScale = 4

// Requirement cantidad de un ingrediente que consume un batch.
type Requirement struct {
	IngredientID string
	Quantity     decimal.Decimal
}

// ConsumptionEngine traduce la receta de un batch a sustracciones del libro de inventario.
type ConsumptionEngine struct {
	ledger *inventory.LedgerUseCase
	log    *logger.Logger
}

// NewConsumptionEngine construye el motor de consumo sobre el libro de inventario.
func NewConsumptionEngine(ledger *inventory.LedgerUseCase, log *logger.Logger) *ConsumptionEngine {
	return &ConsumptionEngine{ledger: ledger, log: log.Component("consumption_engine")}
}

// Requirements escala cada línea de la receta por batch.Volume / recipe.Volume y agrupa
// por ingrediente. Resultado ordenado por IngredientID (orden de bloqueo estable).
func Requirements(recipe *entity.Recipe, batchVolume decimal.Decimal) ([]Requirement, error) {
	if !recipe.Volume.GreaterThan(decimal.Zero) || batchVolume.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	factor := batchVolume.Div(recipe.Volume)
	byID := make(map[string]decimal.Decimal)
	for _, line := range recipe.Ingredients {
		byID[line.IngredientID] = byID[line.IngredientID].Add(line.Quantity.Mul(factor))
	}
	reqs := make([]Requirement, 0, len(byID))
	for id, q := range byID {
		q = q.Round(quantityScale)
		if q.IsZero() {
			continue
		}
		reqs = append(reqs, Requirement{IngredientID: id, Quantity: q})
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].IngredientID < reqs[j].IngredientID })
	return reqs, nil
}

// ConsumeForBatch publica una sustracción por ingrediente de la receta, etiquetada con el batch.
// Todo o nada: primero bloquea y verifica todos los ingredientes; si alguno no alcanza devuelve
// *domain.ConsumptionShortageError con todos los faltantes y no escribe nada.
// Si el batch ya tiene sustracciones no vuelve a consumir.
func (e *ConsumptionEngine) ConsumeForBatch(ctx context.Context, repos repository.Repositories, b *entity.Batch) ([]*entity.IngredientInventorySubtraction, error) {
	posted, err := repos.Ledger.CountSubtractionsByBatch(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if posted > 0 {
		e.log.Warn().Str("batch_id", b.ID).Int("subtractions", posted).Msg("batch ya consumió ingredientes, se omite")
		return nil, nil
	}

	recipe, err := repos.Recipes.GetByID(ctx, b.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	reqs, err := Requirements(recipe, b.Volume)
	if err != nil {
		return nil, err
	}

	var shortages []domain.InsufficientInventoryError
	for _, r := range reqs {
		ing, err := repos.Ingredients.GetForUpdate(ctx, r.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, domain.ErrNotFound
		}
		lots, err := repos.Ledger.LockOpenLots(ctx, r.IngredientID)
		if err != nil {
			return nil, err
		}
		if onHand := domaininv.OnHand(lots); onHand.LessThan(r.Quantity) {
			shortages = append(shortages, domain.InsufficientInventoryError{
				IngredientID: r.IngredientID,
				Requested:    r.Quantity,
				OnHand:       onHand,
			})
		}
	}
	if len(shortages) > 0 {
		e.log.Warn().Str("batch_id", b.ID).Int("shortages", len(shortages)).Msg("consumo abortado por faltantes")
		return nil, &domain.ConsumptionShortageError{BatchID: b.ID, Shortages: shortages}
	}

	subs := make([]*entity.IngredientInventorySubtraction, 0, len(reqs))
	reason := fmt.Sprintf("brew batch %s", b.ID)
	for _, r := range reqs {
		sub, err := e.ledger.RecordConsumptionInTx(ctx, repos, r.IngredientID, r.Quantity, b.ID, reason)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	e.log.Info().Str("batch_id", b.ID).Int("ingredients", len(subs)).Msg("consumo de batch registrado")
	return subs, nil
}
