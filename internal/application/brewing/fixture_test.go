package brewing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/brewery-tracker-api/internal/application/brewing"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/infrastructure/memory"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: cervecería con malta y lúpulo, una IPA de 20 unidades de volumen
// ──────────────────────────────────────────────────────────────────────────────

var today = time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(y int, m time.Month, dd int) *time.Time {
	t := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	return &t
}

type brewery struct {
	ctx      context.Context
	store    *memory.Store
	ledger   *inventory.LedgerUseCase
	recipes  *brewing.RecipeUseCase
	batches  *brewing.BatchUseCase
	products *brewing.ProductUseCase

	malt, hops, recipeID string
}

func newBrewery(t *testing.T, policy brewing.ConsumptionPolicy) *brewery {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	log := logger.Nop()
	clock := func() time.Time { return today }

	catalog := inventory.NewCatalogUseCase(store)
	require.NoError(t, catalog.PutUnitType(ctx, entity.UnitType{ID: "lb", Name: "lb"}))
	require.NoError(t, catalog.PutUnitType(ctx, entity.UnitType{ID: "oz", Name: "oz"}))
	require.NoError(t, catalog.PutStyle(ctx, entity.Style{ID: "ipa", Name: "IPA"}))

	ledger := inventory.NewLedgerUseCase(store, log, decimal.Zero).WithClock(clock)
	engine := brewing.NewConsumptionEngine(ledger, log)
	b := &brewery{
		ctx:      ctx,
		store:    store,
		ledger:   ledger,
		recipes:  brewing.NewRecipeUseCase(store),
		batches:  brewing.NewBatchUseCase(store, engine, policy, log).WithClock(clock),
		products: brewing.NewProductUseCase(store, log),
	}

	ingredients := inventory.NewIngredientUseCase(store)
	malt, err := ingredients.Create(ctx, dto.CreateIngredientRequest{Name: "Base Malt", ReorderPoint: d("10"), UnitTypeID: "lb"})
	require.NoError(t, err)
	hops, err := ingredients.Create(ctx, dto.CreateIngredientRequest{Name: "Cascade Hops", ReorderPoint: d("8"), UnitTypeID: "oz"})
	require.NoError(t, err)
	b.malt, b.hops = malt.ID, hops.ID

	recipe, err := b.recipes.Create(ctx, dto.CreateRecipeRequest{
		Name: "West Coast IPA", Version: 7, StyleID: "ipa", Volume: d("20"),
		Ingredients: []dto.RecipeIngredientInput{
			{IngredientID: b.malt, Quantity: d("12"), UseDuring: "MASH"},
			{IngredientID: b.hops, Quantity: d("4"), UseDuring: "BOIL"},
		},
	})
	require.NoError(t, err)
	b.recipeID = recipe.ID
	return b
}

func (b *brewery) stock(t *testing.T, ingredientID, qty string) {
	t.Helper()
	_, err := b.ledger.RecordAddition(b.ctx, dto.RecordAdditionRequest{
		IngredientID: ingredientID, Quantity: d(qty), UnitCost: d("1"), OrderDate: *at(2024, 9, 1),
	})
	require.NoError(t, err)
}

func (b *brewery) onHand(t *testing.T, ingredientID string) decimal.Decimal {
	t.Helper()
	q, err := b.ledger.OnHandQuantity(b.ctx, ingredientID)
	require.NoError(t, err)
	return q
}

// startedBatch crea, programa e inicia un batch del volumen indicado.
func (b *brewery) startedBatch(t *testing.T, volume string) string {
	t.Helper()
	created, err := b.batches.Create(b.ctx, dto.CreateBatchRequest{RecipeID: b.recipeID, Volume: d(volume), ScheduledStartDate: at(2024, 11, 5)})
	require.NoError(t, err)
	_, err = b.batches.Start(b.ctx, created.ID, at(2024, 11, 5))
	require.NoError(t, err)
	return created.ID
}
