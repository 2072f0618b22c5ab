package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/brewery-tracker-api/internal/application/brewing"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/application/seed"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/infrastructure/memory"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

func load(t *testing.T) (seed.Services, *seed.Result) {
	t.Helper()
	store := memory.New()
	log := logger.Nop()
	ledger := inventory.NewLedgerUseCase(store, log, decimal.Zero)
	svc := seed.Services{
		Catalog:     inventory.NewCatalogUseCase(store),
		Ingredients: inventory.NewIngredientUseCase(store),
		Ledger:      ledger,
		Recipes:     brewing.NewRecipeUseCase(store),
		Batches:     brewing.NewBatchUseCase(store, brewing.NewConsumptionEngine(ledger, log), brewing.ConsumeOnFinish, log),
	}
	res, err := seed.Load(context.Background(), svc, log)
	require.NoError(t, err)
	return svc, res
}

func TestLoad_AgendaYUltimoBrew(t *testing.T) {
	svc, res := load(t)
	ctx := context.Background()

	require.Len(t, res.Batches, 5)

	scheduled, err := svc.Batches.ListScheduled(ctx, seed.Today)
	require.NoError(t, err)
	require.Len(t, scheduled, 2)
	assert.Equal(t, "West Coast IPA", scheduled[0].RecipeName)
	assert.True(t, scheduled[0].ScheduledStartDate.Equal(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Oatmeal Stout", scheduled[1].RecipeName)

	last, err := svc.Recipes.LastBrewPerRecipe(ctx, seed.Today)
	require.NoError(t, err)
	assert.True(t, last[res.Recipes["West Coast IPA"]].Equal(time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, last[res.Recipes["Oatmeal Stout"]].Equal(time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC)))
}

func TestLoad_NoConsumeInventarioHistorico(t *testing.T) {
	svc, res := load(t)

	onHand, err := svc.Ledger.OnHandQuantity(context.Background(), res.Ingredients["Base Malt"])
	require.NoError(t, err)
	assert.True(t, onHand.Equal(decimal.NewFromInt(50)))

	alerts, err := svc.Ledger.ListBelowReorderPoint(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestLoad_SegundaCargaEsDuplicado(t *testing.T) {
	svc, _ := load(t)

	_, err := seed.Load(context.Background(), svc, logger.Nop())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
