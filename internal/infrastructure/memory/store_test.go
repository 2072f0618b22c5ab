package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
	"github.com/jhoicas/brewery-tracker-api/internal/infrastructure/memory"
)

func seedMalt(t *testing.T, s *memory.Store) {
	t.Helper()
	err := s.Run(context.Background(), func(repos repository.Repositories) error {
		if err := repos.Catalog.UpsertUnitType(context.Background(), entity.UnitType{ID: "lb", Name: "lb"}); err != nil {
			return err
		}
		if err := repos.Ingredients.Create(context.Background(), &entity.Ingredient{ID: "malt", Name: "Base Malt", UnitTypeID: "lb"}); err != nil {
			return err
		}
		return repos.Ledger.CreateAddition(context.Background(), &entity.IngredientInventoryAddition{
			ID: "lot-1", IngredientID: "malt", Quantity: decimal.NewFromInt(10), QuantityRemaining: decimal.NewFromInt(10),
			OrderDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		})
	})
	require.NoError(t, err)
}

func TestRun_ErrorRestauraEstado(t *testing.T) {
	s := memory.New()
	seedMalt(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(repos repository.Repositories) error {
		require.NoError(t, repos.Ledger.UpdateRemaining(ctx, "lot-1", decimal.NewFromInt(10), decimal.NewFromInt(4)))
		require.NoError(t, repos.Ingredients.Delete(ctx, "malt"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_ = s.Run(ctx, func(repos repository.Repositories) error {
		ing, err := repos.Ingredients.GetByID(ctx, "malt")
		require.NoError(t, err)
		require.NotNil(t, ing, "el borrado se deshizo")
		assert.Equal(t, "lb", ing.UnitName)

		lots, err := repos.Ledger.ListOpenLots(ctx, "malt")
		require.NoError(t, err)
		require.Len(t, lots, 1)
		assert.True(t, lots[0].QuantityRemaining.Equal(decimal.NewFromInt(10)))
		return nil
	})
}

func TestRun_PanicoRestauraEstado(t *testing.T) {
	s := memory.New()
	seedMalt(t, s)
	ctx := context.Background()

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.Run(ctx, func(repos repository.Repositories) error {
			require.NoError(t, repos.Ledger.UpdateRemaining(ctx, "lot-1", decimal.NewFromInt(10), decimal.NewFromInt(3)))
			panic("boom")
		})
	})

	// El candado quedó libre y el lote conserva su remanente.
	err := s.Run(ctx, func(repos repository.Repositories) error {
		lots, err := repos.Ledger.ListOpenLots(ctx, "malt")
		require.NoError(t, err)
		require.Len(t, lots, 1)
		assert.True(t, lots[0].QuantityRemaining.Equal(decimal.NewFromInt(10)))
		return nil
	})
	assert.NoError(t, err)
}

func TestUpdateRemaining_CAS(t *testing.T) {
	s := memory.New()
	seedMalt(t, s)
	ctx := context.Background()

	err := s.Run(ctx, func(repos repository.Repositories) error {
		return repos.Ledger.UpdateRemaining(ctx, "lot-1", decimal.NewFromInt(9), decimal.NewFromInt(5))
	})
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
}

func TestRun_ContextoCancelado(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.Repositories) error { called = true; return nil })

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestIngredient_NoEncontradoEsNil(t *testing.T) {
	s := memory.New()
	_ = s.Run(context.Background(), func(repos repository.Repositories) error {
		ing, err := repos.Ingredients.GetByID(context.Background(), "nope")
		assert.NoError(t, err)
		assert.Nil(t, ing)
		return nil
	})
}
