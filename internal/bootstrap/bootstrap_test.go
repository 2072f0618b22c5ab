package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/brewery-tracker-api/internal/bootstrap"
	"github.com/jhoicas/brewery-tracker-api/pkg/config"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

func TestOpenStore_Memoria(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "memory"}}

	store, err := bootstrap.OpenStore(context.Background(), cfg, logger.Nop())

	require.NoError(t, err)
	defer store.Close()
	assert.True(t, store.Health.CanConnect(context.Background()))
	assert.True(t, store.Health.CanQuery(context.Background()))
}

func TestNewServices_PoliticaDesconocida(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "memory"}}
	store, err := bootstrap.OpenStore(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)

	_, err = bootstrap.NewServices(store.TxRunner, config.BrewConfig{ConsumptionPolicy: "on_rack", ReorderTargetFactor: 1.5}, logger.Nop())
	assert.Error(t, err)

	svc, err := bootstrap.NewServices(store.TxRunner, config.BrewConfig{ReorderTargetFactor: 1.5}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, svc.Batches)
	assert.NotNil(t, svc.Products)
}
