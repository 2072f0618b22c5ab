// Package bootstrap arma el almacenamiento y los casos de uso a partir de la configuración.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/application/brewing"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
	"github.com/jhoicas/brewery-tracker-api/internal/infrastructure/memory"
	"github.com/jhoicas/brewery-tracker-api/internal/infrastructure/postgres"
	"github.com/jhoicas/brewery-tracker-api/migrations"
	"github.com/jhoicas/brewery-tracker-api/pkg/config"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

// Store almacenamiento abierto.
type Store struct {
	TxRunner inventory.TxRunner
	Health   repository.HealthChecker
	Close    func()
}

// OpenStore abre PostgreSQL (aplicando migraciones si DB_MIGRATE) o el store en memoria.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	if cfg.Store.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.New()
		return &Store{TxRunner: s, Health: s, Close: func() {}}, nil
	}

	if cfg.DB.Migrate {
		if err := migrations.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &Store{
		TxRunner: postgres.NewTxRunner(pool, cfg.DB.QueryTimeout, log),
		Health:   postgres.NewHealthChecker(pool),
		Close:    pool.Close,
	}, nil
}

// Services casos de uso de la aplicación.
type Services struct {
	Catalog     *inventory.CatalogUseCase
	Ingredients *inventory.IngredientUseCase
	Ledger      *inventory.LedgerUseCase
	Recipes     *brewing.RecipeUseCase
	Batches     *brewing.BatchUseCase
	Products    *brewing.ProductUseCase
}

// NewServices construye los casos de uso sobre el TxRunner.
func NewServices(txRunner inventory.TxRunner, brew config.BrewConfig, log *logger.Logger) (*Services, error) {
	policy, err := brewing.ParseConsumptionPolicy(brew.ConsumptionPolicy)
	if err != nil {
		return nil, err
	}
	ledger := inventory.NewLedgerUseCase(txRunner, log, decimal.NewFromFloat(brew.ReorderTargetFactor))
	engine := brewing.NewConsumptionEngine(ledger, log)
	return &Services{
		Catalog:     inventory.NewCatalogUseCase(txRunner),
		Ingredients: inventory.NewIngredientUseCase(txRunner),
		Ledger:      ledger,
		Recipes:     brewing.NewRecipeUseCase(txRunner),
		Batches:     brewing.NewBatchUseCase(txRunner, engine, policy, log),
		Products:    brewing.NewProductUseCase(txRunner, log),
	}, nil
}
