package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	log     *logger.Logger
}

// NewTxRunner construye el runner con el pool. timeout <= 0 no limita la duración de la tx.
func NewTxRunner(pool *pgxpool.Pool, timeout time.Duration, log *logger.Logger) *TxRunner {
	return &TxRunner{pool: pool, timeout: timeout, log: log.Component("tx_runner")}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un error transitorio (conexión, timeout, serialización, deadlock) se reintenta una sola vez;
// si persiste se devuelve como domain.ErrStoreUnavailable o domain.ErrConcurrencyConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	err := r.runOnce(ctx, fn)
	if err != nil && isRetryable(err) && ctx.Err() == nil {
		r.log.Warn().Err(err).Msg("error transitorio del almacenamiento, reintentando")
		err = r.runOnce(ctx, fn)
	}
	return surface(err)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Ingredients:  NewIngredientRepository(q),
		Ledger:       NewLedgerRepository(q),
		Recipes:      NewRecipeRepository(q),
		Batches:      NewBatchRepository(q),
		Products:     NewProductRepository(q),
		Transactions: NewInventoryTransactionRepository(q),
		Catalog:      NewCatalogRepository(q),
	}
}
