package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

var _ repository.HealthChecker = (*HealthChecker)(nil)

const healthTimeout = 2 * time.Second

// HealthChecker probes de conectividad para el endpoint de readiness.
type HealthChecker struct {
	pool *pgxpool.Pool
}

// NewHealthChecker construye el checker.
func NewHealthChecker(pool *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{pool: pool}
}

// CanConnect ping al servidor.
func (h *HealthChecker) CanConnect(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	return h.pool.Ping(ctx) == nil
}

// CanQuery ejecuta una consulta trivial sobre el esquema.
func (h *HealthChecker) CanQuery(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	var n int
	return h.pool.QueryRow(ctx, `SELECT count(*) FROM recipes`).Scan(&n) == nil
}
