package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo libro de inventario (ingredient_inventory_additions / _subtractions) sobre PostgreSQL.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// CreateAddition inserta un lote.
func (r *LedgerRepo) CreateAddition(ctx context.Context, a *entity.IngredientInventoryAddition) error {
	query := `
		INSERT INTO ingredient_inventory_additions
			(id, ingredient_id, quantity, quantity_remaining, unit_cost, order_date, estimated_delivery_date, supplier_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, a.ID, a.IngredientID, a.Quantity, a.QuantityRemaining, a.UnitCost,
		a.OrderDate, a.EstimatedDeliveryDate, nullString(a.SupplierID), a.CreatedAt)
	return translateWrite("insert addition", err)
}

const additionColumns = `
	id, ingredient_id, quantity, quantity_remaining, unit_cost, order_date, estimated_delivery_date, supplier_id, created_at`

func (r *LedgerRepo) listAdditions(ctx context.Context, query string, ingredientID string) ([]*entity.IngredientInventoryAddition, error) {
	rows, err := r.q.Query(ctx, query, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list additions: %w", err)
	}
	defer rows.Close()
	var list []*entity.IngredientInventoryAddition
	for rows.Next() {
		var a entity.IngredientInventoryAddition
		var supplier *string
		if err := rows.Scan(&a.ID, &a.IngredientID, &a.Quantity, &a.QuantityRemaining, &a.UnitCost,
			&a.OrderDate, &a.EstimatedDeliveryDate, &supplier, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan addition: %w", err)
		}
		a.SupplierID = derefString(supplier)
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ListAdditions todos los lotes del ingrediente, más antiguo primero.
func (r *LedgerRepo) ListAdditions(ctx context.Context, ingredientID string) ([]*entity.IngredientInventoryAddition, error) {
	return r.listAdditions(ctx, `SELECT`+additionColumns+`
		FROM ingredient_inventory_additions
		WHERE ingredient_id = $1
		ORDER BY order_date, created_at, id`, ingredientID)
}

const openLotsQuery = `SELECT` + additionColumns + `
		FROM ingredient_inventory_additions
		WHERE ingredient_id = $1 AND quantity_remaining > 0
		ORDER BY order_date, created_at, id`

const lockOpenLotsQuery = openLotsQuery + `
		FOR UPDATE`

// ListOpenLots lotes con remanente, más antiguo primero. Sin bloqueo: para lecturas.
func (r *LedgerRepo) ListOpenLots(ctx context.Context, ingredientID string) ([]*entity.IngredientInventoryAddition, error) {
	return r.listAdditions(ctx, openLotsQuery, ingredientID)
}

// LockOpenLots como ListOpenLots pero bloquea las filas de los lotes. Solo para
// asignación FIFO; el llamador ya tiene bloqueado el ingrediente.
func (r *LedgerRepo) LockOpenLots(ctx context.Context, ingredientID string) ([]*entity.IngredientInventoryAddition, error) {
	return r.listAdditions(ctx, lockOpenLotsQuery, ingredientID)
}

// UpdateRemaining compara-y-asigna el remanente de un lote.
func (r *LedgerRepo) UpdateRemaining(ctx context.Context, lotID string, expected, remaining decimal.Decimal) error {
	query := `
		UPDATE ingredient_inventory_additions
		SET quantity_remaining = $3
		WHERE id = $1 AND quantity_remaining = $2`
	cmd, err := r.q.Exec(ctx, query, lotID, expected, remaining)
	if err != nil {
		return translateWrite("update lot remaining", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("lot %s: %w", lotID, domain.ErrConcurrencyConflict)
	}
	return nil
}

// CreateSubtraction inserta un consumo.
func (r *LedgerRepo) CreateSubtraction(ctx context.Context, s *entity.IngredientInventorySubtraction) error {
	query := `
		INSERT INTO ingredient_inventory_subtractions (id, ingredient_id, quantity, batch_id, reason, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, s.ID, s.IngredientID, s.Quantity, nullString(s.BatchID), s.Reason, s.TransactionDate)
	return translateWrite("insert subtraction", err)
}

// ListSubtractions consumos del ingrediente en orden cronológico.
func (r *LedgerRepo) ListSubtractions(ctx context.Context, ingredientID string) ([]*entity.IngredientInventorySubtraction, error) {
	query := `
		SELECT id, ingredient_id, quantity, batch_id, COALESCE(reason, ''), transaction_date
		FROM ingredient_inventory_subtractions
		WHERE ingredient_id = $1
		ORDER BY transaction_date, id`
	rows, err := r.q.Query(ctx, query, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list subtractions: %w", err)
	}
	defer rows.Close()
	var list []*entity.IngredientInventorySubtraction
	for rows.Next() {
		var s entity.IngredientInventorySubtraction
		var batchID *string
		if err := rows.Scan(&s.ID, &s.IngredientID, &s.Quantity, &batchID, &s.Reason, &s.TransactionDate); err != nil {
			return nil, fmt.Errorf("scan subtraction: %w", err)
		}
		s.BatchID = derefString(batchID)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountSubtractionsByBatch consumos que referencian el batch.
func (r *LedgerRepo) CountSubtractionsByBatch(ctx context.Context, batchID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM ingredient_inventory_subtractions WHERE batch_id = $1`, batchID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subtractions: %w", err)
	}
	return n, nil
}

// Totals Σquantity y Σquantity_remaining de lotes y Σquantity de consumos en una sola lectura.
func (r *LedgerRepo) Totals(ctx context.Context, ingredientID string) (entity.LedgerTotals, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(quantity) FROM ingredient_inventory_additions WHERE ingredient_id = $1), 0),
			COALESCE((SELECT SUM(quantity) FROM ingredient_inventory_subtractions WHERE ingredient_id = $1), 0),
			COALESCE((SELECT SUM(quantity_remaining) FROM ingredient_inventory_additions WHERE ingredient_id = $1), 0)`
	var t entity.LedgerTotals
	if err := r.q.QueryRow(ctx, query, ingredientID).Scan(&t.Added, &t.Subtracted, &t.Remaining); err != nil {
		return entity.LedgerTotals{}, fmt.Errorf("ledger totals: %w", err)
	}
	return t, nil
}
