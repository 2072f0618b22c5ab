package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository              = (*ProductRepo)(nil)
	_ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)
)

// ProductRepo producto envasado sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	id, batch_id, COALESCE(product_container_size_id, ''), quantity_racked, quantity_remaining,
	racked_date, sell_by_date, created_at`

func productDest(p *entity.Product) []any {
	return []any{&p.ID, &p.BatchID, &p.ProductContainerSizeID, &p.QuantityRacked, &p.QuantityRemaining,
		&p.RackedDate, &p.SellByDate, &p.CreatedAt}
}

// Create inserta un producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, batch_id, product_container_size_id, quantity_racked, quantity_remaining,
			racked_date, sell_by_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, p.ID, p.BatchID, nullString(p.ProductContainerSizeID), p.QuantityRacked,
		p.QuantityRemaining, p.RackedDate, p.SellByDate, p.CreatedAt)
	return translateWrite("insert product", err)
}

// GetForUpdate obtiene y bloquea el producto.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT`+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id).Scan(productDest(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// UpdateRemaining persiste el remanente del producto.
func (r *ProductRepo) UpdateRemaining(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET quantity_remaining = $2 WHERE id = $1`, p.ID, p.QuantityRemaining)
	if err != nil {
		return translateWrite("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// ListByBatch productos de un batch por fecha de trasiego.
func (r *ProductRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT`+productColumns+` FROM products WHERE batch_id = $1 ORDER BY racked_date, id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(productDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// InventoryTransactionRepo registro de auditoría inventory_transactions.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador.
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create inserta un movimiento.
func (r *InventoryTransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, batch_id, product_id, product_container_size_id, type, quantity,
			account_id, app_user_id, notes, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, t.ID, t.BatchID, nullString(t.ProductID), nullString(t.ProductContainerSizeID),
		t.Type, t.Quantity, nullString(t.AccountID), nullString(t.AppUserID), nullString(t.Notes), t.TransactionDate)
	return translateWrite("insert inventory transaction", err)
}

// ListByBatch movimientos del batch en orden cronológico.
func (r *InventoryTransactionRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, batch_id, COALESCE(product_id, ''), COALESCE(product_container_size_id, ''), type, quantity,
		       COALESCE(account_id, ''), COALESCE(app_user_id, ''), COALESCE(notes, ''), transaction_date
		FROM inventory_transactions
		WHERE batch_id = $1
		ORDER BY transaction_date, id`
	rows, err := r.q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryTransaction, 0)
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.BatchID, &t.ProductID, &t.ProductContainerSizeID, &t.Type, &t.Quantity,
			&t.AccountID, &t.AppUserID, &t.Notes, &t.TransactionDate); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
