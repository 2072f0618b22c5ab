package repository

import (
	"context"

	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del producto envasado.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	UpdateRemaining(ctx context.Context, product *entity.Product) error
	ListByBatch(ctx context.Context, batchID string) ([]*entity.Product, error)
}

// InventoryTransactionRepository registro de auditoría (append-only).
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	ListByBatch(ctx context.Context, batchID string) ([]*entity.InventoryTransaction, error)
}
