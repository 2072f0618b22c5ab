package brewing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/batch"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

// ProductUseCase trasiego de batches terminados a producto envasado y su agotamiento.
// Cada movimiento deja una InventoryTransaction de auditoría.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, log: log.Component("racking"), now: time.Now}
}

// Rack crea un producto a partir de un batch Finished.
func (uc *ProductUseCase) Rack(ctx context.Context, batchID string, in dto.RackProductRequest) (*dto.ProductResponse, error) {
	if in.ProductContainerSizeID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var p *entity.Product
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		b, err := repos.Batches.GetForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if batch.StateOf(b) != batch.StateFinished {
			return domain.ErrInvalidTransition
		}
		now := uc.now()
		p = &entity.Product{
			ID:                     uuid.New().String(),
			BatchID:                batchID,
			ProductContainerSizeID: in.ProductContainerSizeID,
			QuantityRacked:         in.Quantity,
			QuantityRemaining:      in.Quantity,
			RackedDate:             now,
			SellByDate:             in.SellByDate,
			CreatedAt:              now,
		}
		if err := repos.Products.Create(ctx, p); err != nil {
			return err
		}
		return repos.Transactions.Create(ctx, &entity.InventoryTransaction{
			ID:                     uuid.New().String(),
			BatchID:                batchID,
			ProductID:              p.ID,
			ProductContainerSizeID: p.ProductContainerSizeID,
			Type:                   entity.TransactionTypeRack,
			Quantity:               in.Quantity,
			AccountID:              in.AccountID,
			AppUserID:              in.AppUserID,
			TransactionDate:        now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("batch_id", batchID).Str("product_id", p.ID).Str("quantity", p.QuantityRacked.String()).Msg("producto trasegado")
	return toProductResponse(p), nil
}

// Deplete descuenta producto vendido o consumido; nunca deja el remanente negativo.
func (uc *ProductUseCase) Deplete(ctx context.Context, productID string, in dto.DepleteProductRequest) (*dto.ProductResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var p *entity.Product
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		p, err = repos.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.QuantityRemaining.LessThan(in.Quantity) {
			return &domain.InsufficientInventoryError{IngredientID: productID, Requested: in.Quantity, OnHand: p.QuantityRemaining}
		}
		p.QuantityRemaining = p.QuantityRemaining.Sub(in.Quantity)
		if err := repos.Products.UpdateRemaining(ctx, p); err != nil {
			return err
		}
		return repos.Transactions.Create(ctx, &entity.InventoryTransaction{
			ID:                     uuid.New().String(),
			BatchID:                p.BatchID,
			ProductID:              p.ID,
			ProductContainerSizeID: p.ProductContainerSizeID,
			Type:                   entity.TransactionTypeDeplete,
			Quantity:               in.Quantity.Neg(),
			AccountID:              in.AccountID,
			AppUserID:              in.AppUserID,
			Notes:                  in.Reason,
			TransactionDate:        uc.now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// ListByBatch productos de un batch.
func (uc *ProductUseCase) ListByBatch(ctx context.Context, batchID string) ([]dto.ProductResponse, error) {
	var list []*entity.Product
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		b, err := repos.Batches.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		list, err = repos.Products.ListByBatch(ctx, batchID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                     p.ID,
		BatchID:                p.BatchID,
		ProductContainerSizeID: p.ProductContainerSizeID,
		QuantityRacked:         p.QuantityRacked,
		QuantityRemaining:      p.QuantityRemaining,
		RackedDate:             p.RackedDate,
		SellByDate:             p.SellByDate,
	}
}
