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
	"github.com/jhoicas/brewery-tracker-api/internal/domain/scheduling"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

// BatchUseCase ciclo de vida de los batches: creación, transiciones y consultas.
// Cada transición bloquea el batch (GetForUpdate) dentro de la transacción, de modo que
// dos transiciones sobre el mismo batch se serializan y batches distintos avanzan en paralelo.
type BatchUseCase struct {
	txRunner inventory.TxRunner
	engine   *ConsumptionEngine
	policy   ConsumptionPolicy
	log      *logger.Logger
	now      func() time.Time
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(txRunner inventory.TxRunner, engine *ConsumptionEngine, policy ConsumptionPolicy, log *logger.Logger) *BatchUseCase {
	if policy == "" {
		policy = ConsumeOnFinish
	}
	return &BatchUseCase{
		txRunner: txRunner,
		engine:   engine,
		policy:   policy,
		log:      log.Component("batch_lifecycle"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *BatchUseCase) WithClock(now func() time.Time) *BatchUseCase {
	uc.now = now
	return uc
}

// Create crea un batch en Draft, o en Scheduled si trae fecha programada.
func (uc *BatchUseCase) Create(ctx context.Context, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if in.RecipeID == "" || !in.Volume.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	b := &entity.Batch{
		ID:                  uuid.New().String(),
		RecipeID:            in.RecipeID,
		EquipmentID:         in.EquipmentID,
		Volume:              in.Volume,
		EstimatedFinishDate: in.EstimatedFinishDate,
		Notes:               in.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if in.ScheduledStartDate != nil {
		if err := batch.Schedule(b, in.ScheduledStartDate, now); err != nil {
			return nil, err
		}
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		recipe, err := repos.Recipes.GetByID(ctx, in.RecipeID)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		return repos.Batches.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("batch_id", b.ID).Str("recipe_id", b.RecipeID).Str("state", string(batch.StateOf(b))).Msg("batch creado")
	return toBatchResponse(b, nil), nil
}

// Schedule Draft -> Scheduled (o reprogramación antes de iniciar).
func (uc *BatchUseCase) Schedule(ctx context.Context, batchID string, date *time.Time) (*dto.BatchResponse, error) {
	return uc.transition(ctx, batchID, "schedule", func(_ repository.Repositories, b *entity.Batch) error {
		return batch.Schedule(b, date, uc.now())
	})
}

// Start Scheduled -> InProgress. Con política on_start consume los ingredientes en la misma tx.
func (uc *BatchUseCase) Start(ctx context.Context, batchID string, date *time.Time) (*dto.BatchResponse, error) {
	return uc.transition(ctx, batchID, "start", func(repos repository.Repositories, b *entity.Batch) error {
		if err := batch.Start(b, date); err != nil {
			return err
		}
		if uc.policy == ConsumeOnStart {
			_, err := uc.engine.ConsumeForBatch(ctx, repos, b)
			return err
		}
		return nil
	})
}

// Finish InProgress -> Finished con mediciones post-brew. Con política on_finish consume
// los ingredientes en la misma tx: si falta alguno, el batch no se da por terminado.
func (uc *BatchUseCase) Finish(ctx context.Context, batchID string, in dto.FinishBatchRequest) (*dto.BatchResponse, error) {
	if in.TasteRating != nil && (*in.TasteRating < 1 || *in.TasteRating > 10) {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, batchID, "finish", func(repos repository.Repositories, b *entity.Batch) error {
		if err := batch.Finish(b, in.Date); err != nil {
			return err
		}
		b.OriginalGravity = in.OriginalGravity
		b.FinalGravity = in.FinalGravity
		b.ABV = in.ABV
		b.IBU = in.IBU
		b.TasteRating = in.TasteRating
		if in.Notes != nil {
			b.Notes = *in.Notes
		}
		if uc.policy == ConsumeOnFinish {
			_, err := uc.engine.ConsumeForBatch(ctx, repos, b)
			return err
		}
		return nil
	})
}

// CorrectDates actualización compensatoria de las tres fechas (único modo de retroceder).
// Si la corrección lleva el batch al estado que consume según la política, publica el
// consumo en la misma tx (idempotente si ya existía). No revierte consumos publicados.
func (uc *BatchUseCase) CorrectDates(ctx context.Context, batchID string, in dto.CorrectDatesRequest) (*dto.BatchResponse, error) {
	return uc.transition(ctx, batchID, "correct_dates", func(repos repository.Repositories, b *entity.Batch) error {
		from := batch.StateOf(b)
		if err := batch.CorrectDates(b, in.ScheduledStartDate, in.StartDate, in.FinishDate); err != nil {
			return err
		}
		if !uc.policy.Consumes(from) && uc.policy.Consumes(batch.StateOf(b)) {
			_, err := uc.engine.ConsumeForBatch(ctx, repos, b)
			return err
		}
		return nil
	})
}

// RecordHistory fija las fechas de un batch elaborado antes de llevar el libro de
// inventario (importación histórica). Nunca publica consumos.
func (uc *BatchUseCase) RecordHistory(ctx context.Context, batchID string, in dto.CorrectDatesRequest) (*dto.BatchResponse, error) {
	return uc.transition(ctx, batchID, "record_history", func(_ repository.Repositories, b *entity.Batch) error {
		return batch.CorrectDates(b, in.ScheduledStartDate, in.StartDate, in.FinishDate)
	})
}

func (uc *BatchUseCase) transition(
	ctx context.Context,
	batchID, action string,
	apply func(repos repository.Repositories, b *entity.Batch) error,
) (*dto.BatchResponse, error) {
	var (
		b    *entity.Batch
		from batch.State
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		b, err = repos.Batches.GetForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		from = batch.StateOf(b)
		if err := apply(repos, b); err != nil {
			return err
		}
		b.UpdatedAt = uc.now()
		return repos.Batches.Update(ctx, b)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", batchID).Str("action", action).Msg("transición rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("batch_id", batchID).
		Str("action", action).
		Str("from", string(from)).
		Str("to", string(batch.StateOf(b))).
		Msg("transición de batch")
	return toBatchResponse(b, nil), nil
}

// Update modifica volumen, fecha estimada de fin y notas; las fechas del ciclo de vida no.
// El volumen queda fijo una vez publicado el consumo del batch.
func (uc *BatchUseCase) Update(ctx context.Context, batchID string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	if in.Volume != nil && !in.Volume.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, batchID, "update", func(repos repository.Repositories, b *entity.Batch) error {
		if in.Volume != nil && !in.Volume.Equal(b.Volume) {
			// El consumo publicado se escaló con el volumen actual.
			n, err := repos.Ledger.CountSubtractionsByBatch(ctx, b.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return domain.ErrInvalidTransition
			}
			b.Volume = *in.Volume
		}
		if in.EstimatedFinishDate != nil {
			b.EstimatedFinishDate = in.EstimatedFinishDate
		}
		if in.Notes != nil {
			b.Notes = *in.Notes
		}
		return nil
	})
}

// Delete elimina el batch con sus productos y transacciones de auditoría.
// Si el libro de ingredientes lo referencia devuelve domain.ErrReferentialConflict.
func (uc *BatchUseCase) Delete(ctx context.Context, batchID string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		b, err := repos.Batches.GetForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		n, err := repos.Ledger.CountSubtractionsByBatch(ctx, batchID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrReferentialConflict
		}
		return repos.Batches.Delete(ctx, batchID)
	})
}

// GetByID batch con receta y estilo.
func (uc *BatchUseCase) GetByID(ctx context.Context, batchID string) (*dto.BatchResponse, error) {
	var out *dto.BatchResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		b, err := repos.Batches.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		recipe, err := repos.Recipes.GetByID(ctx, b.RecipeID)
		if err != nil {
			return err
		}
		out = toBatchResponse(b, recipe)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll todos los batches, programación más reciente primero.
func (uc *BatchUseCase) ListAll(ctx context.Context) ([]dto.BatchResponse, error) {
	var rows []*entity.BatchWithRecipe
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		rows, err = repos.Batches.ListWithRecipe(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, *toBatchRowResponse(r))
	}
	sortByScheduledDesc(out)
	return out, nil
}

// ListScheduled brews programados después de asOf y sin iniciar, por fecha y luego ID.
func (uc *BatchUseCase) ListScheduled(ctx context.Context, asOf time.Time) ([]dto.BatchResponse, error) {
	var rows []*entity.BatchWithRecipe
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		rows, err = repos.Batches.ListWithRecipe(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	scheduled := scheduling.AllScheduledBrews(rows, asOf)
	out := make([]dto.BatchResponse, 0, len(scheduled))
	for _, r := range scheduled {
		out = append(out, *toBatchRowResponse(r))
	}
	return out, nil
}

// ListByRecipe batches de una receta.
func (uc *BatchUseCase) ListByRecipe(ctx context.Context, recipeID string) ([]dto.BatchResponse, error) {
	var (
		list   []*entity.Batch
		recipe *entity.Recipe
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		recipe, err = repos.Recipes.GetByID(ctx, recipeID)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		list, err = repos.Batches.ListByRecipe(ctx, recipeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBatchResponse(b, recipe))
	}
	return out, nil
}

func toBatchResponse(b *entity.Batch, recipe *entity.Recipe) *dto.BatchResponse {
	res := &dto.BatchResponse{
		ID:                  b.ID,
		RecipeID:            b.RecipeID,
		EquipmentID:         b.EquipmentID,
		Volume:              b.Volume,
		State:               string(batch.StateOf(b)),
		ScheduledStartDate:  b.ScheduledStartDate,
		StartDate:           b.StartDate,
		FinishDate:          b.FinishDate,
		EstimatedFinishDate: b.EstimatedFinishDate,
		OriginalGravity:     b.OriginalGravity,
		FinalGravity:        b.FinalGravity,
		ABV:                 b.ABV,
		IBU:                 b.IBU,
		TasteRating:         b.TasteRating,
		Notes:               b.Notes,
	}
	if recipe != nil {
		res.RecipeName = recipe.Name
		res.Version = recipe.Version
		res.Style = recipe.StyleName
	}
	return res
}

func toBatchRowResponse(r *entity.BatchWithRecipe) *dto.BatchResponse {
	res := toBatchResponse(&r.Batch, nil)
	res.RecipeName = r.RecipeName
	res.Version = r.RecipeVersion
	res.Style = r.StyleName
	return res
}
