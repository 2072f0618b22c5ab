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

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo batches sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `
	b.id, b.recipe_id, COALESCE(b.equipment_id, ''), b.volume,
	b.scheduled_start_date, b.start_date, b.finish_date, b.estimated_finish_date,
	b.original_gravity, b.final_gravity, b.abv, b.ibu, b.taste_rating, COALESCE(b.notes, ''),
	b.created_at, b.updated_at`

func batchDest(b *entity.Batch) []any {
	return []any{&b.ID, &b.RecipeID, &b.EquipmentID, &b.Volume,
		&b.ScheduledStartDate, &b.StartDate, &b.FinishDate, &b.EstimatedFinishDate,
		&b.OriginalGravity, &b.FinalGravity, &b.ABV, &b.IBU, &b.TasteRating, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt}
}

// Create inserta un batch.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, recipe_id, equipment_id, volume, scheduled_start_date, start_date, finish_date,
			estimated_finish_date, original_gravity, final_gravity, abv, ibu, taste_rating, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query, b.ID, b.RecipeID, nullString(b.EquipmentID), b.Volume,
		b.ScheduledStartDate, b.StartDate, b.FinishDate, b.EstimatedFinishDate,
		b.OriginalGravity, b.FinalGravity, b.ABV, b.IBU, b.TasteRating, nullString(b.Notes),
		b.CreatedAt, b.UpdatedAt)
	return translateBatchWrite("insert batch", err)
}

func (r *BatchRepo) get(ctx context.Context, query, id string) (*entity.Batch, error) {
	var b entity.Batch
	if err := r.q.QueryRow(ctx, query, id).Scan(batchDest(&b)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// GetByID obtiene un batch por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	return r.get(ctx, `SELECT`+batchColumns+` FROM batches b WHERE b.id = $1`, id)
}

// GetForUpdate obtiene y bloquea el batch.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.get(ctx, `SELECT`+batchColumns+` FROM batches b WHERE b.id = $1 FOR UPDATE`, id)
}

// Update reescribe todas las columnas mutables.
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches
		SET recipe_id = $2, equipment_id = $3, volume = $4, scheduled_start_date = $5, start_date = $6,
		    finish_date = $7, estimated_finish_date = $8, original_gravity = $9, final_gravity = $10,
		    abv = $11, ibu = $12, taste_rating = $13, notes = $14, updated_at = $15
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, b.ID, b.RecipeID, nullString(b.EquipmentID), b.Volume,
		b.ScheduledStartDate, b.StartDate, b.FinishDate, b.EstimatedFinishDate,
		b.OriginalGravity, b.FinalGravity, b.ABV, b.IBU, b.TasteRating, nullString(b.Notes), b.UpdatedAt)
	if err != nil {
		return translateBatchWrite("update batch", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("batch %s: %w", b.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina el batch; productos y transacciones caen por cascada.
// Sustracciones que lo referencien bloquean el borrado (FK RESTRICT).
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	return translateWrite("delete batch", err)
}

func (r *BatchRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Batch, 0)
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(batchDest(&b)...); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ListAll todos los batches por fecha de creación.
func (r *BatchRepo) ListAll(ctx context.Context) ([]*entity.Batch, error) {
	return r.list(ctx, `SELECT`+batchColumns+` FROM batches b ORDER BY b.created_at, b.id`)
}

// ListByRecipe batches de una receta.
func (r *BatchRepo) ListByRecipe(ctx context.Context, recipeID string) ([]*entity.Batch, error) {
	return r.list(ctx, `SELECT`+batchColumns+` FROM batches b WHERE b.recipe_id = $1 ORDER BY b.created_at, b.id`, recipeID)
}

// ListWithRecipe batches con nombre/versión de receta y estilo.
func (r *BatchRepo) ListWithRecipe(ctx context.Context) ([]*entity.BatchWithRecipe, error) {
	query := `SELECT` + batchColumns + `, r.name, r.version, COALESCE(s.name, '')
		FROM batches b
		JOIN recipes r ON r.id = b.recipe_id
		LEFT JOIN styles s ON s.id = r.style_id
		ORDER BY b.created_at, b.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list batches with recipe: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.BatchWithRecipe, 0)
	for rows.Next() {
		var row entity.BatchWithRecipe
		dest := append(batchDest(&row.Batch), &row.RecipeName, &row.RecipeVersion, &row.StyleName)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan batch with recipe: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// CountByRecipe cantidad de batches que referencian la receta.
func (r *BatchRepo) CountByRecipe(ctx context.Context, recipeID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM batches WHERE recipe_id = $1`, recipeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count batches: %w", err)
	}
	return n, nil
}

// translateBatchWrite la CHECK de fechas del batch es una línea de tiempo inválida,
// no una inconsistencia de libro.
func translateBatchWrite(op string, err error) error {
	if pgCode(err) == codeCheckViolation {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidTimeline)
	}
	return translateWrite(op, err)
}
