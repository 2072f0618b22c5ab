package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas y recipe_ingredients sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create inserta la receta y sus líneas. Debe ejecutarse dentro de una transacción.
func (r *RecipeRepo) Create(ctx context.Context, rec *entity.Recipe) error {
	query := `
		INSERT INTO recipes (id, name, version, style_id, volume, brewer, estimated_abv, estimated_ibu, row_version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, rec.ID, rec.Name, rec.Version, nullString(rec.StyleID), rec.Volume,
		nullString(rec.Brewer), rec.EstimatedABV, rec.EstimatedIBU, rec.RowVersion, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return translateWrite("insert recipe", err)
	}
	return r.insertLines(ctx, rec)
}

func (r *RecipeRepo) insertLines(ctx context.Context, rec *entity.Recipe) error {
	query := `
		INSERT INTO recipe_ingredients (id, recipe_id, ingredient_id, quantity, use_during, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range rec.Ingredients {
		l := &rec.Ingredients[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.RecipeID = rec.ID
		if _, err := r.q.Exec(ctx, query, l.ID, rec.ID, l.IngredientID, l.Quantity, nullString(l.UseDuring), l.Position); err != nil {
			return translateWrite("insert recipe line", err)
		}
	}
	return nil
}

const recipeColumns = `
	r.id, r.name, r.version, COALESCE(r.style_id, ''), COALESCE(s.name, ''), r.volume, COALESCE(r.brewer, ''),
	r.estimated_abv, r.estimated_ibu, r.row_version, r.created_at, r.updated_at`

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := row.Scan(&rec.ID, &rec.Name, &rec.Version, &rec.StyleID, &rec.StyleName, &rec.Volume, &rec.Brewer,
		&rec.EstimatedABV, &rec.EstimatedIBU, &rec.RowVersion, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByID receta con sus líneas ordenadas por posición.
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	query := `SELECT` + recipeColumns + `
		FROM recipes r LEFT JOIN styles s ON s.id = r.style_id
		WHERE r.id = $1`
	rec, err := scanRecipe(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	linesQuery := `
		SELECT ri.id, ri.recipe_id, ri.ingredient_id, i.name, COALESCE(u.name, ''), ri.quantity,
		       COALESCE(ri.use_during, ''), ri.position
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		LEFT JOIN unit_types u ON u.id = i.unit_type_id
		WHERE ri.recipe_id = $1
		ORDER BY ri.position, ri.id`
	rows, err := r.q.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.RecipeIngredient
		if err := rows.Scan(&l.ID, &l.RecipeID, &l.IngredientID, &l.IngredientName, &l.UnitName,
			&l.Quantity, &l.UseDuring, &l.Position); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		rec.Ingredients = append(rec.Ingredients, l)
	}
	return rec, rows.Err()
}

// Update con concurrencia optimista sobre row_version. Reemplaza las líneas.
func (r *RecipeRepo) Update(ctx context.Context, rec *entity.Recipe) error {
	query := `
		UPDATE recipes
		SET name = $3, version = $4, style_id = $5, volume = $6, brewer = $7,
		    estimated_abv = $8, estimated_ibu = $9, updated_at = $10, row_version = row_version + 1
		WHERE id = $1 AND row_version = $2`
	cmd, err := r.q.Exec(ctx, query, rec.ID, rec.RowVersion, rec.Name, rec.Version, nullString(rec.StyleID),
		rec.Volume, nullString(rec.Brewer), rec.EstimatedABV, rec.EstimatedIBU, rec.UpdatedAt)
	if err != nil {
		return translateWrite("update recipe", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("recipe %s: %w", rec.ID, domain.ErrConcurrencyConflict)
	}
	rec.RowVersion++

	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID); err != nil {
		return fmt.Errorf("replace recipe lines: %w", err)
	}
	return r.insertLines(ctx, rec)
}

// Delete elimina la receta; las líneas caen por cascada. Un batch que la referencie
// bloquea el borrado (FK RESTRICT).
func (r *RecipeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	return translateWrite("delete recipe", err)
}

// List recetas sin líneas, por nombre.
func (r *RecipeRepo) List(ctx context.Context) ([]*entity.Recipe, error) {
	query := `SELECT` + recipeColumns + `
		FROM recipes r LEFT JOIN styles s ON s.id = r.style_id
		ORDER BY r.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
