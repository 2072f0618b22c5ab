package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `
	i.id, i.name, i.reorder_point, i.unit_type_id, COALESCE(u.name, ''), i.unit_cost, COALESCE(i.notes, ''), i.created_at, i.updated_at`

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	err := row.Scan(&ing.ID, &ing.Name, &ing.ReorderPoint, &ing.UnitTypeID, &ing.UnitName,
		&ing.UnitCost, &ing.Notes, &ing.CreatedAt, &ing.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// Create persiste un ingrediente.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, name, reorder_point, unit_type_id, unit_cost, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, ing.ID, ing.Name, ing.ReorderPoint, ing.UnitTypeID,
		ing.UnitCost, nullString(ing.Notes), ing.CreatedAt, ing.UpdatedAt)
	return translateWrite("insert ingredient", err)
}

// GetByID obtiene un ingrediente por ID.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	query := `SELECT` + ingredientColumns + `
		FROM ingredients i LEFT JOIN unit_types u ON u.id = i.unit_type_id
		WHERE i.id = $1`
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// GetForUpdate obtiene el ingrediente y bloquea su fila (SELECT FOR UPDATE OF i).
func (r *IngredientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error) {
	query := `SELECT` + ingredientColumns + `
		FROM ingredients i LEFT JOIN unit_types u ON u.id = i.unit_type_id
		WHERE i.id = $1
		FOR UPDATE OF i`
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient for update: %w", err)
	}
	return ing, nil
}

// List todos los ingredientes por nombre.
func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	query := `SELECT` + ingredientColumns + `
		FROM ingredients i LEFT JOIN unit_types u ON u.id = i.unit_type_id
		ORDER BY i.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

// UpdateUnitCost fija el costo nominal.
func (r *IngredientRepo) UpdateUnitCost(ctx context.Context, id string, unitCost decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE ingredients SET unit_cost = $2, updated_at = now() WHERE id = $1`, id, unitCost)
	if err != nil {
		return fmt.Errorf("update ingredient cost: %w", err)
	}
	return nil
}

// Delete elimina un ingrediente por ID.
func (r *IngredientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	return translateWrite("delete ingredient", err)
}

// HasReferences verifica entradas de libro y líneas de receta.
func (r *IngredientRepo) HasReferences(ctx context.Context, id string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM ingredient_inventory_additions WHERE ingredient_id = $1)
		    OR EXISTS (SELECT 1 FROM ingredient_inventory_subtractions WHERE ingredient_id = $1)
		    OR EXISTS (SELECT 1 FROM recipe_ingredients WHERE ingredient_id = $1)`
	var referenced bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&referenced); err != nil {
		return false, fmt.Errorf("ingredient references: %w", err)
	}
	return referenced, nil
}
