package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo unit_types y styles.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

func (r *CatalogRepo) UpsertUnitType(ctx context.Context, u entity.UnitType) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO unit_types (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, u.ID, u.Name)
	return translateWrite("upsert unit type", err)
}

func (r *CatalogRepo) UpsertStyle(ctx context.Context, s entity.Style) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO styles (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, s.ID, s.Name)
	return translateWrite("upsert style", err)
}

func (r *CatalogRepo) ListUnitTypes(ctx context.Context) ([]entity.UnitType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM unit_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list unit types: %w", err)
	}
	defer rows.Close()
	var list []entity.UnitType
	for rows.Next() {
		var u entity.UnitType
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("scan unit type: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *CatalogRepo) ListStyles(ctx context.Context) ([]entity.Style, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM styles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list styles: %w", err)
	}
	defer rows.Close()
	var list []entity.Style
	for rows.Next() {
		var s entity.Style
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan style: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
