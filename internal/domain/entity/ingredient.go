package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitType unidad de medida (kg, g, L, unidades).
type UnitType struct {
	ID   string
	Name string
}

// Ingredient insumo de cervecería. La cantidad disponible no se almacena:
// se deriva de los lotes (IngredientInventoryAddition) en el libro de inventario.
type Ingredient struct {
	ID           string
	Name         string
	ReorderPoint decimal.Decimal
	UnitTypeID   string
	UnitName     string // solo lectura (join con unit_types)
	UnitCost     decimal.Decimal // costo nominal, el más reciente
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
