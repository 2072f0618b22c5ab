package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Style estilo de cerveza (IPA, Stout...).
type Style struct {
	ID   string
	Name string
}

// Recipe receta. El nombre es único globalmente.
// RowVersion es el token de concurrencia optimista; Version es la versión de la receta.
type Recipe struct {
	ID           string
	Name         string
	Version      int
	StyleID      string
	StyleName    string // solo lectura
	Volume       decimal.Decimal
	Brewer       string
	EstimatedABV *decimal.Decimal
	EstimatedIBU *decimal.Decimal
	Ingredients  []RecipeIngredient
	RowVersion   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Usos de un ingrediente dentro del proceso.
const (
	UseDuringMash      = "MASH"
	UseDuringBoil      = "BOIL"
	UseDuringWhirlpool = "WHIRLPOOL"
	UseDuringFerment   = "FERMENT"
	UseDuringDryHop    = "DRY_HOP"
	UseDuringPackaging = "PACKAGING"
)

// RecipeIngredient línea de receta: ingrediente + cantidad requerida para Recipe.Volume.
type RecipeIngredient struct {
	ID             string
	RecipeID       string
	IngredientID   string
	IngredientName string // solo lectura
	UnitName       string // solo lectura
	Quantity       decimal.Decimal
	UseDuring      string
	Position       int
}
