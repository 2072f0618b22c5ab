package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch lote de producción de una receta. El estado no se almacena:
// se deriva de ScheduledStartDate, StartDate y FinishDate (ver domain/batch).
type Batch struct {
	ID                  string
	RecipeID            string
	EquipmentID         string
	Volume              decimal.Decimal
	ScheduledStartDate  *time.Time
	StartDate           *time.Time
	FinishDate          *time.Time
	EstimatedFinishDate *time.Time
	OriginalGravity     *decimal.Decimal
	FinalGravity        *decimal.Decimal
	ABV                 *decimal.Decimal
	IBU                 *decimal.Decimal
	TasteRating         *int
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// BatchWithRecipe proyección de lectura de un batch junto a su receta y estilo.
type BatchWithRecipe struct {
	Batch
	RecipeName    string
	RecipeVersion int
	StyleName     string
}
