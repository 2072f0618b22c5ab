package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeIngredientInput línea de receta en create/update.
type RecipeIngredientInput struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UseDuring    string          `json:"use_during"`
}

// CreateRecipeRequest body para POST /api/recipes.
type CreateRecipeRequest struct {
	Name         string                  `json:"name"`
	Version      int                     `json:"version"`
	StyleID      string                  `json:"style_id"`
	Volume       decimal.Decimal         `json:"volume"`
	Brewer       string                  `json:"brewer,omitempty"`
	EstimatedABV *decimal.Decimal        `json:"estimated_abv,omitempty"`
	EstimatedIBU *decimal.Decimal        `json:"estimated_ibu,omitempty"`
	Ingredients  []RecipeIngredientInput `json:"ingredients"`
}

// UpdateRecipeRequest body para PUT /api/recipes/:id. Campos nil no se modifican.
// RowVersion, si viene, debe coincidir con la versión almacenada.
type UpdateRecipeRequest struct {
	Name         *string                 `json:"name,omitempty"`
	Version      *int                    `json:"version,omitempty"`
	Volume       *decimal.Decimal        `json:"volume,omitempty"`
	Brewer       *string                 `json:"brewer,omitempty"`
	EstimatedABV *decimal.Decimal        `json:"estimated_abv,omitempty"`
	Ingredients  []RecipeIngredientInput `json:"ingredients,omitempty"`
	RowVersion   *int                    `json:"row_version,omitempty"`
}

// RecipeIngredientDTO línea de receta con nombre y unidad.
type RecipeIngredientDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit,omitempty"`
	UseDuring    string          `json:"use_during,omitempty"`
}

// RecipeDetailResponse detalle de receta.
type RecipeDetailResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Version      int                   `json:"version"`
	Style        string                `json:"style,omitempty"`
	Volume       decimal.Decimal       `json:"volume"`
	Brewer       string                `json:"brewer,omitempty"`
	EstimatedABV *decimal.Decimal      `json:"estimated_abv,omitempty"`
	EstimatedIBU *decimal.Decimal      `json:"estimated_ibu,omitempty"`
	Ingredients  []RecipeIngredientDTO `json:"ingredients"`
	RowVersion   int                   `json:"row_version"`
}

// RecipeScheduleDTO fila del listado de recetas con último brew y agenda.
type RecipeScheduleDTO struct {
	RecipeID       string           `json:"recipe_id"`
	RecipeName     string           `json:"recipe_name"`
	Version        int              `json:"version"`
	Style          string           `json:"style,omitempty"`
	EstimatedABV   *decimal.Decimal `json:"abv,omitempty"`
	LastBrewed     *time.Time       `json:"last_brewed,omitempty"`
	ScheduledDates []time.Time      `json:"scheduled_dates"`
}

// CreateBatchRequest body para POST /api/batches.
type CreateBatchRequest struct {
	RecipeID            string          `json:"recipe_id"`
	EquipmentID         string          `json:"equipment_id"`
	Volume              decimal.Decimal `json:"volume"`
	ScheduledStartDate  *time.Time      `json:"scheduled_start_date,omitempty"`
	EstimatedFinishDate *time.Time      `json:"estimated_finish_date,omitempty"`
	Notes               string          `json:"notes,omitempty"`
}

// UpdateBatchRequest body para PUT /api/batches/:id (sin tocar fechas del ciclo de vida).
type UpdateBatchRequest struct {
	Volume              *decimal.Decimal `json:"volume,omitempty"`
	EstimatedFinishDate *time.Time       `json:"estimated_finish_date,omitempty"`
	Notes               *string          `json:"notes,omitempty"`
}

// TransitionRequest body de schedule/start.
type TransitionRequest struct {
	Date *time.Time `json:"date"`
}

// FinishBatchRequest body de finish con mediciones post-brew opcionales.
type FinishBatchRequest struct {
	Date            *time.Time       `json:"date"`
	OriginalGravity *decimal.Decimal `json:"og,omitempty"`
	FinalGravity    *decimal.Decimal `json:"fg,omitempty"`
	ABV             *decimal.Decimal `json:"abv,omitempty"`
	IBU             *decimal.Decimal `json:"ibu,omitempty"`
	TasteRating     *int             `json:"taste_rating,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// CorrectDatesRequest actualización compensatoria de las tres fechas.
type CorrectDatesRequest struct {
	ScheduledStartDate *time.Time `json:"scheduled_start_date"`
	StartDate          *time.Time `json:"start_date"`
	FinishDate         *time.Time `json:"finish_date"`
}

// BatchResponse batch con su estado derivado.
type BatchResponse struct {
	ID                  string           `json:"id"`
	RecipeID            string           `json:"recipe_id"`
	RecipeName          string           `json:"recipe_name,omitempty"`
	Version             int              `json:"version,omitempty"`
	Style               string           `json:"style,omitempty"`
	EquipmentID         string           `json:"equipment_id"`
	Volume              decimal.Decimal  `json:"volume"`
	State               string           `json:"state"`
	ScheduledStartDate  *time.Time       `json:"scheduled_start_date,omitempty"`
	StartDate           *time.Time       `json:"start_date,omitempty"`
	FinishDate          *time.Time       `json:"finish_date,omitempty"`
	EstimatedFinishDate *time.Time       `json:"estimated_finish_date,omitempty"`
	OriginalGravity     *decimal.Decimal `json:"og,omitempty"`
	FinalGravity        *decimal.Decimal `json:"fg,omitempty"`
	ABV                 *decimal.Decimal `json:"abv,omitempty"`
	IBU                 *decimal.Decimal `json:"ibu,omitempty"`
	TasteRating         *int             `json:"taste_rating,omitempty"`
	Notes               string           `json:"notes,omitempty"`
}

// RackProductRequest body para POST /api/batches/:id/products.
type RackProductRequest struct {
	ProductContainerSizeID string          `json:"product_container_size_id"`
	Quantity               decimal.Decimal `json:"quantity"`
	SellByDate             *time.Time      `json:"sell_by_date,omitempty"`
	AppUserID              string          `json:"app_user_id,omitempty"`
	AccountID              string          `json:"account_id,omitempty"`
}

// DepleteProductRequest body para POST /api/products/:id/depletions.
type DepleteProductRequest struct {
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason,omitempty"`
	AppUserID string          `json:"app_user_id,omitempty"`
	AccountID string          `json:"account_id,omitempty"`
}

// ProductResponse producto envasado.
type ProductResponse struct {
	ID                     string          `json:"id"`
	BatchID                string          `json:"batch_id"`
	ProductContainerSizeID string          `json:"product_container_size_id"`
	QuantityRacked         decimal.Decimal `json:"quantity_racked"`
	QuantityRemaining      decimal.Decimal `json:"quantity_remaining"`
	RackedDate             time.Time       `json:"racked_date"`
	SellByDate             *time.Time      `json:"sell_by_date,omitempty"`
}
