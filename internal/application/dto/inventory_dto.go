package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest body para POST /api/ingredients.
type CreateIngredientRequest struct {
	Name         string          `json:"name"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	UnitTypeID   string          `json:"unit_type_id"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Notes        string          `json:"notes,omitempty"`
}

// IngredientResponse ingrediente con su cantidad disponible derivada.
type IngredientResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	UnitTypeID   string          `json:"unit_type_id"`
	Unit         string          `json:"unit,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	OnHand       decimal.Decimal `json:"on_hand"`
	BelowReorder bool            `json:"below_reorder_point"`
	Notes        string          `json:"notes,omitempty"`
}

// RecordAdditionRequest body para POST /api/ingredients/:id/additions.
type RecordAdditionRequest struct {
	IngredientID          string          `json:"-"`
	Quantity              decimal.Decimal `json:"quantity"`
	UnitCost              decimal.Decimal `json:"unit_cost"`
	OrderDate             time.Time       `json:"order_date"`
	EstimatedDeliveryDate *time.Time      `json:"estimated_delivery_date,omitempty"`
	SupplierID            string          `json:"supplier_id"`
}

// RecordConsumptionRequest body para POST /api/ingredients/:id/consumptions.
// BatchID vacío = consumo sin batch (merma, ajuste).
type RecordConsumptionRequest struct {
	IngredientID string          `json:"-"`
	Quantity     decimal.Decimal `json:"quantity"`
	BatchID      string          `json:"batch_id,omitempty"`
	Reason       string          `json:"reason"`
}

// AdditionDTO lote de entrada.
type AdditionDTO struct {
	ID                    string          `json:"id"`
	IngredientID          string          `json:"ingredient_id"`
	Quantity              decimal.Decimal `json:"quantity"`
	QuantityRemaining     decimal.Decimal `json:"quantity_remaining"`
	UnitCost              decimal.Decimal `json:"unit_cost"`
	OrderDate             time.Time       `json:"order_date"`
	EstimatedDeliveryDate *time.Time      `json:"estimated_delivery_date,omitempty"`
	SupplierID            string          `json:"supplier_id"`
}

// SubtractionDTO consumo registrado.
type SubtractionDTO struct {
	ID              string          `json:"id"`
	IngredientID    string          `json:"ingredient_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	BatchID         string          `json:"batch_id,omitempty"`
	Reason          string          `json:"reason"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// OnHandResponse cantidad disponible de un ingrediente.
type OnHandResponse struct {
	IngredientID    string          `json:"ingredient_id"`
	OnHand          decimal.Decimal `json:"on_hand"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	BelowReorder    bool            `json:"below_reorder_point"`
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"` // promedio ponderado de lotes abiertos
}

// LedgerHistoryResponse libro completo de un ingrediente.
type LedgerHistoryResponse struct {
	IngredientID string           `json:"ingredient_id"`
	OnHand       decimal.Decimal  `json:"on_hand"`
	Additions    []AdditionDTO    `json:"additions"`
	Subtractions []SubtractionDTO `json:"subtractions"`
}

// ReorderAlertDTO ingrediente por debajo de su punto de reorden.
type ReorderAlertDTO struct {
	IngredientID       string          `json:"ingredient_id"`
	Name               string          `json:"name"`
	Unit               string          `json:"unit,omitempty"`
	OnHand             decimal.Decimal `json:"on_hand"`
	ReorderPoint       decimal.Decimal `json:"reorder_point"`
	TargetStock        decimal.Decimal `json:"target_stock"`         // ReorderPoint * factor
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // TargetStock - OnHand
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo nominal
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	AverageUnitCost    decimal.Decimal `json:"average_unit_cost"`
}
