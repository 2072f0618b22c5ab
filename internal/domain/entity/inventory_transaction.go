package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del registro de auditoría.
const (
	TransactionTypeRack    = "RACK"    // trasiego a producto envasado
	TransactionTypeDeplete = "DEPLETE" // venta/consumo de producto
)

// InventoryTransaction registro de auditoría de movimientos ligados a un batch.
// Distinto del libro de adiciones/sustracciones de ingredientes.
type InventoryTransaction struct {
	ID                     string
	BatchID                string
	ProductID              string
	ProductContainerSizeID string
	Type                   string
	Quantity               decimal.Decimal
	AccountID              string
	AppUserID              string
	Notes                  string
	TransactionDate        time.Time
}
