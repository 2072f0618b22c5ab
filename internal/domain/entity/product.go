package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto envasado (barril, lata) resultado del trasiego de un batch terminado.
type Product struct {
	ID                     string
	BatchID                string
	ProductContainerSizeID string
	QuantityRacked         decimal.Decimal
	QuantityRemaining      decimal.Decimal
	RackedDate             time.Time
	SellByDate             *time.Time
	CreatedAt              time.Time
}
