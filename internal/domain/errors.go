package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrInvalidSchedule       = errors.New("programación inválida")
	ErrInvalidTimeline       = errors.New("línea de tiempo inválida")
	ErrInvalidTransition     = errors.New("transición de estado no permitida")
	ErrInsufficientInventory = errors.New("inventario insuficiente")
	ErrReferentialConflict   = errors.New("existen registros dependientes")
	ErrConcurrencyConflict   = errors.New("conflicto de concurrencia")
	ErrStoreUnavailable      = errors.New("almacenamiento no disponible")
	ErrLedgerInconsistent    = errors.New("libro de inventario inconsistente")
)

// InsufficientInventoryError detalla el faltante de un ingrediente.
// errors.Is(err, ErrInsufficientInventory) es verdadero.
type InsufficientInventoryError struct {
	IngredientID string
	Requested    decimal.Decimal
	OnHand       decimal.Decimal
}

// Shortfall cantidad que falta para cubrir la solicitud.
func (e *InsufficientInventoryError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.OnHand)
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("%s: ingrediente %s solicitado %s, disponible %s, faltan %s",
		ErrInsufficientInventory, e.IngredientID, e.Requested, e.OnHand, e.Shortfall())
}

func (e *InsufficientInventoryError) Is(target error) bool {
	return target == ErrInsufficientInventory
}

// ConsumptionShortageError agrupa todos los ingredientes faltantes de un lote de producción.
type ConsumptionShortageError struct {
	BatchID   string
	Shortages []InsufficientInventoryError
}

func (e *ConsumptionShortageError) Error() string {
	ids := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		ids = append(ids, fmt.Sprintf("%s (faltan %s)", s.IngredientID, s.Shortfall()))
	}
	return fmt.Sprintf("%s: batch %s, ingredientes: %s", ErrInsufficientInventory, e.BatchID, strings.Join(ids, ", "))
}

func (e *ConsumptionShortageError) Is(target error) bool {
	return target == ErrInsufficientInventory
}
