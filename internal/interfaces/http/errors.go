package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
)

// ShortageDetail faltante de un ingrediente en la respuesta de error.
type ShortageDetail struct {
	IngredientID string          `json:"ingredient_id"`
	Requested    decimal.Decimal `json:"requested"`
	OnHand       decimal.Decimal `json:"on_hand"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// El orden importa: el primer errors.Is que coincide gana.
var errorMappings = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrInvalidSchedule, fiber.StatusUnprocessableEntity, "INVALID_SCHEDULE", "fecha de programación inválida"},
	{domain.ErrInvalidTimeline, fiber.StatusUnprocessableEntity, "INVALID_TIMELINE", "fechas del batch inconsistentes"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION", "transición no permitida desde el estado actual"},
	{domain.ErrInsufficientInventory, fiber.StatusConflict, "INSUFFICIENT_INVENTORY", "inventario insuficiente"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"},
	{domain.ErrReferentialConflict, fiber.StatusConflict, "REFERENTIAL_CONFLICT", "existen registros dependientes"},
	{domain.ErrConcurrencyConflict, fiber.StatusConflict, "CONCURRENCY_CONFLICT", "el recurso fue modificado concurrentemente, reintente"},
	{domain.ErrStoreUnavailable, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "almacenamiento no disponible"},
	{domain.ErrLedgerInconsistent, fiber.StatusInternalServerError, "LEDGER_INCONSISTENT", "libro de inventario inconsistente"},
}

// writeError traduce un error de dominio a status HTTP y dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message, Details: errorDetails(err)})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func errorDetails(err error) any {
	var shortage *domain.ConsumptionShortageError
	if errors.As(err, &shortage) {
		out := make([]ShortageDetail, 0, len(shortage.Shortages))
		for i := range shortage.Shortages {
			out = append(out, toShortageDetail(&shortage.Shortages[i]))
		}
		return out
	}
	var insufficient *domain.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		return []ShortageDetail{toShortageDetail(insufficient)}
	}
	return nil
}

func toShortageDetail(e *domain.InsufficientInventoryError) ShortageDetail {
	return ShortageDetail{
		IngredientID: e.IngredientID,
		Requested:    e.Requested,
		OnHand:       e.OnHand,
		Shortfall:    e.Shortfall(),
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
