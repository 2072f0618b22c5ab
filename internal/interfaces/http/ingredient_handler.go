package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
)

// IngredientHandler catálogo de ingredientes y libro de inventario.
type IngredientHandler struct {
	ingredients *inventory.IngredientUseCase
	ledger      *inventory.LedgerUseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(ingredients *inventory.IngredientUseCase, ledger *inventory.LedgerUseCase) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients, ledger: ledger}
}

// Create godoc
// @Summary      Crear ingrediente
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "name, unit_type_id, reorder_point, unit_cost"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ingredients.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ingrediente con su disponible
// @Tags         ingredients
// @Produce      json
// @Param        id   path  string  true  "ID del ingrediente"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [get]
func (h *IngredientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ingredients.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List ingredientes por nombre.
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	out, err := h.ingredients.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// Delete elimina un ingrediente sin referencias.
func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	if err := h.ingredients.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// OnHand godoc
// @Summary      Cantidad disponible de un ingrediente
// @Description  Verifica que ambos métodos contables coincidan; si divergen responde 500 LEDGER_INCONSISTENT.
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del ingrediente"
// @Success      200  {object}  dto.OnHandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/on-hand [get]
func (h *IngredientHandler) OnHand(c *fiber.Ctx) error {
	out, err := h.ledger.OnHand(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LedgerHistory lotes y consumos del ingrediente.
func (h *IngredientHandler) LedgerHistory(c *fiber.Ctx) error {
	out, err := h.ledger.LedgerHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordAddition godoc
// @Summary      Registrar entrada de inventario (lote)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.RecordAdditionRequest  true  "quantity, unit_cost, order_date, supplier_id"
// @Success      201   {object}  dto.AdditionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/additions [post]
func (h *IngredientHandler) RecordAddition(c *fiber.Ctx) error {
	var in dto.RecordAdditionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.IngredientID = c.Params("id")
	out, err := h.ledger.RecordAddition(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordConsumption godoc
// @Summary      Registrar consumo (FIFO sobre los lotes abiertos)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.RecordConsumptionRequest  true  "quantity, batch_id opcional, reason"
// @Success      201   {object}  dto.SubtractionDTO
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/consumptions [post]
func (h *IngredientHandler) RecordConsumption(c *fiber.Ctx) error {
	var in dto.RecordConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.IngredientID = c.Params("id")
	out, err := h.ledger.RecordConsumption(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		// cantidad cero: no se registra nada
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReorderList godoc
// @Summary      Lista de reposición
// @Description  Ingredientes por debajo del punto de reorden con la cantidad sugerida de pedido,
//
//	ordenados por mayor déficit.
//
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.ReorderAlertDTO
// @Router       /api/inventory/reorder-list [get]
func (h *IngredientHandler) ReorderList(c *fiber.Ctx) error {
	list, err := h.ledger.ListBelowReorderPoint(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}
