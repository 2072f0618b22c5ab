package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brewery-tracker-api/internal/application/brewing"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
)

// BatchHandler ciclo de vida de batches y producto envasado.
type BatchHandler struct {
	batches  *brewing.BatchUseCase
	products *brewing.ProductUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(batches *brewing.BatchUseCase, products *brewing.ProductUseCase) *BatchHandler {
	return &BatchHandler{batches: batches, products: products}
}

// Create godoc
// @Summary      Crear batch
// @Description  Sin scheduled_start_date queda en DRAFT; con fecha queda en SCHEDULED.
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "recipe_id, volume, equipment_id"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.batches.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID batch con su estado derivado.
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.batches.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List todos los batches, fecha programada descendente.
func (h *BatchHandler) List(c *fiber.Ctx) error {
	out, err := h.batches.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// ListScheduled godoc
// @Summary      Brews programados
// @Description  Batches con fecha programada posterior a as_of y sin iniciar, por fecha ascendente.
// @Tags         batches
// @Produce      json
// @Param        as_of  query  string  false  "Fecha de referencia (RFC3339 o AAAA-MM-DD); por defecto ahora"
// @Success      200    {object}  dto.ListResponse[dto.BatchResponse]
// @Router       /api/batches/scheduled [get]
func (h *BatchHandler) ListScheduled(c *fiber.Ctx) error {
	asOf, ok := asOfParam(c)
	if !ok {
		return badAsOf(c)
	}
	out, err := h.batches.ListScheduled(c.UserContext(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// Update volumen, notas y fecha estimada de fin.
func (h *BatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.batches.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un batch sin consumos registrados.
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.batches.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Schedule DRAFT/SCHEDULED -> SCHEDULED.
func (h *BatchHandler) Schedule(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.batches.Schedule(c.UserContext(), c.Params("id"), in.Date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Start SCHEDULED -> IN_PROGRESS.
func (h *BatchHandler) Start(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.batches.Start(c.UserContext(), c.Params("id"), in.Date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Finish godoc
// @Summary      Terminar batch
// @Description  IN_PROGRESS -> FINISHED con mediciones post-brew. Si la política es on_finish consume
//
//	los ingredientes de la receta escalados al volumen del batch; si falta alguno responde
//	409 INSUFFICIENT_INVENTORY con el detalle de todos los faltantes y el batch no cambia.
//
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del batch"
// @Param        body  body  dto.FinishBatchRequest  true  "date, og, fg, abv, ibu, taste_rating, notes"
// @Success      200   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/finish [post]
func (h *BatchHandler) Finish(c *fiber.Ctx) error {
	var in dto.FinishBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.batches.Finish(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CorrectDates reemplaza las tres fechas del ciclo de vida.
func (h *BatchHandler) CorrectDates(c *fiber.Ctx) error {
	var in dto.CorrectDatesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.batches.CorrectDates(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Rack trasiega un batch terminado a producto envasado.
func (h *BatchHandler) Rack(c *fiber.Ctx) error {
	var in dto.RackProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.products.Rack(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProducts producto envasado del batch.
func (h *BatchHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.products.ListByBatch(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// Deplete descuenta producto envasado.
func (h *BatchHandler) Deplete(c *fiber.Ctx) error {
	var in dto.DepleteProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.products.Deplete(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
