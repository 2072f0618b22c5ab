package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brewery-tracker-api/internal/application/brewing"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
)

// RecipeHandler recetas y sus proyecciones de agenda.
type RecipeHandler struct {
	recipes *brewing.RecipeUseCase
	batches *brewing.BatchUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(recipes *brewing.RecipeUseCase, batches *brewing.BatchUseCase) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, batches: batches}
}

// Create godoc
// @Summary      Crear receta
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "name, style_id, volume, ingredients"
// @Success      201   {object}  dto.RecipeDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.recipes.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID receta con ingredientes, nombre y unidad.
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.recipes.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar receta
// @Description  row_version, si se envía, debe coincidir con la almacenada (409 CONCURRENCY_CONFLICT si no).
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la receta"
// @Param        body  body  dto.UpdateRecipeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RecipeDetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.recipes.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una receta sin batches.
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.recipes.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar recetas con último brew y agenda
// @Tags         recipes
// @Produce      json
// @Param        as_of  query  string  false  "Fecha de referencia (RFC3339 o AAAA-MM-DD); por defecto ahora"
// @Success      200    {object}  dto.ListResponse[dto.RecipeScheduleDTO]
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	asOf, ok := asOfParam(c)
	if !ok {
		return badAsOf(c)
	}
	out, err := h.recipes.ListWithLastBrewed(c.UserContext(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// LastBrewed fecha del último inicio de batch no posterior a as_of.
func (h *RecipeHandler) LastBrewed(c *fiber.Ctx) error {
	asOf, ok := asOfParam(c)
	if !ok {
		return badAsOf(c)
	}
	id := c.Params("id")
	last, err := h.recipes.LastBrewed(c.UserContext(), id, asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"recipe_id": id, "last_brewed": last})
}

// UpcomingSchedule fechas programadas futuras de la receta, ascendentes.
func (h *RecipeHandler) UpcomingSchedule(c *fiber.Ctx) error {
	asOf, ok := asOfParam(c)
	if !ok {
		return badAsOf(c)
	}
	id := c.Params("id")
	dates, err := h.recipes.UpcomingSchedule(c.UserContext(), id, asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"recipe_id": id, "scheduled_dates": dates})
}

// Batches batches de la receta.
func (h *RecipeHandler) Batches(c *fiber.Ctx) error {
	out, err := h.batches.ListByRecipe(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}
