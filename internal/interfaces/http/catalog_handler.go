package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// CatalogHandler unidades de medida y estilos.
type CatalogHandler struct {
	uc *inventory.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *inventory.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

type catalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *CatalogHandler) ListUnitTypes(c *fiber.Ctx) error {
	list, err := h.uc.UnitTypes(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]catalogEntry, 0, len(list))
	for _, u := range list {
		out = append(out, catalogEntry{ID: u.ID, Name: u.Name})
	}
	return c.JSON(dto.NewListResponse(out))
}

func (h *CatalogHandler) PutUnitType(c *fiber.Ctx) error {
	var in catalogEntry
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ID = c.Params("id")
	if err := h.uc.PutUnitType(c.UserContext(), entity.UnitType{ID: in.ID, Name: in.Name}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(in)
}

func (h *CatalogHandler) ListStyles(c *fiber.Ctx) error {
	list, err := h.uc.Styles(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]catalogEntry, 0, len(list))
	for _, s := range list {
		out = append(out, catalogEntry{ID: s.ID, Name: s.Name})
	}
	return c.JSON(dto.NewListResponse(out))
}

func (h *CatalogHandler) PutStyle(c *fiber.Ctx) error {
	var in catalogEntry
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ID = c.Params("id")
	if err := h.uc.PutStyle(c.UserContext(), entity.Style{ID: in.ID, Name: in.Name}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(in)
}
