package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

// HealthHandler probes de liveness y readiness.
type HealthHandler struct {
	service string
	checker repository.HealthChecker
}

// NewHealthHandler construye el handler.
func NewHealthHandler(service string, checker repository.HealthChecker) *HealthHandler {
	return &HealthHandler{service: service, checker: checker}
}

// Live responde mientras el proceso esté vivo.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}

// Ready verifica conexión y consulta sobre el almacenamiento.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	connect := h.checker.CanConnect(c.UserContext())
	query := connect && h.checker.CanQuery(c.UserContext())
	body := fiber.Map{"service": h.service, "can_connect": connect, "can_query": query}
	if !query {
		body["status"] = "unavailable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	}
	body["status"] = "ok"
	return c.JSON(body)
}
