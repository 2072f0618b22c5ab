package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// asOfParam lee ?as_of= (RFC3339 o AAAA-MM-DD). Ausente = ahora.
func asOfParam(c *fiber.Ctx) (time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func badAsOf(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "INVALID_AS_OF", "message": "as_of debe ser RFC3339 o AAAA-MM-DD"})
}
