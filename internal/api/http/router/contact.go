package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/portfolio_backend/internal/api/http/handler"
)

// Only submissions are rate limited; validation runs on every blur.
func (r *Router) registerContactRoutes(api fiber.Router, h *handler.ContactHandler, limiter fiber.Handler) {
	c := api.Group("/contact")
	c.Post("/", limiter, h.Submit)
	c.Post("/validate", h.ValidateField)
}
