package routes

import (
	apihandlers "teklif.link/handlers/api"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes sunucular arası doğrulama API rotalarını tanımlar.
// Kimlik doğrulama istek gövdesindeki API anahtarıyla yapılır (servis katmanı).
func registerAPIRoutes(app *fiber.App, h *apihandlers.VerificationHandler) {
	api := app.Group("/api/v1")
	api.Post("/form-links/verify", h.VerifyToken)
}
