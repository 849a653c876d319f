package routes

import (
	authhandlers "teklif.link/handlers/auth"

	"github.com/gofiber/fiber/v2"
)

// registerAuthRoutes giriş/çıkış rotalarını tanımlar.
func registerAuthRoutes(app *fiber.App, h *authhandlers.AuthHandler) {
	auth := app.Group("/auth")
	auth.Get("/login", h.ShowLogin)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
}
