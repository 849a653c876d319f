package routes

import (
	linkhandlers "teklif.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicFormRoutes public form rotalarını tanımlar.
// Token URL'deki tek taşıyıcı kimliktir.
func registerPublicFormRoutes(app *fiber.App, h *linkhandlers.FormLinkHandler) {
	app.Get("/form/:token", h.ShowForm)
	app.Post("/form/:token", h.SubmitForm)
}
