package routes

import (
	panelhandlers "teklif.link/handlers/panel"

	"github.com/gofiber/fiber/v2"
)

// requireAuth oturum açmamış istekleri girişe yönlendirir.
func requireAuth(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	return c.Next()
}

// registerPanelRoutes personel panel rotalarını tanımlar.
func registerPanelRoutes(app *fiber.App, h *panelhandlers.PanelFormLinkHandler) {
	panel := app.Group("/panel", requireAuth)

	panel.Get("/form-links", h.ListFormLinks)
	panel.Get("/form-links/create", h.ShowCreateFormLink)
	panel.Post("/form-links", h.CreateFormLink)
	panel.Get("/form-links/:id", h.ShowFormLink)
	panel.Post("/form-links/:id/decide", h.DecideFormLink)
	panel.Post("/form-links/:id/delete", h.DeleteFormLink)
}
