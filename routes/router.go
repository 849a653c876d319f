package routes

import (
	apihandlers "teklif.link/handlers/api"
	authhandlers "teklif.link/handlers/auth"
	linkhandlers "teklif.link/handlers/link"
	panelhandlers "teklif.link/handlers/panel"
	"teklif.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Handlers route kaydı için gereken handler örnekleri. main.go'da
// servislerle birlikte kurulup buraya verilir.
type Handlers struct {
	Auth  *authhandlers.AuthHandler
	Link  *linkhandlers.FormLinkHandler
	API   *apihandlers.VerificationHandler
	Panel *panelhandlers.PanelFormLinkHandler
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, h Handlers, sessionStore *session.Store) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(initializeSessionAndLocals(sessionStore))

	// --- Rota Grupları ---
	registerAuthRoutes(app, h.Auth)
	registerPanelRoutes(app, h.Panel)
	registerAPIRoutes(app, h.API)

	// Public form rotası diğer gruplardan sonra gelmeli.
	registerPublicFormRoutes(app, h.Link)

	app.Get("/", rootRedirector)

	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

// initializeSessionAndLocals session store'u ve oturum bilgilerini locals'a koyar.
func initializeSessionAndLocals(sessionStore *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", sessionStore)
		sess, err := utils.SessionStart(c)
		if err != nil {
			return c.Next()
		}
		if userID, idErr := utils.GetUserIDFromSession(sess); idErr == nil {
			c.Locals("userID", userID)
		}
		if isSystem, sysErr := utils.GetIsSystemFromSession(sess); sysErr == nil {
			c.Locals("isSystem", isSystem)
		}
		if userName, ok := sess.Get(utils.SessionKeyUserName).(string); ok {
			c.Locals("userName", userName)
		}
		return c.Next()
	}
}

// rootRedirector oturuma göre panele veya girişe yönlendirir.
func rootRedirector(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return c.Redirect("/panel/form-links", fiber.StatusFound)
	}
	return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
}

// notFoundHandler eşleşmeyen istekler için 404 döner.
func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "NotFound"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
	}
}
