package handlers

import (
	"teklif.link/configs/configslog"
	"teklif.link/pkg/flashmessages"
	"teklif.link/pkg/renderer"
	"teklif.link/services"
	"teklif.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler panel giriş/çıkış işlemlerini yönetir.
type AuthHandler struct {
	authService services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler(authService services.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// ShowLogin (GET /auth/login) giriş formunu gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	renderData := fiber.Map{"Title": "Giriş"}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "auth/login", "layouts/auth_layout", renderData)
}

// Login (POST /auth/login) kullanıcıyı doğrular ve oturum açar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.authService.Authenticate(c.UserContext(), email, password)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Login: session başlatılamadı", zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	if err := utils.SetUserSession(sess, user.ID, user.Name, user.IsSystem); err != nil {
		configslog.Log.Error("Login: session yazılamadı", zap.Uint("user_id", user.ID), zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	configslog.SLog.Infof("Kullanıcı giriş yaptı: %d (%s)", user.ID, user.Email)
	return c.Redirect("/panel/form-links", fiber.StatusFound)
}

// Logout (POST /auth/logout) oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err == nil {
		_ = utils.DestroySession(sess)
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}
