package handlers

import (
	"errors"
	"regexp"

	"teklif.link/configs/configslog"
	"teklif.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// tokenPattern public token'ın sabit formatı. Lookuptan önce kontrol edilir;
// formata uymayan istekler veritabanına hiç gitmez.
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9]{32}$`)

// FormLinkHandler public form isteklerini yönetir. Token tek taşıyıcı
// kimliktir; başka bir doğrulama yoktur.
type FormLinkHandler struct {
	validationService services.IFormLinkValidationService
	submissionService services.ISubmissionService
}

// NewFormLinkHandler yeni bir FormLinkHandler örneği oluşturur.
func NewFormLinkHandler(validationService services.IFormLinkValidationService, submissionService services.ISubmissionService) *FormLinkHandler {
	return &FormLinkHandler{
		validationService: validationService,
		submissionService: submissionService,
	}
}

// ShowForm (GET /form/:token) token'ı doğrular ve form sayfasını gösterir.
func (h *FormLinkHandler) ShowForm(c *fiber.Ctx) error {
	token := c.Params("token")
	if !tokenPattern.MatchString(token) {
		configslog.SLog.Warnf("Geçersiz formatta token denendi: %.40s", token)
		return h.renderNotFound(c, "Geçersiz Link")
	}

	result, err := h.validationService.ValidateToken(c.UserContext(), token)
	if err != nil {
		configslog.Log.Error("ShowForm: ValidateToken error", zap.Error(err))
		return h.renderError(c, "Form bilgileri alınırken bir sorun oluştu.")
	}

	if !result.IsValid {
		switch result.Reason {
		case services.ValidationReasonExpired:
			return c.Status(fiber.StatusGone).Render("public/form_expired", fiber.Map{
				"Title": "Linkin Süresi Doldu",
			}, "layouts/public_layout")
		case services.ValidationReasonAlreadyFinalized:
			return c.Status(fiber.StatusConflict).Render("public/form_finalized", fiber.Map{
				"Title": "Form Tamamlandı",
			}, "layouts/public_layout")
		default:
			return h.renderNotFound(c, "Link Bulunamadı")
		}
	}

	// Gönderilmiş ama henüz karara bağlanmamış link: formu tekrar göstermek
	// yerine teşekkür sayfası.
	if result.FormLink.IsUsed {
		return c.Render("public/form_submitted", fiber.Map{
			"Title": "Formunuz Alındı",
		}, "layouts/public_layout")
	}

	return c.Render("public/form_fill", fiber.Map{
		"Title":        "Bilgi Formu",
		"Token":        token,
		"CustomerName": result.Customer.Name,
		"ExpiresAt":    result.FormLink.ExpiresAt,
	}, "layouts/public_layout")
}

// SubmitForm (POST /form/:token) gönderimi işler ve envelope JSON döner.
func (h *FormLinkHandler) SubmitForm(c *fiber.Ctx) error {
	token := c.Params("token")
	if !tokenPattern.MatchString(token) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   string(services.ErrNotFound),
		})
	}

	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		configslog.Log.Warn("SubmitForm: gönderim verisi parse edilemedi", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   string(services.ErrValidation),
		})
	}

	link, err := h.submissionService.SubmitForm(c.UserContext(), token, payload)
	if err != nil {
		status := submissionErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("SubmitForm Error", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   services.ErrorMessage(err),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"status":      link.Status,
			"submittedAt": link.SubmittedAt,
		},
	})
}

func submissionErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrExpired):
		return fiber.StatusGone
	case errors.Is(err, services.ErrAlreadyUsed), errors.Is(err, services.ErrAlreadyFinalized):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// renderNotFound standart 404 sayfasını render eder.
func (h *FormLinkHandler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Bulunamadı",
		"Message": message,
	}, "layouts/error_layout")
}

// renderError standart 500 hata sayfasını render eder.
func (h *FormLinkHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": message,
	}, "layouts/error_layout")
}
