package handlers

import (
	"errors"

	"teklif.link/configs/configslog"
	"teklif.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VerificationRequest dış sistemden gelen doğrulama isteği.
type VerificationRequest struct {
	Token  string `json:"token"`
	APIKey string `json:"apiKey"`
}

// VerificationHandler sunucular arası token doğrulama API'sini yönetir.
type VerificationHandler struct {
	verificationService services.IVerificationService
}

// NewVerificationHandler yeni bir VerificationHandler örneği oluşturur.
func NewVerificationHandler(verificationService services.IVerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// VerifyToken (POST /api/v1/form-links/verify) token'ı API anahtarıyla
// doğrular. Anahtar geçersizse istek token lookup'ına hiç ulaşmaz.
func (h *VerificationHandler) VerifyToken(c *fiber.Ctx) error {
	var req VerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   string(services.ErrValidation),
		})
	}

	data, err := h.verificationService.VerifyToken(c.UserContext(), req.Token, req.APIKey)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   string(services.ErrPermissionDenied),
			})
		case errors.Is(err, services.ErrNotFound),
			errors.Is(err, services.ErrExpired),
			errors.Is(err, services.ErrAlreadyFinalized):
			// Sınıflandırma sonucu: çağrı başarılı, token kullanılamaz.
			return c.JSON(fiber.Map{
				"success": false,
				"error":   services.ErrorMessage(err),
			})
		default:
			configslog.Log.Error("VerifyToken Error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   string(services.ErrPersistence),
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
