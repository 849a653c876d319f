package renderer

import (
	"teklif.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// View'larda kullanılan flash anahtarları
const (
	FlashSuccessKeyView = "FlashSuccess"
	FlashErrorKeyView   = "FlashError"
)

// SetFlashMessages flash mesajları render verisine ekler.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashData) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render verilen view'ı layout ile render eder.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	code := fiber.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	return c.Status(code).Render(view, data, layout)
}
