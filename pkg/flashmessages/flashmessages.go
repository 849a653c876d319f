package flashmessages

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Flash mesaj anahtarları
const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
)

// FlashData bir istekte gösterilecek flash mesajları.
type FlashData struct {
	Success string
	Error   string
}

func sessionFromCtx(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, fiber.ErrInternalServerError
	}
	return store.Get(c)
}

// SetFlashMessage bir sonraki istekte okunacak flash mesajı yazar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := sessionFromCtx(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages flash mesajları okur ve session'dan temizler.
func GetFlashMessages(c *fiber.Ctx) FlashData {
	var data FlashData
	sess, err := sessionFromCtx(c)
	if err != nil {
		return data
	}
	if msg, ok := sess.Get(FlashSuccessKey).(string); ok {
		data.Success = msg
		sess.Delete(FlashSuccessKey)
	}
	if msg, ok := sess.Get(FlashErrorKey).(string); ok {
		data.Error = msg
		sess.Delete(FlashErrorKey)
	}
	_ = sess.Save()
	return data
}
