package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session anahtarları
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUserName = "user_name"
	SessionKeyIsSystem = "is_system"
)

// SessionStart istekteki session'ı başlatır/yükler.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, errors.New("session store bulunamadı")
	}
	return store.Get(c)
}

// GetUserIDFromSession oturumdaki kullanıcı ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	userID, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok || userID == 0 {
		return 0, errors.New("oturumda kullanıcı yok")
	}
	return userID, nil
}

// GetIsSystemFromSession oturumdaki sistem kullanıcısı bayrağını döndürür.
func GetIsSystemFromSession(sess *session.Session) (bool, error) {
	isSystem, ok := sess.Get(SessionKeyIsSystem).(bool)
	if !ok {
		return false, errors.New("oturumda is_system bilgisi yok")
	}
	return isSystem, nil
}

// SetUserSession login sonrası oturum bilgilerini yazar.
func SetUserSession(sess *session.Session, userID uint, userName string, isSystem bool) error {
	sess.Set(SessionKeyUserID, userID)
	sess.Set(SessionKeyUserName, userName)
	sess.Set(SessionKeyIsSystem, isSystem)
	return sess.Save()
}

// DestroySession oturumu sonlandırır (logout).
func DestroySession(sess *session.Session) error {
	return sess.Destroy()
}
