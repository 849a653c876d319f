package seeders

import (
	"errors"
	"os"

	"teklif.link/configs/configslog"
	"teklif.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser ilk admin kullanıcısını oluşturur. Zaten varsa dokunmaz.
// Şifre SYSTEM_USER_PASSWORD ortam değişkeninden gelir; tanımlı değilse
// seed atlanır (production'da şifresiz admin oluşturulmaz).
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_USER_EMAIL")
	if email == "" {
		email = "admin@teklif.link"
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Sistem kullanıcısı '%s' zaten mevcut, oluşturma atlanıyor.", email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	password := os.Getenv("SYSTEM_USER_PASSWORD")
	if password == "" {
		configslog.SLog.Warn("SYSTEM_USER_PASSWORD tanımlı değil, sistem kullanıcısı seed edilmiyor.")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	user := models.User{
		Name:         "Sistem Yöneticisi",
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		IsSystem:     true,
		IsEnabled:    true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu: %s (ID: %d)", email, user.ID)
	return nil
}
