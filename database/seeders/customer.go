package seeders

import (
	"errors"
	"os"

	"teklif.link/configs/configslog"
	"teklif.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDemoCustomer geliştirme ortamı için örnek müşteri oluşturur.
// Production'da çalışmaz; müşteri kayıtları CRM'den gelir.
func SeedDemoCustomer(db *gorm.DB) error {
	if os.Getenv("APP_ENV") == "production" {
		configslog.SLog.Debug("Production ortamında demo müşteri seed edilmez.")
		return nil
	}

	var existing models.Customer
	result := db.Where("email = ?", "demo@example.com").First(&existing)
	if result.Error == nil {
		configslog.SLog.Debug("Demo müşteri zaten mevcut, oluşturma atlanıyor.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Demo müşteri kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	customer := models.Customer{
		Name:    "Demo Müşteri A.Ş.",
		Email:   "demo@example.com",
		Phone:   "+90 212 000 00 00",
		Address: "Örnek Mah. Deneme Cad. No:1, İstanbul",
	}
	if err := db.Create(&customer).Error; err != nil {
		configslog.Log.Error("Demo müşteri oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Demo müşteri oluşturuldu (ID: %d).", customer.ID)
	return nil
}
