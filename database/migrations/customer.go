package migrations

import (
	"teklif.link/configs/configslog"
	"teklif.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateCustomersTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating customers table...")
	if err := db.AutoMigrate(&models.Customer{}); err != nil {
		configslog.Log.Error("Failed to migrate customers table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Customers table migrated successfully")
	return nil
}
