package migrations

import (
	"teklif.link/configs/configslog"
	"teklif.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFormLinksTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating form_links table...")
	if err := db.AutoMigrate(&models.FormLink{}); err != nil {
		configslog.Log.Error("Failed to migrate form_links table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Form_links table migrated successfully")
	return nil
}
