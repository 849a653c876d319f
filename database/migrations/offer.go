package migrations

import (
	"teklif.link/configs/configslog"
	"teklif.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateOffersTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating offers & offer_details tables...")
	if err := db.AutoMigrate(&models.Offer{}, &models.OfferDetail{}); err != nil {
		configslog.Log.Error("Failed to migrate offers & offer_details tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Offers & offer_details tables migrated successfully")
	return nil
}
