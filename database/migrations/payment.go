package migrations

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigratePaymentsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating payments table...")
	if err := db.AutoMigrate(&models.Payment{}); err != nil {
		configslog.Log.Error("Failed to migrate payments table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Payments table migrated successfully")
	return nil
}
