package migrations

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateEventTablesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating event_tables table...")
	if err := db.AutoMigrate(&models.EventTable{}); err != nil {
		configslog.Log.Error("Failed to migrate event_tables table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Event_tables table migrated successfully")
	return nil
}
