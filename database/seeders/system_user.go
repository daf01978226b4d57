package seeders

import (
	"errors"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser sistem kullanıcısını oluşturur veya şifresini ortamdaki
// değerle eşitler. Sistem kullanıcısı tüm etkinlikler üzerinde yönetim
// yetkisine sahiptir.
func SeedSystemUser(db *gorm.DB) error {
	email := configs.GetEnv("SYSTEM_USER_EMAIL", "sistem@etkinlik.link")
	password := configs.GetEnv("SYSTEM_USER_PASSWORD", "")
	if password == "" {
		configslog.SLog.Warn("SYSTEM_USER_PASSWORD tanımlı değil, sistem kullanıcısı seed edilmeyecek.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), configs.GetBcryptCost())
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		existing.PasswordHash = string(hash)
		existing.IsSystem = true
		if err := db.Save(&existing).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.Error(err))
			return err
		}
		configslog.SLog.Info("Sistem kullanıcısı güncellendi.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Sistem",
		LastName:     "Yöneticisi",
		IsSystem:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu: ID %d", user.ID)
	return nil
}
