package configs

import (
	"os"
	"strconv"

	"etkinlik.link/configs/configslog"

	"github.com/joho/godotenv"
)

// LoadEnv .env dosyasını yükler. Dosya yoksa (örn. production'da env
// değişkenleri dışarıdan verilir) sadece uyarı loglanır, hata sayılmaz.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Warn(".env dosyası bulunamadı, mevcut ortam değişkenleri kullanılacak.")
	}
}

// GetEnv bir ortam değişkenini okur, boşsa fallback döner.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvInt bir ortam değişkenini int olarak okur.
func GetEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		configslog.SLog.Warnf("Ortam değişkeni %s sayıya çevrilemedi, varsayılan kullanılıyor: %d", key, fallback)
	}
	return fallback
}

// GetServerPort HTTP sunucusunun dinleyeceği adresi döner.
func GetServerPort() string {
	return ":" + GetEnv("PORT", "3000")
}

// GetJWTSecret token imzalama anahtarını döner.
// Production'da mutlaka ortamdan verilmelidir.
func GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "etkinlik-link-gelistirme-anahtari")
}

// GetJWTExpiryHours access token geçerlilik süresini (saat) döner.
func GetJWTExpiryHours() int {
	return GetEnvInt("JWT_EXPIRY_HOURS", 24)
}

// GetBcryptCost şifre hashleme maliyetini döner.
func GetBcryptCost() int {
	return GetEnvInt("BCRYPT_COST", 12)
}

// GetPublicBaseURL davet linklerinde ve QR kodlarda kullanılan
// dışa açık taban adresi döner (sondaki / olmadan).
func GetPublicBaseURL() string {
	return GetEnv("PUBLIC_BASE_URL", "https://etkinlik.link")
}
