package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) loglama için global zap logger.
// SLog aynı logger'ın sugared versiyonudur (printf tarzı kullanım için).
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger global logger'ları ortama göre başlatır.
// APP_ENV=production ise JSON formatlı production config,
// aksi halde renkli development config kullanılır.
func InitLogger() {
	env := os.Getenv("APP_ENV")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger kurulamazsa uygulama devam edemez.
		panic("zap logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// Sync buffer'daki logları flush eder. main'de defer ile çağrılmalı.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func init() {
	// Testler ve erken init sırasında nil pointer olmaması için
	// varsayılan olarak no-op olmayan bir development logger kur.
	if Log == nil {
		InitLogger()
	}
}
