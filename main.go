package main

import (
	"os"
	"os/signal"
	"syscall"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.Sync()

	configs.LoadEnv()
	configs.ConnectDB()
	defer configs.CloseDB()

	// Fiyat alanları JSON'a sayı olarak yazılır, string olarak değil.
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(fiber.Config{
		AppName: "etkinlik.link",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				configslog.Log.Error("İşlenmemiş handler hatası", zap.Error(err))
				return c.Status(code).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	routes.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
		}
	}()

	addr := configs.GetServerPort()
	configslog.SLog.Infof("Sunucu %s adresinde dinliyor", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	configslog.SLog.Info("Sunucu durduruldu.")
}
