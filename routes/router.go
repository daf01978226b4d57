package routes

import (
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
// Servisler bir kez kurulur ve rota gruplarına paylaştırılır.
func SetupRoutes(app *fiber.App) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(cors.New())              // React istemcisi farklı origin'den çağırır

	authService := services.NewAuthService()
	packageService := services.NewPackageService()
	eventService := services.NewEventService()
	guestService := services.NewGuestService()
	rsvpService := services.NewRSVPService()
	tableService := services.NewTableService()
	paymentService := services.NewPaymentService()

	// --- Rota Grupları ---
	registerPublicRoutes(app, packageService, eventService, guestService, rsvpService)
	registerAPIRoutes(app, authService, eventService, guestService, rsvpService, tableService, paymentService)

	// --- 404 Handler ---
	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "kaynak bulunamadı"})
}
