package routes

import (
	api_handlers "etkinlik.link/handlers/api" // İsim çakışmasını önlemek için alias
	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes oturum gerektiren yönetim uçlarını bağlar.
func registerAPIRoutes(
	app *fiber.App,
	authService services.IAuthService,
	eventService services.IEventService,
	guestService services.IGuestService,
	rsvpService services.IRSVPService,
	tableService services.ITableService,
	paymentService services.IPaymentService,
) {
	authHandler := api_handlers.NewAuthHandler(authService)
	eventHandler := api_handlers.NewEventHandler(eventService)
	guestHandler := api_handlers.NewGuestHandler(guestService)
	rsvpHandler := api_handlers.NewRSVPHandler(rsvpService)
	tableHandler := api_handlers.NewTableHandler(tableService)
	paymentHandler := api_handlers.NewPaymentHandler(paymentService)
	qrHandler := api_handlers.NewQRCodeHandler(eventService)

	api := app.Group("/api")

	// Kimlik doğrulama (oturumsuz)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Oturum gerektiren uçlar
	protected := api.Group("", middlewares.AuthMiddleware(authService))

	events := protected.Group("/events")
	events.Post("", eventHandler.CreateEvent)
	events.Get("", eventHandler.ListEvents)
	events.Get("/:id", eventHandler.GetEvent)
	events.Put("/:id", eventHandler.UpdateEvent)
	events.Delete("/:id", eventHandler.DeleteEvent)
	events.Get("/:id/stats", eventHandler.GetEventStats)
	events.Get("/:id/qrcode", qrHandler.EventQRCode)

	events.Post("/:id/guests", guestHandler.AddGuest)
	events.Post("/:id/guests/bulk", guestHandler.BulkImportGuests)
	events.Get("/:id/guests", guestHandler.ListGuests)
	events.Put("/:id/guests/:guestId", guestHandler.UpdateGuest)
	events.Delete("/:id/guests/:guestId", guestHandler.DeleteGuest)

	events.Get("/:id/rsvps", rsvpHandler.ListEventRSVPs)

	events.Post("/:id/tables", tableHandler.CreateTable)
	events.Get("/:id/tables", tableHandler.ListTables)
	events.Put("/:id/tables/:tableId", tableHandler.UpdateTable)
	events.Delete("/:id/tables/:tableId", tableHandler.DeleteTable)

	events.Post("/:id/payments", paymentHandler.RecordPayment)
	events.Get("/:id/payments", paymentHandler.ListEventPayments)
	protected.Get("/payments", paymentHandler.ListMyPayments)
}
