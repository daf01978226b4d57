package routes

import (
	api_handlers "etkinlik.link/handlers/api"
	public_handlers "etkinlik.link/handlers/public"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes oturum gerektirmeyen uçları bağlar: paket
// kataloğu, slug ile etkinlik sayfası ve token ile kişisel davet.
func registerPublicRoutes(
	app *fiber.App,
	packageService services.IPackageService,
	eventService services.IEventService,
	guestService services.IGuestService,
	rsvpService services.IRSVPService,
) {
	packageHandler := api_handlers.NewPackageHandler(packageService)
	publicHandler := public_handlers.NewPublicHandler(eventService, guestService, rsvpService)

	api := app.Group("/api")

	api.Get("/packages", packageHandler.ListPackages)
	api.Post("/packages/calculate-price", packageHandler.CalculatePrice)

	public := api.Group("/public")
	public.Get("/events/:slug", publicHandler.GetEventBySlug)
	public.Get("/invites/:customLink", publicHandler.GetInvite)
	public.Post("/invites/:customLink/rsvp", publicHandler.SubmitRSVP)
	public.Get("/invites/:customLink/qr", publicHandler.InviteQRCode)
}
