package handlers

import (
	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// RSVPHandler etkinlik sahibinin LCV görünümü uçlarını yönetir.
type RSVPHandler struct {
	service services.IRSVPService
}

func NewRSVPHandler(service services.IRSVPService) *RSVPHandler {
	return &RSVPHandler{service: service}
}

// ListEventRSVPs GET /api/events/:id/rsvps
func (h *RSVPHandler) ListEventRSVPs(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rsvps, err := h.service.ListForEvent(c.UserContext(), eventID, middlewares.CurrentUserID(c))
	if err != nil {
		return c.Status(eventErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"rsvps": rsvps, "count": len(rsvps)})
}
