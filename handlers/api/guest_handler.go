package handlers

import (
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GuestHandler misafir yönetimi uçları (oturum gerektirir).
type GuestHandler struct {
	service services.IGuestService
}

// NewGuestHandler yeni bir GuestHandler örneği oluşturur.
func NewGuestHandler(service services.IGuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

func guestErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrGuestNotFound), errors.Is(err, services.ErrEventNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrGuestForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrGuestLimitExceeded):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrGuestNameRequired), errors.Is(err, services.ErrGuestInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// AddGuest (POST /api/events/:id/guests)
func (h *GuestHandler) AddGuest(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input services.GuestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	guest, err := h.service.AddGuest(c.UserContext(), eventID, middlewares.CurrentUserID(c), input)
	if err != nil {
		status := guestErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("AddGuest handler hatası", zap.Uint("eventID", eventID), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(h.service.GuestResponse(guest))
}

// BulkImportGuests (POST /api/events/:id/guests/bulk)
// Satır bazlı hatalar yanıt gövdesinde döner; geçerli satırlar işlenir.
func (h *GuestHandler) BulkImportGuests(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var body struct {
		Guests []services.GuestInput `json:"guests"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if len(body.Guests) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "en az bir misafir gönderilmelidir"})
	}

	result, err := h.service.BulkImportGuests(c.UserContext(), eventID, middlewares.CurrentUserID(c), body.Guests)
	if err != nil {
		return c.Status(guestErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// ListGuests (GET /api/events/:id/guests)
func (h *GuestHandler) ListGuests(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	guests, err := h.service.ListGuests(c.UserContext(), eventID, middlewares.CurrentUserID(c))
	if err != nil {
		return c.Status(guestErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(guests)
}

// UpdateGuest (PUT /api/events/:id/guests/:guestId)
func (h *GuestHandler) UpdateGuest(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	guestID, err := parseIDParam(c, "guestId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input services.GuestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	guest, err := h.service.UpdateGuest(c.UserContext(), eventID, guestID, middlewares.CurrentUserID(c), input)
	if err != nil {
		return c.Status(guestErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.service.GuestResponse(guest))
}

// DeleteGuest (DELETE /api/events/:id/guests/:guestId)
func (h *GuestHandler) DeleteGuest(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	guestID, err := parseIDParam(c, "guestId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.DeleteGuest(c.UserContext(), eventID, guestID, middlewares.CurrentUserID(c)); err != nil {
		return c.Status(guestErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
