package handlers

import (
	"errors"
	"strconv"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EventHandler etkinlik yönetimi uçları (oturum gerektirir).
type EventHandler struct {
	service services.IEventService
}

// NewEventHandler yeni bir EventHandler örneği oluşturur.
func NewEventHandler(service services.IEventService) *EventHandler {
	return &EventHandler{service: service}
}

// parseIDParam URL'deki sayısal parametreyi okur.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("geçersiz ID")
	}
	return uint(id), nil
}

// eventErrorStatus servis hatasını HTTP durum koduna çevirir.
func eventErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrEventForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrEventTitleRequired),
		errors.Is(err, services.ErrEventDateInPast),
		errors.Is(err, services.ErrEventInvalidInput),
		errors.Is(err, services.ErrPackageUnknownTier):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// CreateEvent (POST /api/events)
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)

	var input services.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	event, err := h.service.CreateEvent(c.UserContext(), userID, input)
	if err != nil {
		status := eventErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("CreateEvent handler hatası", zap.Uint("userID", userID), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(h.service.BuildEventResponse(event))
}

// ListEvents (GET /api/events) kullanıcının etkinliklerini sayfalı döner.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetEventsForUser(c.UserContext(), userID, params)
	if err != nil {
		configslog.Log.Error("ListEvents handler hatası", zap.Uint("userID", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "etkinlikler listelenemedi"})
	}
	return c.JSON(result)
}

// GetEvent (GET /api/events/:id)
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	event, err := h.service.GetEventByID(c.UserContext(), id, middlewares.CurrentUserID(c))
	if err != nil {
		return c.Status(eventErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.service.BuildEventResponse(event))
}

// UpdateEvent (PUT /api/events/:id) kısmi günceller; slug asla değişmez.
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input services.UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	event, err := h.service.UpdateEvent(c.UserContext(), id, middlewares.CurrentUserID(c), input)
	if err != nil {
		status := eventErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("UpdateEvent handler hatası", zap.Uint("eventID", id), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.service.BuildEventResponse(event))
}

// DeleteEvent (DELETE /api/events/:id)
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.DeleteEvent(c.UserContext(), id, middlewares.CurrentUserID(c)); err != nil {
		return c.Status(eventErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetEventStats (GET /api/events/:id/stats)
func (h *EventHandler) GetEventStats(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	stats, err := h.service.GetEventStats(c.UserContext(), id, middlewares.CurrentUserID(c))
	if err != nil {
		return c.Status(eventErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}
