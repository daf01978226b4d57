package handlers

import (
	"errors"

	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// TableHandler oturma düzeni uçları. Masa yönetimi "table-management"
// yetkisi olmayan etkinliklerde 402 ile reddedilir.
type TableHandler struct {
	service services.ITableService
}

// NewTableHandler yeni bir TableHandler örneği oluşturur.
func NewTableHandler(service services.ITableService) *TableHandler {
	return &TableHandler{service: service}
}

func tableErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrTableNotFound), errors.Is(err, services.ErrEventNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrEventForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrTableFeatureRequired):
		return fiber.StatusPaymentRequired
	case errors.Is(err, services.ErrTableNameRequired), errors.Is(err, services.ErrTableInvalidCapacity):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// CreateTable (POST /api/events/:id/tables)
func (h *TableHandler) CreateTable(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input services.TableInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	table, err := h.service.CreateTable(c.UserContext(), eventID, middlewares.CurrentUserID(c), input)
	if err != nil {
		return c.Status(tableErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(table)
}

// ListTables (GET /api/events/:id/tables)
func (h *TableHandler) ListTables(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tables, err := h.service.ListTables(c.UserContext(), eventID, middlewares.CurrentUserID(c))
	if err != nil {
		return c.Status(tableErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(tables)
}

// UpdateTable (PUT /api/events/:id/tables/:tableId)
func (h *TableHandler) UpdateTable(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	tableID, err := parseIDParam(c, "tableId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input services.TableInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	table, err := h.service.UpdateTable(c.UserContext(), eventID, tableID, middlewares.CurrentUserID(c), input)
	if err != nil {
		return c.Status(tableErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(table)
}

// DeleteTable (DELETE /api/events/:id/tables/:tableId)
func (h *TableHandler) DeleteTable(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	tableID, err := parseIDParam(c, "tableId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.DeleteTable(c.UserContext(), eventID, tableID, middlewares.CurrentUserID(c)); err != nil {
		return c.Status(tableErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
