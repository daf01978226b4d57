package handlers

import (
	"errors"

	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler ödeme kaydı uçları.
type PaymentHandler struct {
	service services.IPaymentService
}

// NewPaymentHandler yeni bir PaymentHandler örneği oluşturur.
func NewPaymentHandler(service services.IPaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func paymentErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrEventNotFound), errors.Is(err, services.ErrPaymentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrEventForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrPaymentAlreadyPaid):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RecordPayment (POST /api/events/:id/payments)
// Etkinliğin snapshot tutarı üzerinden tamamlanmış ödeme kaydeder.
func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var body struct {
		Description string `json:"description"`
	}
	_ = c.BodyParser(&body) // gövde opsiyonel

	payment, err := h.service.RecordPayment(c.UserContext(), eventID, middlewares.CurrentUserID(c), body.Description)
	if err != nil {
		return c.Status(paymentErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// ListMyPayments (GET /api/payments)
func (h *PaymentHandler) ListMyPayments(c *fiber.Ctx) error {
	payments, err := h.service.ListPaymentsForUser(c.UserContext(), middlewares.CurrentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ödemeler listelenemedi"})
	}
	return c.JSON(payments)
}

// ListEventPayments (GET /api/events/:id/payments)
func (h *PaymentHandler) ListEventPayments(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payments, err := h.service.ListPaymentsForEvent(c.UserContext(), eventID, middlewares.CurrentUserID(c))
	if err != nil {
		return c.Status(paymentErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(payments)
}
