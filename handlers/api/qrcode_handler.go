package handlers

import (
	"fmt"

	"etkinlik.link/configs"
	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
)

// QRCodeHandler etkinliğin public davet adresi için QR kod üretir.
// "qr-code" ek hizmeti paket yetkisinde yoksa 402 döner.
type QRCodeHandler struct {
	service services.IEventService
}

// NewQRCodeHandler yeni bir QRCodeHandler örneği oluşturur.
func NewQRCodeHandler(service services.IEventService) *QRCodeHandler {
	return &QRCodeHandler{service: service}
}

// EventQRCode (GET /api/events/:id/qrcode) PNG döner.
func (h *QRCodeHandler) EventQRCode(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	event, err := h.service.GetEventByID(c.UserContext(), eventID, middlewares.CurrentUserID(c))
	if err != nil {
		return c.Status(eventErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if !h.service.CanUseFeature(event, "qr-code") {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "QR kod bu etkinliğin paketine dahil değil"})
	}

	size := c.QueryInt("size", 256)
	if size < 64 || size > 1024 {
		size = 256
	}

	url := fmt.Sprintf("%s/e/%s", configs.GetPublicBaseURL(), event.Slug)
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "QR kod üretilemedi"})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
