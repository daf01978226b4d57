package handlers

import (
	"errors"
	"fmt"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// PublicHandler oturum gerektirmeyen davet uçları: slug ile etkinlik
// sayfası, opak token ile kişisel davet ve LCV gönderimi.
type PublicHandler struct {
	eventService services.IEventService
	guestService services.IGuestService
	rsvpService  services.IRSVPService
}

// NewPublicHandler yeni bir PublicHandler örneği oluşturur.
func NewPublicHandler(eventService services.IEventService, guestService services.IGuestService, rsvpService services.IRSVPService) *PublicHandler {
	return &PublicHandler{
		eventService: eventService,
		guestService: guestService,
		rsvpService:  rsvpService,
	}
}

// GetEventBySlug (GET /api/public/events/:slug)
// Yalnızca public işaretli etkinlikler döner; fiyat ve ödeme alanları
// yanıta hiç yazılmaz.
func (h *PublicHandler) GetEventBySlug(c *fiber.Ctx) error {
	event, err := h.eventService.GetEventBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("GetEventBySlug handler hatası", zap.String("slug", c.Params("slug")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "etkinlik getirilemedi"})
	}
	return c.JSON(h.eventService.BuildPublicEventResponse(event))
}

// GetInvite (GET /api/public/invites/:customLink)
// Misafirin kişisel davet sayfası: etkinlik bilgisi, misafir adı ve
// varsa mevcut LCV yanıtı bir arada döner.
func (h *PublicHandler) GetInvite(c *fiber.Ctx) error {
	customLink := c.Params("customLink")

	guest, err := h.guestService.GetGuestByCustomLink(c.UserContext(), customLink)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "davet getirilemedi"})
	}

	rsvp, err := h.rsvpService.GetByCustomLink(c.UserContext(), customLink)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "davet getirilemedi"})
	}

	return c.JSON(fiber.Map{
		"guestName": guest.Name,
		"event":     h.eventService.BuildPublicEventResponse(&guest.Event),
		"rsvp": fiber.Map{
			"status":      rsvp.Status,
			"partySize":   rsvp.PartySize,
			"note":        rsvp.Note,
			"submittedAt": rsvp.SubmittedAt,
		},
	})
}

// InviteQRCode (GET /api/public/invites/:customLink/qr)
// Misafirin kişisel davet adresini PNG QR kod olarak döner. Etkinliğin
// paketinde "qr-code" yetkisi yoksa 402 döner.
func (h *PublicHandler) InviteQRCode(c *fiber.Ctx) error {
	customLink := c.Params("customLink")

	guest, err := h.guestService.GetGuestByCustomLink(c.UserContext(), customLink)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "davet getirilemedi"})
	}
	if !h.eventService.CanUseFeature(&guest.Event, "qr-code") {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "QR kod bu etkinliğin paketine dahil değil"})
	}

	size := c.QueryInt("size", 256)
	if size < 64 || size > 1024 {
		size = 256
	}

	url := fmt.Sprintf("%s/i/%s", configs.GetPublicBaseURL(), guest.CustomLink)
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		configslog.Log.Error("InviteQRCode: QR üretim hatası", zap.String("customLink", customLink), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "QR kod üretilemedi"})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// SubmitRSVP (POST /api/public/invites/:customLink/rsvp)
// Misafir başına tek yanıt tutulur; tekrar gönderim öncekini ezer.
func (h *PublicHandler) SubmitRSVP(c *fiber.Ctx) error {
	customLink := c.Params("customLink")

	var input services.SubmitRSVPInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	rsvp, err := h.rsvpService.SubmitByCustomLink(c.UserContext(), customLink, input)
	if err != nil {
		statusCode := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrGuestNotFound):
			statusCode = fiber.StatusNotFound
		case errors.Is(err, services.ErrRSVPInvalidStatus),
			errors.Is(err, services.ErrRSVPInvalidPartySize),
			errors.Is(err, services.ErrRSVPNoteTooLong):
			statusCode = fiber.StatusBadRequest
		default:
			configslog.Log.Error("SubmitRSVP handler hatası", zap.String("customLink", customLink), zap.Error(err))
		}
		return c.Status(statusCode).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status":      rsvp.Status,
		"partySize":   rsvp.PartySize,
		"note":        rsvp.Note,
		"submittedAt": rsvp.SubmittedAt,
	})
}
