package handlers

import (
	"errors"

	"etkinlik.link/pkg/pricing"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// PackageHandler paket kataloğu ve fiyat hesaplama uçları. Katalog
// public'tir; paket seçim ekranı oturum açmadan da görüntülenebilir.
type PackageHandler struct {
	service services.IPackageService
}

// NewPackageHandler yeni bir PackageHandler örneği oluşturur.
func NewPackageHandler(service services.IPackageService) *PackageHandler {
	return &PackageHandler{service: service}
}

// ListPackages (GET /api/packages)
func (h *PackageHandler) ListPackages(c *fiber.Ctx) error {
	return c.JSON(h.service.ListPackages())
}

// CalculatePriceRequest fiyat hesaplama isteğidir.
type CalculatePriceRequest struct {
	PackageType pricing.PackageTier `json:"packageType"`
	AddOns      []string            `json:"addOns"`
}

// CalculatePrice (POST /api/packages/calculate-price)
// Seçilen paket ve ek hizmetler için fiyat dökümünü döner; kayıt yapmaz.
func (h *PackageHandler) CalculatePrice(c *fiber.Ctx) error {
	var req CalculatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	breakdown, err := h.service.CalculatePrice(req.PackageType, req.AddOns)
	if err != nil {
		if errors.Is(err, services.ErrPackageUnknownTier) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "fiyat hesaplanamadı"})
	}
	return c.JSON(breakdown)
}
