package handlers

import (
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler kayıt ve oturum açma uçları.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler(service services.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register (POST /api/auth/register)
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	user, err := h.service.Register(c.UserContext(), input)
	if err != nil {
		statusCode := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrAuthEmailTaken):
			statusCode = fiber.StatusConflict
		case errors.Is(err, services.ErrAuthEmailRequired), errors.Is(err, services.ErrAuthPasswordTooShort):
			statusCode = fiber.StatusBadRequest
		default:
			configslog.Log.Error("Register handler hatası", zap.Error(err))
		}
		return c.Status(statusCode).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	})
}

// Login (POST /api/auth/login)
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	token, err := h.service.Login(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, services.ErrAuthInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Login handler hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "oturum açılamadı"})
	}

	return c.JSON(token)
}
