package middlewares

import (
	"strings"

	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// Locals anahtarları
const (
	LocalUserIDKey   = "userID"
	LocalIsSystemKey = "isSystem"
)

// AuthMiddleware Authorization başlığındaki Bearer JWT'yi doğrular ve
// claim'leri fiber Locals'a koyar. Token yoksa veya geçersizse 401 döner.
func AuthMiddleware(authService services.IAuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum açmanız gerekiyor"})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrAuthInvalidToken.Error()})
		}

		c.Locals(LocalUserIDKey, claims.UserID)
		c.Locals(LocalIsSystemKey, claims.IsSystem)
		return c.Next()
	}
}

// CurrentUserID Locals'tan doğrulanmış kullanıcı ID'sini okur.
// AuthMiddleware'den geçmemiş bir rotada 0 döner.
func CurrentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(LocalUserIDKey).(uint); ok {
		return id
	}
	return 0
}
