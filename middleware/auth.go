package middleware

import (
	"log"
	"os"
	"strings"

	"celebrity-booking-system/models"
	"celebrity-booking-system/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserContext validates the session token and attaches the current user to
// the request. The token is read from the Authorization header, falling back
// to a ?token= query param for SSE connections that cannot set headers.
func UserContext(db *gorm.DB) fiber.Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	return func(c *fiber.Ctx) error {
		tokenStr := ""
		if authHeader := c.Get("Authorization"); authHeader != "" {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		claims, err := utils.ParseToken(secret, tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		if user.Status == models.UserStatusDeleted {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "account disabled"})
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("user", &user)
		return c.Next()
	}
}

// AdminOnly guards admin routes; it must run after UserContext.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(models.Role)
		if !ok || role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}
