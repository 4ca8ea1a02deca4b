package middleware

import (
	"strings"

	"go-parts-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token against the user's current session
// and sets user info in context.
func RequireAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		user, err := authService.ValidateToken(c.UserContext(), parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("user_email", user.Email)
		c.Locals("user_admin", user.Admin)

		return c.Next()
	}
}

// RequireAdmin rejects non-admin users. Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, _ := c.Locals("user_admin").(bool)
		if !admin {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires admin"})
		}
		return c.Next()
	}
}
