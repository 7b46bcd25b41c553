package middleware

import (
	"strings"

	"storeroom/internal/model"
	"storeroom/internal/repository"
	"storeroom/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and loads the account so a
// deactivated user is rejected even with a still-valid token. User
// identity, role and capabilities are stashed in the request context.
func RequireAuth(userRepo repository.UserRepository, tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("username", claims.Username)
		c.Locals("role_code", claims.RoleCode)
		c.Locals("capabilities", claims.Capabilities)

		return c.Next()
	}
}

// RequireCapability is the role gate: a request whose role does not grant
// the capability is answered 403 here and never reaches a service.
func RequireCapability(required string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		capabilities, ok := c.Locals("capabilities").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No capabilities found"})
		}

		for _, cap := range capabilities {
			if cap == required {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + required + "' capability",
		})
	}
}

// Actor extracts the acting user from the request context.
func Actor(c *fiber.Ctx) model.Actor {
	actor := model.Actor{ID: "system", Username: "system"}
	if id, ok := c.Locals("user_id").(string); ok {
		actor.ID = id
	}
	if name, ok := c.Locals("username").(string); ok {
		actor.Username = name
	}
	return actor
}
