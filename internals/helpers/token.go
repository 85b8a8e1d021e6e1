package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads the user id stored in locals by the auth middleware.
// 401 when not logged in, 400 when the stored value is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Utilisateur non connecté")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Utilisateur non connecté")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Utilisateur non connecté")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID invalide dans le token")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID invalide dans le token")
	}
}

// GetRoleFromToken reads the role claim stored in locals by the auth middleware.
func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("userRole").(string)
	if !ok || strings.TrimSpace(role) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Rôle manquant dans le token")
	}
	return role, nil
}

// GetUserNameFromToken reads the display name claim, empty string when absent.
func GetUserNameFromToken(c *fiber.Ctx) string {
	if name, ok := c.Locals("userName").(string); ok {
		return name
	}
	return ""
}
