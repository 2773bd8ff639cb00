package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"nojom_backend/internals/helpers/apperr"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		return "", errors.New("No token provided")
	}

	// tolerate repeated spaces and any casing of "Bearer"
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("Empty token")
	}
	return tok, nil
}

// UserID reads the authenticated user id stored by AuthMiddleware.
func UserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals(LocUserID).(uint)
	if !ok || id == 0 {
		return 0, apperr.New(http.StatusUnauthorized, apperr.CodeUnauthorized, "Unauthenticated")
	}
	return id, nil
}
