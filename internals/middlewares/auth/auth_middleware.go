package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	authRepo "nojom_backend/internals/features/users/auth/repository"
	"nojom_backend/internals/features/users/auth/service"
	"nojom_backend/internals/helpers/apperr"
)

const (
	LocUserID      = "user_id"
	LocUserEmail   = "user_email"
	LocAccessToken = "access_token"
	LocTokenExp    = "token_exp"
)

func unauthorized(msg string) *apperr.Error {
	return apperr.New(http.StatusUnauthorized, apperr.CodeUnauthorized, msg)
}

// AuthMiddleware requires a valid, non-blacklisted bearer access token.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return unauthorized(err.Error())
		}

		revoked, err := authRepo.IsBlacklisted(db, tokenString)
		if err != nil {
			return apperr.Internal(apperr.CodeServer, "Internal Server Error", err)
		}
		if revoked {
			return unauthorized("Token has been revoked")
		}

		claims, err := service.ParseAccess(tokenString)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("rejected access token")
			return unauthorized("Invalid or expired token")
		}

		c.Locals(LocUserID, claims.UserID)
		c.Locals(LocUserEmail, claims.Email)
		c.Locals(LocAccessToken, tokenString)
		c.Locals(LocTokenExp, claims.Expiry())
		return c.Next()
	}
}
