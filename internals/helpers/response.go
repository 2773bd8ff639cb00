package helper

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"nojom_backend/internals/helpers/apperr"
)

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ErrorHandler is installed as fiber.Config.ErrorHandler. Every error returned
// by a handler ends up here and is rendered as {"error": {...}}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	ae, ok := apperr.As(err)
	if !ok {
		ae, ok = FromFiberError(err)
	}
	if !ok {
		ae = apperr.Internal(apperr.CodeServer, "An unexpected error occurred", err)
	}
	if ae.Status == 0 {
		ae.Status = fiber.StatusInternalServerError
	}

	if ae.Status >= 500 {
		log.Error().
			Err(err).
			Str("request_id", RequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("code", ae.Code).
			Msg("request failed")
	}

	return JsonError(c, ae)
}

// JsonError writes the error envelope for an *apperr.Error.
func JsonError(c *fiber.Ctx, ae *apperr.Error) error {
	return c.Status(ae.Status).JSON(fiber.Map{
		"error": ErrorBody{
			Code:      ae.Code,
			Message:   ae.Message,
			Details:   ae.Details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// RequestID reads the id set by the request id middleware.
func RequestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRequestID).(string); ok {
		return v
	}
	return ""
}

const LocRequestID = "request_id"
