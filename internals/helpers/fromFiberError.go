package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"nojom_backend/internals/helpers/apperr"
)

// FromFiberError converts a *fiber.Error (router 404, body limit, limiter 429)
// into an *apperr.Error so it renders through the same envelope.
func FromFiberError(err error) (*apperr.Error, bool) {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return nil, false
	}
	msg := fe.Message
	if fe.Code == fiber.StatusNotFound && msg == fiber.ErrNotFound.Message {
		msg = "Resource not found"
	}
	return apperr.New(fe.Code, statusToErrorCode(fe.Code), msg), true
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return apperr.CodeUnauthorized
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnprocessableEntity:
		return apperr.CodeValidation
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= 500 {
			return apperr.CodeServer
		}
		return "ERROR"
	}
}
