package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"newshub/internal/http/middleware"
	"newshub/internal/policy"
	"newshub/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response.
// message must be safe to show to the caller.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// respondError maps domain errors onto the error taxonomy. Anything it does not
// recognize is returned unchanged so ErrorHandler logs it and answers 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrStatusRequired),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, policy.ErrOneArticleLimit),
		errors.Is(err, policy.ErrUserNotFound),
		errors.Is(err, policy.ErrNotAuthor),
		errors.Is(err, policy.ErrNotAdmin),
		errors.Is(err, policy.ErrPaymentRequired):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		return err
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", message)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Errors that are not *fiber.Error are logged and never echoed to the caller.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			logger.Error("request_failed",
				"request_id", requestIDFromCtx(c),
				"method", c.Method(),
				"path", c.Path(),
				"error", err.Error(),
			)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		switch fe.Code {
		case fiber.StatusBadRequest:
			return writeError(c, fe.Code, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, fe.Code, "UNAUTHORIZED", fe.Message)
		case fiber.StatusForbidden:
			return writeError(c, fe.Code, "FORBIDDEN", fe.Message)
		case fiber.StatusNotFound:
			return writeError(c, fe.Code, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, fe.Code, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, fe.Code, "PAYLOAD_TOO_LARGE", "payload too large")
		default:
			logger.Error("request_failed",
				"request_id", requestIDFromCtx(c),
				"status", fe.Code,
				"error", fe.Message,
			)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}
