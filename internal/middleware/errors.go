package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/service"
)

// ErrorHandler classifies errors escaping handlers into HTTP responses:
// JSON envelopes on /api paths, rendered pages everywhere else. Full detail
// is logged; clients get sanitized messages unless running in development.
func ErrorHandler(logger *zap.Logger, development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)

		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			)
			if development {
				message = err.Error()
			}
		}

		if isAPIPath(c.Path()) {
			return c.Status(status).JSON(models.ErrorResponse(message))
		}

		return c.Status(status).Render("error", fiber.Map{
			"Title":   "Error",
			"Message": message,
		}, "layout")
	}
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

func classify(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrWrongPassword):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden, "Forbidden"
	case errors.Is(err, service.ErrDuplicateUsername), errors.Is(err, service.ErrDuplicateEmail):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fiber.StatusConflict, "Duplicate entry"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fiber.StatusBadRequest, "Invalid reference"
	case errors.Is(err, service.ErrUnsupportedMedia):
		return fiber.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, service.ErrPayloadTooLarge):
		return fiber.StatusRequestEntityTooLarge, err.Error()
	case isConstraintViolation(err):
		return fiber.StatusConflict, "Duplicate entry"
	case isConnectivityError(err):
		return fiber.StatusServiceUnavailable, "Database temporarily unavailable"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

// Fallback string matching for drivers that do not translate constraint
// errors into gorm sentinels.
func isConstraintViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func isConnectivityError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "connection reset")
}
