package serverutils

import (
	"errors"

	"notez-be/internal/access"
	"notez-be/internal/pkg/logger"
	"notez-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error returned by a handler to a status and a message
// safe to show to the user.
func StatusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, service.ErrNoteNotFound):
		return fiber.StatusNotFound, "Unknown id"
	case errors.Is(err, service.ErrMediaNotFound):
		return fiber.StatusNotFound, "There's a high chance that that file does not exist."
	case errors.Is(err, service.ErrUnknownProvider):
		return fiber.StatusNotFound, "Unknown login provider"
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidState):
		return fiber.StatusBadRequest, "Login request expired, please try again"
	case errors.Is(err, service.ErrNotNoteOwner):
		return fiber.StatusForbidden, "This note belongs to another user"
	case errors.Is(err, service.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable, "Notes are temporarily unavailable"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

// ErrorHandlerMiddleware turns handler errors into redirects or error pages.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return HandleError(ctx, err, log)
	}
}

func HandleError(ctx *fiber.Ctx, err error, log logger.ILogger) error {
	if errors.Is(err, service.ErrLoginRequired) {
		return ctx.Redirect(access.LoginPath)
	}

	status, message := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error("HTTP", "request failed", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": status,
			"error":  err,
		})
	}

	ctx.Status(status)
	if renderErr := ctx.Render("error", fiber.Map{"Status": status, "Message": message}, "layouts/main"); renderErr != nil {
		return ctx.Status(status).SendString(message)
	}
	return nil
}
