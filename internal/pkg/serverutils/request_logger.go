package serverutils

import (
	"time"

	"notez-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request once the response is final.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		log.Info("HTTP", "request", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.OriginalURL(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"bytes":      len(ctx.Response().Body()),
			"ip":         ctx.IP(),
		})
		return err
	}
}
