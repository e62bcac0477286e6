package controller

import (
	"time"

	"notez-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	startedAt time.Time
	store     string
}

func NewHealthController(store string) IHealthController {
	return &healthController{startedAt: time.Now(), store: store}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/healthz", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("ok", fiber.Map{
		"store":  c.store,
		"uptime": time.Since(c.startedAt).Round(time.Second).String(),
	}))
}
