package server

import (
	"notez-be/internal/bootstrap"
	"notez-be/internal/config"
	"notez-be/internal/pkg/serverutils"
	"notez-be/internal/views"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit:             1 * 1024 * 1024, // 1MB, notes are plain text
		Views:                 views.NewEngine(cfg.App.Environment == "development"),
		DisableStartupMessage: cfg.App.Environment == "production",
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return serverutils.HandleError(ctx, err, container.Logger)
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(serverutils.RequestLogger(container.Logger))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))
	app.Use(container.Sessions.Middleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("Server", "server is running", map[string]interface{}{
		"url": s.cfg.App.BaseURL,
	})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.HealthController.RegisterRoutes(app)
	c.OAuthController.RegisterRoutes(app)
	c.MediaController.RegisterRoutes(app)
	c.NoteController.RegisterRoutes(app)
}
