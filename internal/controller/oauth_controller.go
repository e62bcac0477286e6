package controller

import (
	"notez-be/internal/access"
	"notez-be/internal/entity"
	"notez-be/internal/pkg/logger"
	"notez-be/internal/pkg/sessionauth"
	"notez-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	LoginPage(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service  service.IOAuthService
	sessions *sessionauth.Manager
	logger   logger.ILogger
}

func NewOAuthController(service service.IOAuthService, sessions *sessionauth.Manager, log logger.ILogger) IOAuthController {
	return &oauthController{
		service:  service,
		sessions: sessions,
		logger:   log,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	r.Get(access.LoginPath, c.LoginPage)
	r.Get(access.LogoutPath, c.Logout)

	// e.g., /auth/github
	h := r.Group("/auth")
	h.Get("/:provider", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) LoginPage(ctx *fiber.Ctx) error {
	viewer := sessionauth.ViewerFrom(ctx)
	if viewer.LoggedIn() {
		return ctx.Redirect("/")
	}

	return render(ctx, "auth/login", viewer, fiber.Map{
		"Title":     "Login",
		"Providers": c.service.Providers(),
	})
}

// Logout is reachable without the gate, otherwise a rejected user would
// bounce between the gate and this page.
func (c *oauthController) Logout(ctx *fiber.Ctx) error {
	if err := c.sessions.Logout(ctx); err != nil {
		c.logger.Warn("OAuth", "failed to destroy session", map[string]interface{}{
			"error": err,
		})
	}
	sessionauth.SetViewer(ctx, entity.Viewer{})

	return render(ctx, "auth/logout", entity.Viewer{}, fiber.Map{
		"Title": "Logged out",
	})
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	loginURL, state, err := c.service.GetLoginURL(provider)
	if err != nil {
		return err
	}
	if err := c.sessions.SetState(ctx, state); err != nil {
		return err
	}

	return ctx.Redirect(loginURL)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	if providerErr := ctx.Query("error"); providerErr != "" {
		c.logger.Info("OAuth", "login cancelled at provider", map[string]interface{}{
			"provider": provider,
			"reason":   providerErr,
		})
		return ctx.Redirect(access.LoginPath)
	}

	expected, err := c.sessions.TakeState(ctx)
	if err != nil {
		return err
	}

	user, err := c.service.HandleCallback(ctx.UserContext(), provider, ctx.Query("code"), ctx.Query("state"), expected)
	if err != nil {
		c.logger.Warn("OAuth", "login failed", map[string]interface{}{
			"provider": provider,
			"error":    err,
		})
		return ctx.Redirect(access.LoginPath)
	}

	if err := c.sessions.Login(ctx, user); err != nil {
		return err
	}

	return ctx.Redirect("/")
}
