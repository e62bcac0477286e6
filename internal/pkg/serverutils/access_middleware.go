package serverutils

import (
	"notez-be/internal/access"
	"notez-be/internal/pkg/sessionauth"

	"github.com/gofiber/fiber/v2"
)

// AccessMiddleware guards a route with the allow-list gate. It expects the
// viewer to have been resolved by sessionauth.Manager.Middleware.
func AccessMiddleware(gate *access.Gate) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		decision := gate.Evaluate(sessionauth.ViewerFrom(ctx))
		if decision == access.Proceed {
			return ctx.Next()
		}
		return ctx.Redirect(decision.RedirectPath())
	}
}

// RequireSession only checks that the caller is logged in, without the
// allow-list. Used on form submissions.
func RequireSession() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !sessionauth.ViewerFrom(ctx).LoggedIn() {
			return ctx.Redirect(access.LoginPath)
		}
		return ctx.Next()
	}
}
