package controller

import (
	"notez-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

const mainLayout = "layouts/main"

// render executes a page inside the main layout. Every page gets the
// session user so the layout can show who is logged in.
func render(ctx *fiber.Ctx, name string, viewer entity.Viewer, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if viewer.LoggedIn() {
		data["User"] = viewer.User
	}
	return ctx.Render(name, data, mainLayout)
}
