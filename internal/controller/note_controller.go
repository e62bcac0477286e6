package controller

import (
	"fmt"
	"net/url"

	"notez-be/internal/access"
	"notez-be/internal/dto"
	"notez-be/internal/entity"
	"notez-be/internal/pkg/serverutils"
	"notez-be/internal/pkg/sessionauth"
	"notez-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	New(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Share(ctx *fiber.Ctx) error
	Unshare(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
	gate        *access.Gate
}

func NewNoteController(noteService service.INoteService, gate *access.Gate) INoteController {
	return &noteController{
		noteService: noteService,
		gate:        gate,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	gated := serverutils.AccessMiddleware(c.gate)
	loggedIn := serverutils.RequireSession()

	r.Get("/", gated, c.Index)

	h := r.Group("/notes")
	h.Get("/new", gated, c.New)
	h.Post("/new", loggedIn, c.Create)
	h.Get("/edit/:id", gated, c.Edit)
	h.Post("/edit/:id", loggedIn, c.Update)
	h.Get("/delete/:id", gated, c.Delete)
	h.Get("/share/:id", gated, c.Share)
	h.Get("/unshare/:id", gated, c.Unshare)
	// visibility is decided per note, not by the gate
	h.Get("/:id", c.Show)
}

func noteId(ctx *fiber.Ctx) string {
	id, err := url.PathUnescape(ctx.Params("id"))
	if err != nil {
		return ctx.Params("id")
	}
	return id
}

func (c *noteController) Index(ctx *fiber.Ctx) error {
	viewer := sessionauth.ViewerFrom(ctx)

	notes, err := c.noteService.ListByOwner(ctx.UserContext(), viewer.User.Id)
	if err != nil {
		return err
	}

	return render(ctx, "notes/index", viewer, fiber.Map{
		"Title": "Notes",
		"Notes": notes,
	})
}

func (c *noteController) New(ctx *fiber.Ctx) error {
	return render(ctx, "notes/new", sessionauth.ViewerFrom(ctx), fiber.Map{
		"Title": "New note",
	})
}

// owner resolves the note owner from the form. The form may repeat the
// session identity but may not claim another one.
func owner(ctx *fiber.Ctx, viewer entity.Viewer) (string, string, error) {
	claimed := ctx.FormValue("userId")
	if claimed == "" {
		claimed = ctx.FormValue("userid")
	}
	if claimed != "" && claimed != viewer.User.Id {
		return "", "", fmt.Errorf("%w: userId does not match the session", service.ErrValidation)
	}

	name := ctx.FormValue("username")
	if name == "" {
		name = viewer.User.Name
	}
	return viewer.User.Id, name, nil
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	viewer := sessionauth.ViewerFrom(ctx)

	ownerId, ownerName, err := owner(ctx, viewer)
	if err != nil {
		return err
	}

	req := dto.CreateNoteRequest{
		Title:     ctx.FormValue("noteTitle"),
		Content:   ctx.FormValue("noteContent"),
		OwnerId:   ownerId,
		OwnerName: ownerName,
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), viewer, &req)
	if err != nil {
		return err
	}

	return ctx.Redirect("/notes/" + url.PathEscape(res.Id))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	viewer := sessionauth.ViewerFrom(ctx)

	note, err := c.noteService.Show(ctx.UserContext(), viewer, noteId(ctx))
	if err != nil {
		return err
	}

	return render(ctx, "notes/view", viewer, fiber.Map{
		"Title": note.Title,
		"Note":  note,
	})
}

func (c *noteController) Edit(ctx *fiber.Ctx) error {
	viewer := sessionauth.ViewerFrom(ctx)

	note, err := c.noteService.Edit(ctx.UserContext(), viewer, noteId(ctx))
	if err != nil {
		return err
	}

	return render(ctx, "notes/edit", viewer, fiber.Map{
		"Title": "Edit " + note.Title,
		"Note":  note,
	})
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	viewer := sessionauth.ViewerFrom(ctx)

	req := dto.UpdateNoteRequest{
		Id:      noteId(ctx),
		Title:   ctx.FormValue("noteTitle"),
		Content: ctx.FormValue("noteContent"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.UserContext(), viewer, &req)
	if err != nil {
		return err
	}

	return ctx.Redirect("/notes/" + url.PathEscape(res.Id))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	viewer := sessionauth.ViewerFrom(ctx)
	id := noteId(ctx)

	if err := c.noteService.Delete(ctx.UserContext(), viewer, id); err != nil {
		return err
	}

	return render(ctx, "notes/deleted", viewer, fiber.Map{
		"Title": "Deleted",
		"Id":    id,
	})
}

func (c *noteController) Share(ctx *fiber.Ctx) error {
	return c.setPublic(ctx, true)
}

func (c *noteController) Unshare(ctx *fiber.Ctx) error {
	return c.setPublic(ctx, false)
}

func (c *noteController) setPublic(ctx *fiber.Ctx, public bool) error {
	viewer := sessionauth.ViewerFrom(ctx)

	res, err := c.noteService.SetPublic(ctx.UserContext(), viewer, noteId(ctx), public)
	if err != nil {
		return err
	}

	return render(ctx, "notes/share", viewer, fiber.Map{
		"Title": "Share " + res.Title,
		"Share": res,
	})
}
