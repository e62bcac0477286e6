package controller

import (
	"notez-be/internal/dto"
	"notez-be/internal/pkg/serverutils"
	"notez-be/internal/pkg/sessionauth"
	"notez-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMediaController interface {
	RegisterRoutes(r fiber.Router)
	Serve(ctx *fiber.Ctx) error
	View(ctx *fiber.Ctx) error
}

type mediaController struct {
	mediaService service.IMediaService
}

func NewMediaController(mediaService service.IMediaService) IMediaController {
	return &mediaController{mediaService: mediaService}
}

func (c *mediaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/media")
	h.Get("/view/:userid/:mediatype/:filename", c.View)
	h.Get("/:userid/:mediatype/:filename", c.Serve)
}

func mediaRequest(ctx *fiber.Ctx) (*dto.MediaRequest, error) {
	req := &dto.MediaRequest{
		UserId:    ctx.Params("userid"),
		MediaType: ctx.Params("mediatype"),
		Filename:  ctx.Params("filename"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, service.ErrMediaNotFound
	}
	return req, nil
}

func (c *mediaController) Serve(ctx *fiber.Ctx) error {
	req, err := mediaRequest(ctx)
	if err != nil {
		return err
	}

	obj, err := c.mediaService.Open(ctx.UserContext(), req)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, obj.ContentType)
	ctx.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	// fasthttp closes the body once it has been written
	return ctx.SendStream(obj.Body, int(obj.Size))
}

func (c *mediaController) View(ctx *fiber.Ctx) error {
	req, err := mediaRequest(ctx)
	if err != nil {
		return err
	}

	obj, err := c.mediaService.Open(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	obj.Body.Close()

	return render(ctx, "media/viewer", sessionauth.ViewerFrom(ctx), fiber.Map{
		"Title":       req.Filename,
		"Src":         "/media/" + req.UserId + "/" + req.MediaType + "/" + req.Filename,
		"Name":        obj.Name,
		"ContentType": obj.ContentType,
	})
}
