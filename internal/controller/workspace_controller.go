package controller

import (
	"net/url"

	"ai-renamer-be/internal/dto"
	"ai-renamer-be/internal/pkg/serverutils"
	"ai-renamer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Snapshot(ctx *fiber.Ctx) error
	OpenFolder(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	ProcessAll(ctx *fiber.Ctx) error
	RenameAll(ctx *fiber.Ctx) error
	SelectAll(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	ProcessFile(ctx *fiber.Ctx) error
	RenameFile(ctx *fiber.Ctx) error
	UpdateFileName(ctx *fiber.Ctx) error
	SetSelected(ctx *fiber.Ctx) error
	RemoveFile(ctx *fiber.Ctx) error
}

type workspaceController struct {
	service   service.IWorkspaceService
	jwtSecret string
}

func NewWorkspaceController(service service.IWorkspaceService, jwtSecret string) IWorkspaceController {
	return &workspaceController{service: service, jwtSecret: jwtSecret}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Get("", c.Snapshot)
	h.Post("/folder", c.OpenFolder)
	h.Post("/refresh", c.Refresh)
	h.Post("/process", c.ProcessAll)
	h.Post("/rename", c.RenameAll)
	h.Put("/selection", c.SelectAll)
	h.Get("/history", c.History)

	h.Post("/files/:name/process", c.ProcessFile)
	h.Post("/files/:name/rename", c.RenameFile)
	h.Put("/files/:name", c.UpdateFileName)
	h.Put("/files/:name/selected", c.SetSelected)
	h.Delete("/files/:name", c.RemoveFile)
}

// fileName decodes the :name segment; names routinely carry spaces.
func fileName(ctx *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil || name == "" {
		return "", serverutils.NewAppError(fiber.StatusBadRequest, "Invalid file name")
	}
	return name, nil
}

// parseOptional accepts an empty body as the zero request.
func parseOptional(ctx *fiber.Ctx, out interface{}) error {
	if len(ctx.Body()) == 0 {
		return nil
	}
	if err := ctx.BodyParser(out); err != nil {
		return fiber.ErrBadRequest
	}
	return nil
}

func (c *workspaceController) Snapshot(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get workspace", c.service.Snapshot(ctx.UserContext(), userId)))
}

func (c *workspaceController) OpenFolder(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.OpenFolderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.OpenFolder(ctx.UserContext(), userId, req.Path)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Folder selected", res))
}

func (c *workspaceController) Refresh(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.Refresh(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Folder refreshed", res))
}

func (c *workspaceController) ProcessAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.ProcessOverrides
	if err := parseOptional(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ProcessAll(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Processing complete", res))
}

func (c *workspaceController) RenameAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.RenameRequest
	if err := parseOptional(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RenameAll(ctx.UserContext(), userId, req.Mode)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Rename complete", res))
}

func (c *workspaceController) SelectAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.SetSelectedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	c.service.SelectAll(ctx.UserContext(), userId, req.Selected)
	return ctx.JSON(serverutils.SuccessResponse("Selection updated", c.service.Snapshot(ctx.UserContext(), userId)))
}

func (c *workspaceController) History(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.History(ctx.UserContext(), userId, ctx.Query("folder"), ctx.QueryInt("limit", 20), ctx.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *workspaceController) ProcessFile(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	name, err := fileName(ctx)
	if err != nil {
		return err
	}

	var req dto.ProcessOverrides
	if err := parseOptional(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ProcessOne(ctx.UserContext(), userId, name, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("File processed", res))
}

func (c *workspaceController) RenameFile(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	name, err := fileName(ctx)
	if err != nil {
		return err
	}

	var req dto.RenameRequest
	if err := parseOptional(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RenameOne(ctx.UserContext(), userId, name, req.Mode)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Rename finished", res))
}

func (c *workspaceController) UpdateFileName(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	name, err := fileName(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateFileNameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.UpdateFileName(ctx.UserContext(), userId, name, req.NewName); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Filename updated", c.service.Snapshot(ctx.UserContext(), userId)))
}

func (c *workspaceController) SetSelected(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	name, err := fileName(ctx)
	if err != nil {
		return err
	}

	var req dto.SetSelectedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	if err := c.service.SetSelected(ctx.UserContext(), userId, name, req.Selected); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection updated", c.service.Snapshot(ctx.UserContext(), userId)))
}

func (c *workspaceController) RemoveFile(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	name, err := fileName(ctx)
	if err != nil {
		return err
	}

	if err := c.service.RemoveFile(ctx.UserContext(), userId, name); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("File removed", c.service.Snapshot(ctx.UserContext(), userId)))
}
