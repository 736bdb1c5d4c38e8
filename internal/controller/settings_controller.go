package controller

import (
	"ai-renamer-be/internal/dto"
	"ai-renamer-be/internal/pkg/serverutils"
	"ai-renamer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	GetSettings(ctx *fiber.Ctx) error
	UpdateSettings(ctx *fiber.Ctx) error
	ListApiKeys(ctx *fiber.Ctx) error
	SaveApiKey(ctx *fiber.Ctx) error
	UpdateApiKey(ctx *fiber.Ctx) error
	DeleteApiKey(ctx *fiber.Ctx) error
	ListPrompts(ctx *fiber.Ctx) error
	SavePrompt(ctx *fiber.Ctx) error
	UpdatePrompt(ctx *fiber.Ctx) error
	DeletePrompt(ctx *fiber.Ctx) error
}

type settingsController struct {
	service   service.ISettingsService
	jwtSecret string
}

func NewSettingsController(service service.ISettingsService, jwtSecret string) ISettingsController {
	return &settingsController{service: service, jwtSecret: jwtSecret}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Get("", c.GetSettings)
	h.Put("", c.UpdateSettings)

	h.Get("/api-keys", c.ListApiKeys)
	h.Post("/api-keys", c.SaveApiKey)
	h.Put("/api-keys/:id", c.UpdateApiKey)
	h.Delete("/api-keys/:id", c.DeleteApiKey)

	h.Get("/prompts", c.ListPrompts)
	h.Post("/prompts", c.SavePrompt)
	h.Put("/prompts/:id", c.UpdatePrompt)
	h.Delete("/prompts/:id", c.DeletePrompt)
}

func pathID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewAppError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

func (c *settingsController) GetSettings(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.GetSettings(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get settings", res))
}

func (c *settingsController) UpdateSettings(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateSettings(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update settings", res))
}

func (c *settingsController) ListApiKeys(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.ListApiKeys(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get api keys", res))
}

func (c *settingsController) SaveApiKey(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.SaveApiKeyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SaveApiKey(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("API key saved", res))
}

func (c *settingsController) UpdateApiKey(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateApiKeyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateApiKey(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("API key updated", res))
}

func (c *settingsController) DeleteApiKey(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteApiKey(ctx.UserContext(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("API key deleted", nil))
}

func (c *settingsController) ListPrompts(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.ListPrompts(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get prompts", res))
}

func (c *settingsController) SavePrompt(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.SavePromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SavePrompt(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Prompt saved", res))
}

func (c *settingsController) UpdatePrompt(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdatePromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdatePrompt(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Prompt updated", res))
}

func (c *settingsController) DeletePrompt(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeletePrompt(ctx.UserContext(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Prompt deleted", nil))
}
