package controller

import (
	"shell-assistant-be/internal/dto"
	"shell-assistant-be/internal/pkg/serverutils"
	"shell-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIngestionController interface {
	RegisterRoutes(r fiber.Router)
	SyncDocs(ctx *fiber.Ctx) error
	SyncTerms(ctx *fiber.Ctx) error
}

type ingestionController struct {
	service service.IIngestionService
}

func NewIngestionController(service service.IIngestionService) IIngestionController {
	return &ingestionController{service: service}
}

func (c *ingestionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.JwtMiddleware) // management surface, not the chat surface
	h.Post("/docs/sync", c.SyncDocs)
	h.Post("/terms/sync", c.SyncTerms)
}

func (c *ingestionController) SyncDocs(ctx *fiber.Ctx) error {
	var req dto.SyncDocsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SyncDocs(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sync docs", res))
}

func (c *ingestionController) SyncTerms(ctx *fiber.Ctx) error {
	var req dto.SyncTermsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SyncTerms(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sync terms", res))
}
