package controller

import (
	"shell-assistant-be/internal/dto"
	"shell-assistant-be/internal/pkg/serverutils"
	"shell-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	Turn(ctx *fiber.Ctx) error
	EndSession(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("/session", c.CreateSession)
	h.Post("/turn", c.Turn)
	h.Delete("/session/:id", c.EndSession)
}

func (c *assistantController) CreateSession(ctx *fiber.Ctx) error {
	res := c.service.CreateSession(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *assistantController) Turn(ctx *fiber.Ctx) error {
	var req dto.TurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.HandleTurn(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success route turn", res))
}

func (c *assistantController) EndSession(ctx *fiber.Ctx) error {
	c.service.EndSession(ctx.Context(), ctx.Params("id"))
	return ctx.JSON(serverutils.SuccessResponse[any]("Success end session", nil))
}
