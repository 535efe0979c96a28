package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/JonathanBek0501/auragameclub/internal/ports"
)

type ProductHandler struct {
	service ports.CatalogService
	saver   *Saver
	log     *zap.Logger
}

func NewProductHandler(service ports.CatalogService, saver *Saver, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		saver:   saver,
		log:     log,
	}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.service.Products())
}

type ProductRequest struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	product, err := h.service.Add(req.Name, req.UnitPrice)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.saver.Persist(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	product, err := h.service.Update(c.Params("id"), req.Name, req.UnitPrice)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.saver.Persist(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Remove(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	if err := h.saver.Persist(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
