package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/JonathanBek0501/auragameclub/internal/clock"
	"github.com/JonathanBek0501/auragameclub/internal/ports"
)

type RoomHandler struct {
	service ports.SessionService
	saver   *Saver
	clock   clock.Clock
	log     *zap.Logger
}

func NewRoomHandler(service ports.SessionService, saver *Saver, clk clock.Clock, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		saver:   saver,
		clock:   clk,
		log:     log,
	}
}

// List returns every room with elapsed time and charges computed as of now.
func (h *RoomHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.service.Snapshot(h.clock.Now()))
}

func (h *RoomHandler) Start(c *fiber.Ctx) error {
	room, err := h.service.Start(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.saver.Persist(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

func (h *RoomHandler) Stop(c *fiber.Ctx) error {
	room, err := h.service.Stop(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.saver.Persist(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

type AttachItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *RoomHandler) AttachItem(c *fiber.Ctx) error {
	var req AttachItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	room, err := h.service.AttachItem(c.Params("id"), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.saver.Persist(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

func (h *RoomHandler) RemoveItem(c *fiber.Ctx) error {
	room, err := h.service.RemoveItem(c.Params("id"), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.saver.Persist(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

// End closes the room's session and returns the archive entry produced.
func (h *RoomHandler) End(c *fiber.Ctx) error {
	entry, err := h.service.End(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.saver.Persist(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}
