package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/JonathanBek0501/auragameclub/internal/domain"
)

// statusForError maps engine rejections onto HTTP statuses: unknown ids are
// 404, invalid transitions 409, bad input 400.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrRoomAlreadyRunning),
		errors.Is(err, domain.ErrRoomNotRunning),
		errors.Is(err, domain.ErrNothingToEnd):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidName):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}
