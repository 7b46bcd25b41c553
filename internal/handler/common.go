package handler

import (
	"errors"

	"storeroom/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusFor maps service errors to HTTP statuses. Unrecognized errors
// are treated as bad requests; the boundary never panics on them.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrItemNotFound), errors.Is(err, service.ErrCategoryNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrItemExists), errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrCategoryInUse):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInsufficientStock), errors.Is(err, service.ErrInvalidQuantity):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadRequest
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
