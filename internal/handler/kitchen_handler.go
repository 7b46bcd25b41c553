package handler

import (
	"storeroom/internal/middleware"
	"storeroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

type KitchenHandler struct {
	service service.KitchenService
}

func NewKitchenHandler(s service.KitchenService) *KitchenHandler {
	return &KitchenHandler{service: s}
}

type TransferRequest struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
	Notes    string  `json:"notes"`
}

// Transfer issues stock to the kitchen.
// POST /api/v1/kitchen/transfers
func (h *KitchenHandler) Transfer(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	itemID, err := parseUUID(req.ItemID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	movement, err := h.service.Transfer(itemID, req.Quantity, req.Notes, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Transfer recorded", "data": movement})
}
