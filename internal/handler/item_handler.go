package handler

import (
	"storeroom/internal/middleware"
	"storeroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	service service.InventoryService
}

func NewItemHandler(s service.InventoryService) *ItemHandler {
	return &ItemHandler{service: s}
}

// GetItems lists the full inventory.
// GET /api/v1/items
func (h *ItemHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

// GetItem returns one inventory item.
// GET /api/v1/items/:id
func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	item, err := h.service.GetItem(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

// CreateItem adds a new item to the catalogue.
// POST /api/v1/items
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var req service.ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.CreateItem(&req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Item created", "data": item})
}

// UpdateItem edits an existing item.
// PUT /api/v1/items/:id
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req service.ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpdateItem(id, &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": item})
}

// DeleteItem removes an item from the catalogue.
// DELETE /api/v1/items/:id
func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	if err := h.service.DeleteItem(id, middleware.Actor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}
