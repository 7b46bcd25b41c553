package handler

import (
	"path/filepath"
	"strings"

	"storeroom/internal/ingest"
	"storeroom/internal/middleware"
	"storeroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

// RecordPurchase records a single manual purchase entry.
// POST /api/v1/purchases
func (h *PurchaseHandler) RecordPurchase(c *fiber.Ctx) error {
	var req service.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.RecordPurchase(&req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": item})
}

// Preview parses an uploaded spreadsheet into candidate rows without
// applying anything, so the operator can confirm before upload.
// POST /api/v1/purchases/preview
func (h *PurchaseHandler) Preview(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file uploaded"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" {
		return c.Status(400).JSON(fiber.Map{"error": "Please upload an Excel file (.xlsx)"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot read uploaded file"})
	}
	defer file.Close()

	rows, rejected, err := h.service.Preview(file)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Error reading file: " + err.Error()})
	}

	var needsReview []string
	for _, row := range rows {
		if row.AutoDetected {
			needsReview = append(needsReview, row.Name)
		}
	}

	return c.JSON(fiber.Map{
		"rows":          rows,
		"count":         len(rows),
		"rejected":      rejected,
		"warning_items": needsReview,
	})
}

// BulkRecord applies a batch of confirmed purchase rows.
// POST /api/v1/purchases/bulk
func (h *PurchaseHandler) BulkRecord(c *fiber.Ctx) error {
	var req struct {
		Rows []ingest.PurchaseRow `json:"rows"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.Rows) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No rows to upload"})
	}

	result, err := h.service.BulkRecord(req.Rows, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}
