package handler

import (
	"fmt"
	"log"
	"time"

	"storeroom/internal/ingest"
	"storeroom/internal/model"
	"storeroom/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// LedgerHandler serves the movement ledger. Listing triggers retention
// cleanup so old rows age out without a background job, as fits a
// single-instance deployment.
type LedgerHandler struct {
	movements     repository.MovementRepository
	retentionDays int
}

func NewLedgerHandler(movements repository.MovementRepository, retentionDays int) *LedgerHandler {
	return &LedgerHandler{movements: movements, retentionDays: retentionDays}
}

func (h *LedgerHandler) filterFromQuery(c *fiber.Ctx) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{
		Type:  model.MovementType(c.Query("type")),
		Limit: c.QueryInt("limit", 100),
	}

	if from := c.Query("from_date"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, fmt.Errorf("invalid from_date, use YYYY-MM-DD")
		}
		filter.From = t
	}
	if to := c.Query("to_date"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, fmt.Errorf("invalid to_date, use YYYY-MM-DD")
		}
		// Inclusive end date.
		filter.To = t.AddDate(0, 0, 1)
	}
	return filter, nil
}

func (h *LedgerHandler) cleanup() {
	cutoff := time.Now().AddDate(0, 0, -h.retentionDays)
	if deleted, err := h.movements.DeleteOlderThan(cutoff); err != nil {
		log.Printf("ledger: retention cleanup failed: %v", err)
	} else if deleted > 0 {
		log.Printf("ledger: purged %d movements older than %d days", deleted, h.retentionDays)
	}
}

// GetMovements lists ledger entries with optional type/date filters.
// GET /api/v1/movements
func (h *LedgerHandler) GetMovements(c *fiber.Ctx) error {
	h.cleanup()

	filter, err := h.filterFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	movements, err := h.movements.List(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"movements": movements})
}

// Export downloads the filtered ledger as an .xlsx workbook.
// GET /api/v1/movements/export
func (h *LedgerHandler) Export(c *fiber.Ctx) error {
	filter, err := h.filterFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	filter.Limit = 500

	movements, err := h.movements.List(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	if len(movements) == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "No movements to export"})
	}

	buf, err := ingest.WriteLedger(movements)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build export"})
	}

	typeLabel := string(filter.Type)
	if typeLabel == "" {
		typeLabel = "all"
	}
	filename := fmt.Sprintf("movements_%s_%s.xlsx", typeLabel, time.Now().Format("2006-01-02"))

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
