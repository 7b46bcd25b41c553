package service

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"storeroom/internal/ingest"
	"storeroom/internal/model"
	"storeroom/internal/repository"
	"storeroom/internal/ws"
	"storeroom/pkg/validator"
)

// PurchaseService merges incoming stock into the item store. A purchase
// for a known item name increments its quantity; an unknown name creates
// the item. Every applied purchase appends a PURCHASE ledger entry.
type PurchaseService interface {
	RecordPurchase(req *PurchaseRequest, actor model.Actor) (*model.Item, error)
	BulkRecord(rows []ingest.PurchaseRow, actor model.Actor) (*BulkResult, error)
	Preview(file io.Reader) ([]ingest.PurchaseRow, []ingest.RejectedRow, error)
}

// PurchaseRequest is a single manual purchase entry.
type PurchaseRequest struct {
	Name     string  `json:"item_name" validate:"required"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Rate     float64 `json:"rate"`
	Vendor   string  `json:"vendor"`
}

// BulkResult reports the outcome of a batch: rows applied plus every
// rejected row with its reason. Rejections never abort the batch.
type BulkResult struct {
	Applied  int                 `json:"applied"`
	Rejected []ingest.RejectedRow `json:"rejected"`
}

type purchaseService struct {
	items repository.ItemRepository
	uow   repository.UnitOfWork
	hub   *ws.Hub
}

func NewPurchaseService(items repository.ItemRepository, uow repository.UnitOfWork, hub *ws.Hub) PurchaseService {
	return &purchaseService{items: items, uow: uow, hub: hub}
}

func (s *purchaseService) RecordPurchase(req *PurchaseRequest, actor model.Actor) (*model.Item, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	if req.Quantity < 0 || math.IsNaN(req.Quantity) || math.IsInf(req.Quantity, 0) {
		return nil, ErrInvalidQuantity
	}
	if req.Rate < 0 || math.IsNaN(req.Rate) {
		return nil, errors.New("rate must be a non-negative number")
	}

	var item *model.Item
	err := s.uow.WithTx(func(items repository.ItemRepository, movements repository.MovementRepository) error {
		var err error
		item, err = applyPurchase(items, movements, req, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "purchase_recorded",
		"item": map[string]interface{}{
			"id":       item.ID,
			"name":     item.Name,
			"quantity": item.Quantity,
			"unit":     item.Unit,
		},
		"user":    actor.Username,
		"message": fmt.Sprintf("%s purchased %.3f %s of '%s'", actor.Username, req.Quantity, item.Unit, item.Name),
	})

	return item, nil
}

func (s *purchaseService) BulkRecord(rows []ingest.PurchaseRow, actor model.Actor) (*BulkResult, error) {
	result := &BulkResult{}

	for i, row := range rows {
		line := i + 1
		if reason := validateBulkRow(row); reason != "" {
			result.Rejected = append(result.Rejected, ingest.RejectedRow{Line: line, Row: row, Reason: reason})
			continue
		}

		req := &PurchaseRequest{
			Name:     row.Name,
			Category: row.Category,
			Quantity: row.Quantity,
			Unit:     row.Unit,
			Rate:     row.Rate,
			Vendor:   row.Vendor,
		}
		// Each row commits on its own, so one bad row cannot poison
		// the rows already applied.
		err := s.uow.WithTx(func(items repository.ItemRepository, movements repository.MovementRepository) error {
			_, err := applyPurchase(items, movements, req, actor)
			return err
		})
		if err != nil {
			result.Rejected = append(result.Rejected, ingest.RejectedRow{Line: line, Row: row, Reason: err.Error()})
			continue
		}
		result.Applied++
	}

	if result.Applied > 0 {
		s.hub.Publish(map[string]interface{}{
			"type":    "stock_update",
			"action":  "bulk_purchase",
			"applied": result.Applied,
			"user":    actor.Username,
			"message": fmt.Sprintf("%s uploaded %d purchase rows", actor.Username, result.Applied),
		})
	}

	return result, nil
}

func (s *purchaseService) Preview(file io.Reader) ([]ingest.PurchaseRow, []ingest.RejectedRow, error) {
	existing, err := s.items.FindAll()
	if err != nil {
		return nil, nil, err
	}

	hints := make(map[string]ingest.Hint, len(existing))
	for _, item := range existing {
		hints[strings.ToLower(item.Name)] = ingest.Hint{Category: item.Category, Unit: item.Unit}
	}

	return ingest.ParseSheet(file, hints)
}

// applyPurchase runs inside a unit of work: lock-or-create the item row,
// merge quantities, journal the purchase.
func applyPurchase(items repository.ItemRepository, movements repository.MovementRepository, req *PurchaseRequest, actor model.Actor) (*model.Item, error) {
	name := strings.TrimSpace(req.Name)
	qty := model.RoundQty(req.Quantity)

	item, err := items.FindByNameForUpdate(name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		item = &model.Item{
			Name:           name,
			Category:       req.Category,
			Quantity:       qty,
			Unit:           req.Unit,
			UnitPrice:      req.Rate,
			TotalPurchased: qty,
			LastVendor:     req.Vendor,
		}
		if item.Category == "" {
			item.Category = ingest.DetectCategory(name)
		}
		if item.Unit == "" {
			item.Unit = ingest.DetectUnit(name)
		}
		item.CreatedBy = actor.ID
		item.UpdatedBy = actor.ID
		if err := items.Create(item); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		item.Quantity = model.RoundQty(item.Quantity + qty)
		item.TotalPurchased = model.RoundQty(item.TotalPurchased + qty)
		if req.Rate > 0 {
			item.UnitPrice = req.Rate
		}
		// The uploaded sheet is the operator-confirmed source of truth,
		// so a conflicting unit or category overwrites the stored one.
		if req.Unit != "" {
			item.Unit = req.Unit
		}
		if req.Category != "" {
			item.Category = req.Category
		}
		if req.Vendor != "" {
			item.LastVendor = req.Vendor
		}
		item.UpdatedBy = actor.ID
		if err := items.Save(item); err != nil {
			return nil, err
		}
	}

	m := &model.Movement{
		ItemID:   item.ID,
		ItemName: item.Name,
		Category: item.Category,
		Type:     model.MovePurchase,
		Quantity: qty,
		Unit:     item.Unit,
		Rate:     req.Rate,
		Amount:   model.RoundQty(req.Rate * qty),
		Vendor:   req.Vendor,
		Username: actor.Username,
	}
	m.CreatedBy = actor.ID
	m.UpdatedBy = actor.ID
	if err := movements.Append(m); err != nil {
		return nil, err
	}

	return item, nil
}

func validateBulkRow(row ingest.PurchaseRow) string {
	if strings.TrimSpace(row.Name) == "" {
		return "missing item name"
	}
	if row.Quantity < 0 || math.IsNaN(row.Quantity) || math.IsInf(row.Quantity, 0) {
		return "quantity is not a non-negative number"
	}
	return ""
}
