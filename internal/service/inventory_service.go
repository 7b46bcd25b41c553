package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"storeroom/internal/model"
	"storeroom/internal/repository"
	"storeroom/internal/ws"
	"storeroom/pkg/validator"

	"github.com/google/uuid"
)

// InventoryService is the manager-facing item catalogue: list, add, edit
// and delete. Every quantity change it makes is journalled as an ADJUST
// movement so the ledger stays complete.
type InventoryService interface {
	ListItems() ([]model.Item, error)
	GetItem(id uuid.UUID) (*model.Item, error)
	CreateItem(req *ItemRequest, actor model.Actor) (*model.Item, error)
	UpdateItem(id uuid.UUID, req *ItemRequest, actor model.Actor) (*model.Item, error)
	DeleteItem(id uuid.UUID, actor model.Actor) error
}

// ItemRequest carries the editable fields of an item.
type ItemRequest struct {
	Name      string  `json:"name" validate:"required"`
	Category  string  `json:"category" validate:"required"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit" validate:"required"`
	UnitPrice float64 `json:"unit_price"`
}

type inventoryService struct {
	items repository.ItemRepository
	uow   repository.UnitOfWork
	hub   *ws.Hub
}

func NewInventoryService(items repository.ItemRepository, uow repository.UnitOfWork, hub *ws.Hub) InventoryService {
	return &inventoryService{items: items, uow: uow, hub: hub}
}

func (s *inventoryService) ListItems() ([]model.Item, error) {
	return s.items.FindAll()
}

func (s *inventoryService) GetItem(id uuid.UUID) (*model.Item, error) {
	item, err := s.items.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	return item, err
}

func (s *inventoryService) CreateItem(req *ItemRequest, actor model.Actor) (*model.Item, error) {
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	item := &model.Item{
		Name:      strings.TrimSpace(req.Name),
		Category:  strings.TrimSpace(req.Category),
		Quantity:  model.RoundQty(req.Quantity),
		Unit:      strings.TrimSpace(req.Unit),
		UnitPrice: req.UnitPrice,
	}
	item.CreatedBy = actor.ID
	item.UpdatedBy = actor.ID

	err := s.uow.WithTx(func(items repository.ItemRepository, movements repository.MovementRepository) error {
		if existing, err := items.FindByName(item.Name); err == nil && existing != nil {
			return ErrItemExists
		}
		if err := items.Create(item); err != nil {
			return err
		}
		if item.Quantity > 0 {
			return movements.Append(adjustMovement(item, item.Quantity, "added by manager", actor))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(itemEvent("item_created", item, actor))
	return item, nil
}

func (s *inventoryService) UpdateItem(id uuid.UUID, req *ItemRequest, actor model.Actor) (*model.Item, error) {
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	var updated *model.Item
	err := s.uow.WithTx(func(items repository.ItemRepository, movements repository.MovementRepository) error {
		item, err := items.FindByIDForUpdate(id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		newName := strings.TrimSpace(req.Name)
		if !strings.EqualFold(item.Name, newName) {
			if clash, err := items.FindByName(newName); err == nil && clash != nil && clash.ID != item.ID {
				return ErrItemExists
			}
		}

		oldQty := item.Quantity
		item.Name = newName
		item.Category = strings.TrimSpace(req.Category)
		item.Quantity = model.RoundQty(req.Quantity)
		item.Unit = strings.TrimSpace(req.Unit)
		item.UnitPrice = req.UnitPrice
		item.UpdatedBy = actor.ID

		if err := items.Save(item); err != nil {
			return err
		}

		if delta := model.RoundQty(item.Quantity - oldQty); delta != 0 {
			notes := "stock increased by manager adjustment"
			if delta < 0 {
				notes = "stock reduced by manager adjustment"
			}
			if err := movements.Append(adjustMovement(item, math.Abs(delta), notes, actor)); err != nil {
				return err
			}
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(itemEvent("item_updated", updated, actor))
	return updated, nil
}

func (s *inventoryService) DeleteItem(id uuid.UUID, actor model.Actor) error {
	var deleted *model.Item
	err := s.uow.WithTx(func(items repository.ItemRepository, movements repository.MovementRepository) error {
		item, err := items.FindByIDForUpdate(id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if err := items.Delete(item.ID, actor.ID); err != nil {
			return err
		}

		deleted = item
		if item.Quantity > 0 {
			return movements.Append(adjustMovement(item, item.Quantity, "item deleted by manager", actor))
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.Publish(itemEvent("item_deleted", deleted, actor))
	return nil
}

func validateItemRequest(req *ItemRequest) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	if req.Quantity < 0 || math.IsNaN(req.Quantity) || math.IsInf(req.Quantity, 0) {
		return ErrInvalidQuantity
	}
	return nil
}

func adjustMovement(item *model.Item, qty float64, notes string, actor model.Actor) *model.Movement {
	m := &model.Movement{
		ItemID:   item.ID,
		ItemName: item.Name,
		Category: item.Category,
		Type:     model.MoveAdjust,
		Quantity: model.RoundQty(qty),
		Unit:     item.Unit,
		Notes:    notes,
		Username: actor.Username,
	}
	m.CreatedBy = actor.ID
	m.UpdatedBy = actor.ID
	return m
}

func itemEvent(action string, item *model.Item, actor model.Actor) map[string]interface{} {
	return map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"item": map[string]interface{}{
			"id":       item.ID,
			"name":     item.Name,
			"category": item.Category,
			"quantity": item.Quantity,
			"unit":     item.Unit,
		},
		"user":    actor.Username,
		"message": fmt.Sprintf("%s: %s '%s'", actor.Username, action, item.Name),
	}
}
