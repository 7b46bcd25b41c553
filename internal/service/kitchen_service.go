package service

import (
	"errors"
	"fmt"
	"math"

	"storeroom/internal/alerts"
	"storeroom/internal/model"
	"storeroom/internal/repository"
	"storeroom/internal/ws"

	"github.com/google/uuid"
)

// KitchenService issues stock from the storeroom to the kitchen. A
// transfer either deducts the full requested quantity and appends a
// KITCHEN ledger entry, or fails with ErrInsufficientStock and changes
// nothing. There are no partial transfers.
type KitchenService interface {
	Transfer(itemID uuid.UUID, quantity float64, notes string, actor model.Actor) (*model.Movement, error)
}

type kitchenService struct {
	uow             repository.UnitOfWork
	hub             *ws.Hub
	notifier        alerts.Notifier
	lowStockPercent float64
}

func NewKitchenService(uow repository.UnitOfWork, hub *ws.Hub, notifier alerts.Notifier, lowStockPercent float64) KitchenService {
	return &kitchenService{
		uow:             uow,
		hub:             hub,
		notifier:        notifier,
		lowStockPercent: lowStockPercent,
	}
}

func (s *kitchenService) Transfer(itemID uuid.UUID, quantity float64, notes string, actor model.Actor) (*model.Movement, error) {
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return nil, ErrInvalidQuantity
	}
	qty := model.RoundQty(quantity)

	var movement *model.Movement
	var after model.Item

	err := s.uow.WithTx(func(items repository.ItemRepository, movements repository.MovementRepository) error {
		item, err := items.FindByIDForUpdate(itemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		available := model.RoundQty(item.Quantity)
		if available+model.QtyTolerance < qty {
			return fmt.Errorf("%w: available %.3f %s, requested %.3f",
				ErrInsufficientStock, available, item.Unit, qty)
		}

		newQty := model.RoundQty(available - qty)
		if newQty < 0 {
			newQty = 0
		}
		item.Quantity = newQty
		item.UpdatedBy = actor.ID
		if err := items.Save(item); err != nil {
			return err
		}

		movement = &model.Movement{
			ItemID:   item.ID,
			ItemName: item.Name,
			Category: item.Category,
			Type:     model.MoveKitchen,
			Quantity: qty,
			Unit:     item.Unit,
			Notes:    notes,
			Username: actor.Username,
		}
		movement.CreatedBy = actor.ID
		movement.UpdatedBy = actor.ID
		if err := movements.Append(movement); err != nil {
			return err
		}

		after = *item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "kitchen_transfer",
		"item": map[string]interface{}{
			"id":       after.ID,
			"name":     after.Name,
			"quantity": after.Quantity,
			"unit":     after.Unit,
		},
		"user":    actor.Username,
		"message": fmt.Sprintf("%s issued %.3f %s of '%s' to the kitchen", actor.Username, qty, after.Unit, after.Name),
	})

	if s.notifier != nil && after.LowStock(s.lowStockPercent) {
		go s.notifier.LowStock(after)
	}

	return movement, nil
}
