package service

import (
	"testing"

	"storeroom/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateItemJournalsOpeningStock(t *testing.T) {
	store := newMemoryStore()
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)
	actor := testActor()

	item, err := svc.CreateItem(&ItemRequest{
		Name:      "Basmati Rice",
		Category:  "Grocery",
		Quantity:  25.5,
		Unit:      "KG",
		UnitPrice: 120,
	}, actor)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, item.ID)
	require.InDelta(t, 25.5, item.Quantity, 0.0001)

	require.Len(t, store.movements, 1)
	m := store.movements[0]
	require.Equal(t, model.MoveAdjust, m.Type)
	require.Equal(t, "Basmati Rice", m.ItemName)
	require.InDelta(t, 25.5, m.Quantity, 0.0001)
}

func TestCreateItemZeroQuantityNoMovement(t *testing.T) {
	store := newMemoryStore()
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)

	_, err := svc.CreateItem(&ItemRequest{Name: "Saffron", Category: "Spices", Unit: "GM"}, testActor())
	require.NoError(t, err)
	require.Empty(t, store.movements)
}

func TestCreateItemDuplicateName(t *testing.T) {
	store := newMemoryStore()
	store.addItem(model.Item{Name: "Olive Oil", Category: "Oil & Ghee", Unit: "LTR"})
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)

	_, err := svc.CreateItem(&ItemRequest{Name: "olive oil", Category: "Oil & Ghee", Unit: "LTR"}, testActor())
	require.ErrorIs(t, err, ErrItemExists)
}

func TestCreateItemRejectsBadQuantity(t *testing.T) {
	store := newMemoryStore()
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)

	_, err := svc.CreateItem(&ItemRequest{Name: "Flour", Category: "Grocery", Quantity: -2, Unit: "KG"}, testActor())
	require.ErrorIs(t, err, ErrInvalidQuantity)
	require.Empty(t, store.items)
}

func TestCreateItemRequiresFields(t *testing.T) {
	store := newMemoryStore()
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)

	_, err := svc.CreateItem(&ItemRequest{Name: "", Category: "Grocery", Unit: "KG"}, testActor())
	require.Error(t, err)
	require.Empty(t, store.items)
}

func TestUpdateItemQuantityDeltaJournalled(t *testing.T) {
	store := newMemoryStore()
	item := store.addItem(model.Item{Name: "Sugar", Category: "Grocery", Quantity: 10, Unit: "KG"})
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)

	updated, err := svc.UpdateItem(item.ID, &ItemRequest{
		Name:     "Sugar",
		Category: "Grocery",
		Quantity: 7.25,
		Unit:     "KG",
	}, testActor())
	require.NoError(t, err)
	require.InDelta(t, 7.25, updated.Quantity, 0.0001)

	require.Len(t, store.movements, 1)
	m := store.movements[0]
	require.Equal(t, model.MoveAdjust, m.Type)
	require.InDelta(t, 2.75, m.Quantity, 0.0001)
	require.Contains(t, m.Notes, "reduced")
}

func TestUpdateItemSameQuantityNoMovement(t *testing.T) {
	store := newMemoryStore()
	item := store.addItem(model.Item{Name: "Sugar", Category: "Grocery", Quantity: 10, Unit: "KG"})
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)

	_, err := svc.UpdateItem(item.ID, &ItemRequest{
		Name:     "Sugar",
		Category: "Grocery",
		Quantity: 10,
		Unit:     "KG",
	}, testActor())
	require.NoError(t, err)
	require.Empty(t, store.movements)
}

func TestUpdateItemRenameCollision(t *testing.T) {
	store := newMemoryStore()
	store.addItem(model.Item{Name: "Salt", Category: "Grocery", Unit: "KG"})
	item := store.addItem(model.Item{Name: "Pepper", Category: "Spices", Unit: "KG"})
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)

	_, err := svc.UpdateItem(item.ID, &ItemRequest{
		Name:     "Salt",
		Category: "Spices",
		Unit:     "KG",
	}, testActor())
	require.ErrorIs(t, err, ErrItemExists)
}

func TestUpdateItemNotFound(t *testing.T) {
	store := newMemoryStore()
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)

	_, err := svc.UpdateItem(uuid.New(), &ItemRequest{Name: "Ghost", Category: "Grocery", Unit: "KG"}, testActor())
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteItemJournalsRemainingStock(t *testing.T) {
	store := newMemoryStore()
	item := store.addItem(model.Item{Name: "Paneer", Category: "Dairy", Quantity: 4, Unit: "KG"})
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)

	require.NoError(t, svc.DeleteItem(item.ID, testActor()))
	require.Empty(t, store.items)

	require.Len(t, store.movements, 1)
	require.Equal(t, model.MoveAdjust, store.movements[0].Type)
	require.InDelta(t, 4, store.movements[0].Quantity, 0.0001)
}

func TestGetItemNotFound(t *testing.T) {
	store := newMemoryStore()
	svc := NewInventoryService(store.itemRepo(), store.uow(), nil)

	_, err := svc.GetItem(uuid.New())
	require.ErrorIs(t, err, ErrItemNotFound)
}
