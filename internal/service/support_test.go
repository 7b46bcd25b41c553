package service

import (
	"strings"
	"time"

	"storeroom/internal/model"
	"storeroom/internal/repository"

	"github.com/google/uuid"
)

// memoryStore backs the memory implementations of the item and movement
// repositories so services can be exercised without a database.
type memoryStore struct {
	items     []*model.Item
	movements []*model.Movement
}

func newMemoryStore() *memoryStore {
	return &memoryStore{}
}

func (s *memoryStore) itemRepo() *memoryItemRepo         { return &memoryItemRepo{store: s} }
func (s *memoryStore) movementRepo() *memoryMovementRepo { return &memoryMovementRepo{store: s} }

func (s *memoryStore) uow() repository.UnitOfWork { return &memoryUnitOfWork{store: s} }

func (s *memoryStore) addItem(item model.Item) *model.Item {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	stored := item
	s.items = append(s.items, &stored)
	return &stored
}

func (s *memoryStore) findByName(name string) *model.Item {
	for _, item := range s.items {
		if strings.EqualFold(item.Name, name) {
			return item
		}
	}
	return nil
}

type memoryUnitOfWork struct {
	store *memoryStore
}

func (u *memoryUnitOfWork) WithTx(fn func(items repository.ItemRepository, movements repository.MovementRepository) error) error {
	return fn(u.store.itemRepo(), u.store.movementRepo())
}

type memoryItemRepo struct {
	store *memoryStore
}

func (r *memoryItemRepo) Create(item *model.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	r.store.items = append(r.store.items, item)
	return nil
}

func (r *memoryItemRepo) FindAll() ([]model.Item, error) {
	out := make([]model.Item, 0, len(r.store.items))
	for _, item := range r.store.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *memoryItemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	for _, item := range r.store.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryItemRepo) FindByName(name string) (*model.Item, error) {
	if item := r.store.findByName(name); item != nil {
		return item, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memoryItemRepo) FindByIDForUpdate(id uuid.UUID) (*model.Item, error) {
	return r.FindByID(id)
}

func (r *memoryItemRepo) FindByNameForUpdate(name string) (*model.Item, error) {
	return r.FindByName(name)
}

func (r *memoryItemRepo) Save(item *model.Item) error {
	item.UpdatedAt = time.Now()
	return nil
}

func (r *memoryItemRepo) Delete(id uuid.UUID, deletedBy string) error {
	for i, item := range r.store.items {
		if item.ID == id {
			r.store.items = append(r.store.items[:i], r.store.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryItemRepo) CountByCategory(category string) (int64, error) {
	var count int64
	for _, item := range r.store.items {
		if item.Category == category {
			count++
		}
	}
	return count, nil
}

func (r *memoryItemRepo) CategorySummary() ([]repository.CategorySummary, error) {
	byCategory := map[string]*repository.CategorySummary{}
	for _, item := range r.store.items {
		s, ok := byCategory[item.Category]
		if !ok {
			s = &repository.CategorySummary{Category: item.Category}
			byCategory[item.Category] = s
		}
		s.ItemCount++
		if item.InStock() {
			s.InStock++
		} else {
			s.OutOfStock++
		}
	}
	out := make([]repository.CategorySummary, 0, len(byCategory))
	for _, s := range byCategory {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memoryItemRepo) Stats(lowStockPercent float64) (*repository.StoreStats, error) {
	stats := &repository.StoreStats{}
	for _, item := range r.store.items {
		stats.TotalItems++
		if item.LowStock(lowStockPercent) {
			stats.LowStockCount++
		}
		stats.TotalValuation += item.Valuation()
	}
	return stats, nil
}

func (r *memoryItemRepo) RenameCategory(oldName, newName string) error {
	for _, item := range r.store.items {
		if item.Category == oldName {
			item.Category = newName
		}
	}
	return nil
}

type memoryMovementRepo struct {
	store *memoryStore
}

func (r *memoryMovementRepo) Append(m *model.Movement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *memoryMovementRepo) List(filter repository.MovementFilter) ([]model.Movement, error) {
	out := []model.Movement{}
	for _, m := range r.store.movements {
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if !filter.From.IsZero() && m.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !m.CreatedAt.Before(filter.To) {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *memoryMovementRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	kept := r.store.movements[:0]
	var deleted int64
	for _, m := range r.store.movements {
		if m.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.store.movements = kept
	return deleted, nil
}

func (r *memoryMovementRepo) StockFlow(start, end time.Time) ([]repository.StockFlowPoint, error) {
	byDate := map[string]*repository.StockFlowPoint{}
	for _, m := range r.store.movements {
		if m.CreatedAt.Before(start) || m.CreatedAt.After(end) {
			continue
		}
		date := m.CreatedAt.Format("2006-01-02")
		p, ok := byDate[date]
		if !ok {
			p = &repository.StockFlowPoint{Date: date}
			byDate[date] = p
		}
		switch m.Type {
		case model.MovePurchase:
			p.Inbound += m.Quantity
		case model.MoveKitchen:
			p.Outbound += m.Quantity
		}
	}
	out := make([]repository.StockFlowPoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memoryMovementRepo) byType(t model.MovementType) []*model.Movement {
	var out []*model.Movement
	for _, m := range r.store.movements {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

func testActor() model.Actor {
	return model.Actor{ID: uuid.NewString(), Username: "manager"}
}
