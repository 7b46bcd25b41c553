package repository

import (
	"storeroom/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// CategorySummary aggregates item counts per category for the dashboard.
type CategorySummary struct {
	Category   string `json:"category"`
	ItemCount  int64  `json:"item_count"`
	InStock    int64  `json:"in_stock"`
	OutOfStock int64  `json:"out_of_stock"`
}

// StoreStats is the dashboard headline block.
type StoreStats struct {
	TotalItems     int64   `json:"total_items"`
	LowStockCount  int64   `json:"low_stock_count"`
	TotalValuation float64 `json:"total_valuation"`
}

type ItemRepository interface {
	Create(item *model.Item) error
	FindAll() ([]model.Item, error)
	FindByID(id uuid.UUID) (*model.Item, error)
	FindByName(name string) (*model.Item, error)
	// ForUpdate variants lock the row for the duration of the enclosing
	// transaction; callers must be inside UnitOfWork.WithTx.
	FindByIDForUpdate(id uuid.UUID) (*model.Item, error)
	FindByNameForUpdate(name string) (*model.Item, error)
	Save(item *model.Item) error
	Delete(id uuid.UUID, deletedBy string) error
	CountByCategory(category string) (int64, error)
	CategorySummary() ([]CategorySummary, error)
	Stats(lowStockPercent float64) (*StoreStats, error)
	RenameCategory(oldName, newName string) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(item *model.Item) error {
	return r.db.Create(item).Error
}

func (r *itemRepo) FindAll() ([]model.Item, error) {
	var items []model.Item
	err := r.db.Order("category ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindByName(name string) (*model.Item, error) {
	var item model.Item
	if err := r.db.First(&item, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindByIDForUpdate(id uuid.UUID) (*model.Item, error) {
	var item model.Item
	err := r.db.Set("gorm:query_option", "FOR UPDATE").First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindByNameForUpdate(name string) (*model.Item, error) {
	var item model.Item
	err := r.db.Set("gorm:query_option", "FOR UPDATE").First(&item, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) Save(item *model.Item) error {
	return r.db.Save(item).Error
}

func (r *itemRepo) Delete(id uuid.UUID, deletedBy string) error {
	res := r.db.Model(&model.Item{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("NOW()"),
		"deleted_by": deletedBy,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepo) CountByCategory(category string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Item{}).Where("category = ?", category).Count(&count).Error
	return count, err
}

func (r *itemRepo) CategorySummary() ([]CategorySummary, error) {
	var summary []CategorySummary
	err := r.db.Model(&model.Item{}).
		Select(`
			category,
			COUNT(*) as item_count,
			COALESCE(SUM(CASE WHEN quantity > 0 THEN 1 ELSE 0 END), 0) as in_stock,
			COALESCE(SUM(CASE WHEN quantity <= 0 THEN 1 ELSE 0 END), 0) as out_of_stock
		`).
		Group("category").
		Order("category ASC").
		Scan(&summary).Error
	return summary, err
}

func (r *itemRepo) Stats(lowStockPercent float64) (*StoreStats, error) {
	var stats StoreStats

	if err := r.db.Model(&model.Item{}).Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Item{}).
		Where("total_purchased > 0 AND quantity < total_purchased * ? / 100.0", lowStockPercent).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Item{}).
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *itemRepo) RenameCategory(oldName, newName string) error {
	return r.db.Model(&model.Item{}).Where("category = ?", oldName).
		Update("category", newName).Error
}
