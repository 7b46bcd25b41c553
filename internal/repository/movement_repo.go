package repository

import (
	"time"

	"storeroom/internal/model"

	"gorm.io/gorm"
)

// MovementFilter narrows ledger listings. Zero values mean "no filter".
type MovementFilter struct {
	Type  model.MovementType
	From  time.Time
	To    time.Time
	Limit int
}

// StockFlowPoint is one day of aggregated inbound/outbound quantity.
type StockFlowPoint struct {
	Date     string  `json:"date"`
	Inbound  float64 `json:"inbound"`
	Outbound float64 `json:"outbound"`
}

// MovementRepository is the append-only stock ledger. Entries are written
// once and never updated; the only destructive operation is retention
// cleanup of old rows.
type MovementRepository interface {
	Append(m *model.Movement) error
	List(filter MovementFilter) ([]model.Movement, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
	StockFlow(start, end time.Time) ([]StockFlowPoint, error)
}

type movementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepository {
	return &movementRepo{db}
}

func (r *movementRepo) Append(m *model.Movement) error {
	return r.db.Create(m).Error
}

func (r *movementRepo) List(filter MovementFilter) ([]model.Movement, error) {
	q := r.db.Model(&model.Movement{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if !filter.From.IsZero() {
		q = q.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("created_at < ?", filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var movements []model.Movement
	err := q.Order("created_at DESC").Limit(limit).Find(&movements).Error
	return movements, err
}

func (r *movementRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Unscoped().Where("created_at < ?", cutoff).Delete(&model.Movement{})
	return res.RowsAffected, res.Error
}

func (r *movementRepo) StockFlow(start, end time.Time) ([]StockFlowPoint, error) {
	var results []StockFlowPoint

	rows, err := r.db.Model(&model.Movement{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type = 'PURCHASE' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'KITCHEN' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p StockFlowPoint
		if err := rows.Scan(&p.Date, &p.Inbound, &p.Outbound); err != nil {
			return nil, err
		}
		results = append(results, p)
	}

	return results, rows.Err()
}
