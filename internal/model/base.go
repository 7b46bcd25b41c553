package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the UUID primary key, timestamps and audit trail
// shared by all persisted entities. Soft delete via gorm.DeletedAt.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by"`
	DeletedBy string `json:"deleted_by"`
}

func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// RoundQty rounds a stock quantity to 3 decimal places. All quantities pass
// through this before persisting, so float drift never accumulates past a
// gram/millilitre.
func RoundQty(q float64) float64 {
	return math.Round(q*1000) / 1000
}

// QtyTolerance is the slack allowed when comparing a requested quantity
// against available stock, covering rounding error on equal amounts.
const QtyTolerance = 0.001
