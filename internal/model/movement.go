package model

import "github.com/google/uuid"

type MovementType string

const (
	MovePurchase MovementType = "PURCHASE" // stock entered the storeroom
	MoveKitchen  MovementType = "KITCHEN"  // stock issued to the kitchen
	MoveAdjust   MovementType = "ADJUST"   // manager correction
)

// Movement is one entry in the append-only stock ledger. Rows are written
// by purchases, kitchen transfers and manager adjustments and are never
// updated afterwards. Item name/category/unit are denormalized so the
// ledger survives item renames and deletes.
type Movement struct {
	BaseModel
	ItemID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"item_id" validate:"uuid_required"`
	ItemName string       `gorm:"type:varchar(255);not null" json:"item_name"`
	Category string       `gorm:"type:varchar(100)" json:"category"`
	Type     MovementType `gorm:"type:varchar(10);not null;index" json:"type" validate:"required,oneof=PURCHASE KITCHEN ADJUST"`
	Quantity float64      `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Unit     string       `gorm:"type:varchar(20)" json:"unit"`

	// Purchase details; zero/empty for kitchen and adjust entries.
	Rate   float64 `json:"rate,omitempty"`
	Amount float64 `json:"amount,omitempty"`
	Vendor string  `gorm:"type:varchar(255)" json:"vendor,omitempty"`

	Notes    string `gorm:"type:text" json:"notes,omitempty"`
	Username string `gorm:"type:varchar(100);not null" json:"username"`
}
