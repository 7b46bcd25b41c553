package model

// Item is a single storeroom inventory line. Items are keyed by id but
// unique by name: purchases merge into an existing row when the name
// matches. Quantity is never allowed to go negative.
type Item struct {
	BaseModel
	Name           string  `gorm:"type:varchar(255);uniqueIndex:idx_items_name,where:deleted_at IS NULL;not null" json:"name" validate:"required"`
	Category       string  `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Quantity       float64 `gorm:"not null;default:0" json:"quantity"`
	Unit           string  `gorm:"type:varchar(20);not null" json:"unit"`
	UnitPrice      float64 `gorm:"default:0" json:"unit_price"`
	TotalPurchased float64 `gorm:"not null;default:0" json:"total_purchased"`

	// Vendor of the most recent purchase, informational only.
	LastVendor string `gorm:"type:varchar(255)" json:"last_vendor,omitempty"`
}

// InStock reports whether any usable quantity remains.
func (i *Item) InStock() bool {
	return i.Quantity > 0
}

// Valuation is the item's contribution to total stock value.
func (i *Item) Valuation() float64 {
	return i.Quantity * i.UnitPrice
}

// LowStock reports whether remaining quantity has fallen below the given
// percentage of everything purchased so far. Items that were never
// purchased (manager-seeded rows) are never low.
func (i *Item) LowStock(thresholdPercent float64) bool {
	if i.TotalPurchased <= 0 {
		return false
	}
	return i.Quantity < i.TotalPurchased*thresholdPercent/100
}
