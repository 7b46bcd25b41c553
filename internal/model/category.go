package model

// Category groups items for display and reporting. A category cannot be
// deleted while items still reference it; renames cascade to items.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Icon string `gorm:"type:varchar(16);default:'📦'" json:"icon"`
}

var DefaultCategories = []Category{
	{Name: "Beverages", Icon: "🥤"},
	{Name: "Bread", Icon: "🍞"},
	{Name: "Dairy", Icon: "🥛"},
	{Name: "Desserts", Icon: "🍰"},
	{Name: "Frozen Foods", Icon: "❄️"},
	{Name: "Fruits", Icon: "🍎"},
	{Name: "Grocery", Icon: "🛒"},
	{Name: "Sauce", Icon: "🫙"},
	{Name: "Vegetable", Icon: "🥬"},
}
