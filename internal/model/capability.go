package model

// Capability represents one operation a role may invoke.
type Capability struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g. "item:create"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Capability codes used across handlers and seeding.
const (
	CapItemView       = "item:view"
	CapItemCreate     = "item:create"
	CapItemUpdate     = "item:update"
	CapItemDelete     = "item:delete"
	CapPurchaseRecord = "purchase:record"
	CapPurchaseBulk   = "purchase:bulk"
	CapKitchenIssue   = "kitchen:transfer"
	CapLedgerView     = "ledger:view"
	CapDashboardView  = "dashboard:view"
	CapCategoryManage = "category:manage"
)

var DefaultCapabilities = []Capability{
	{Code: CapItemView, Name: "View Inventory"},
	{Code: CapItemCreate, Name: "Add Inventory Item"},
	{Code: CapItemUpdate, Name: "Edit Inventory Item"},
	{Code: CapItemDelete, Name: "Delete Inventory Item"},
	{Code: CapPurchaseRecord, Name: "Record Purchase"},
	{Code: CapPurchaseBulk, Name: "Bulk Upload Purchases"},
	{Code: CapKitchenIssue, Name: "Issue Stock to Kitchen"},
	{Code: CapLedgerView, Name: "View Stock Ledger"},
	{Code: CapDashboardView, Name: "View Dashboard"},
	{Code: CapCategoryManage, Name: "Manage Categories"},
}
