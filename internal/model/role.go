package model

// Role is one of the three fixed staff roles. Roles and their capability
// sets are seeded at startup and never change at runtime.
type Role struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Code         string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name         string       `gorm:"type:varchar(100)" json:"name"`
	Description  string       `gorm:"type:text" json:"description"`
	Capabilities []Capability `gorm:"many2many:role_capabilities;" json:"capabilities,omitempty"`
}

const (
	RoleManager  = "MANAGER"
	RolePurchase = "PURCHASE"
	RoleKitchen  = "KITCHEN"
)

var DefaultRoles = []Role{
	{
		Code:        RoleManager,
		Name:        "Store Manager",
		Description: "Views inventory and maintains the item catalogue",
	},
	{
		Code:        RolePurchase,
		Name:        "Purchase Manager",
		Description: "Records incoming stock, manually or from spreadsheets",
	},
	{
		Code:        RoleKitchen,
		Name:        "Kitchen Manager",
		Description: "Issues stock from the storeroom to the kitchen",
	},
}

// RoleCapabilities is the fixed capability table. Every role can view
// inventory, the ledger and the dashboard; mutations are role-specific.
var RoleCapabilities = map[string][]string{
	RoleManager: {
		CapItemView, CapItemCreate, CapItemUpdate, CapItemDelete,
		CapCategoryManage, CapLedgerView, CapDashboardView,
	},
	RolePurchase: {
		CapItemView, CapPurchaseRecord, CapPurchaseBulk,
		CapLedgerView, CapDashboardView,
	},
	RoleKitchen: {
		CapItemView, CapKitchenIssue,
		CapLedgerView, CapDashboardView,
	},
}

// RoleAllows reports whether the fixed table grants cap to role.
func RoleAllows(roleCode, cap string) bool {
	for _, c := range RoleCapabilities[roleCode] {
		if c == cap {
			return true
		}
	}
	return false
}
