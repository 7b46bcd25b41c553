package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleCapabilityBoundaries(t *testing.T) {
	// Manager maintains the catalogue but never records purchases or
	// kitchen issues.
	require.True(t, RoleAllows(RoleManager, CapItemCreate))
	require.True(t, RoleAllows(RoleManager, CapItemDelete))
	require.True(t, RoleAllows(RoleManager, CapCategoryManage))
	require.False(t, RoleAllows(RoleManager, CapPurchaseRecord))
	require.False(t, RoleAllows(RoleManager, CapKitchenIssue))

	// Purchase manager records stock in but cannot edit the catalogue.
	require.True(t, RoleAllows(RolePurchase, CapPurchaseRecord))
	require.True(t, RoleAllows(RolePurchase, CapPurchaseBulk))
	require.False(t, RoleAllows(RolePurchase, CapItemUpdate))
	require.False(t, RoleAllows(RolePurchase, CapKitchenIssue))

	// Kitchen manager issues stock out and nothing else.
	require.True(t, RoleAllows(RoleKitchen, CapKitchenIssue))
	require.False(t, RoleAllows(RoleKitchen, CapItemDelete))
	require.False(t, RoleAllows(RoleKitchen, CapPurchaseRecord))
	require.False(t, RoleAllows(RoleKitchen, CapCategoryManage))
}

func TestEveryRoleCanObserve(t *testing.T) {
	for _, role := range []string{RoleManager, RolePurchase, RoleKitchen} {
		require.True(t, RoleAllows(role, CapItemView), role)
		require.True(t, RoleAllows(role, CapLedgerView), role)
		require.True(t, RoleAllows(role, CapDashboardView), role)
	}
}

func TestUnknownRoleDeniedEverything(t *testing.T) {
	require.False(t, RoleAllows("", CapItemView))
	require.False(t, RoleAllows("ADMIN", CapItemView))
}

func TestRoundQty(t *testing.T) {
	require.Equal(t, 0.3, RoundQty(0.1+0.2))
	require.Equal(t, 1.234, RoundQty(1.23441))
	require.Equal(t, 1.235, RoundQty(1.23456))
	require.Equal(t, 0.0, RoundQty(0))
}

func TestItemLowStock(t *testing.T) {
	item := Item{Quantity: 5, TotalPurchased: 100}
	require.True(t, item.LowStock(10))

	item.Quantity = 15
	require.False(t, item.LowStock(10))

	// Seeded rows with no purchase history are never low.
	never := Item{Quantity: 0, TotalPurchased: 0}
	require.False(t, never.LowStock(10))
}
