package ingest

import (
	"testing"
	"time"

	"storeroom/internal/model"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteLedger(t *testing.T) {
	when := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	movements := []model.Movement{
		{
			ItemName: "Basmati Rice",
			Category: "Grocery",
			Type:     model.MovePurchase,
			Quantity: 25.5,
			Unit:     "KG",
			Rate:     120,
			Amount:   3060,
			Vendor:   "Metro Wholesale",
			Username: "purchase_manager",
		},
		{
			ItemName: "Basmati Rice",
			Category: "Grocery",
			Type:     model.MoveKitchen,
			Quantity: 5,
			Unit:     "KG",
			Notes:    "lunch prep",
			Username: "kitchen_manager",
		},
	}
	movements[0].CreatedAt = when
	movements[1].CreatedAt = when.Add(2 * time.Hour)

	buf, err := WriteLedger(movements)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Movements")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "Item Name", rows[0][1])
	require.Equal(t, "2026-03-14 09:30:00", rows[1][0])
	require.Equal(t, "Basmati Rice", rows[1][1])
	require.Equal(t, "PURCHASE", rows[1][5])
	require.Equal(t, "KITCHEN", rows[2][5])
	require.Equal(t, "lunch prep", rows[2][10])
}

func TestWriteLedgerEmpty(t *testing.T) {
	buf, err := WriteLedger(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Movements")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
