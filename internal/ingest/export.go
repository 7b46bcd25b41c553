package ingest

import (
	"bytes"
	"fmt"

	"storeroom/internal/model"

	"github.com/xuri/excelize/v2"
)

var ledgerHeader = []interface{}{
	"Date/Time", "Item Name", "Category", "Quantity", "Unit",
	"Type", "User", "Rate", "Amount", "Vendor", "Notes",
}

// WriteLedger renders ledger entries as an .xlsx workbook for download.
func WriteLedger(movements []model.Movement) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Movements"
	f.SetSheetName(f.GetSheetName(0), sheet)

	if err := f.SetSheetRow(sheet, "A1", &ledgerHeader); err != nil {
		return nil, err
	}

	for i, m := range movements {
		row := []interface{}{
			m.CreatedAt.Format("2006-01-02 15:04:05"),
			m.ItemName,
			m.Category,
			m.Quantity,
			m.Unit,
			string(m.Type),
			m.Username,
			m.Rate,
			m.Amount,
			m.Vendor,
			m.Notes,
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
