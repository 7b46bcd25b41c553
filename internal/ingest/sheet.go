package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// PurchaseRow is one candidate purchase parsed from a spreadsheet or
// submitted directly in a bulk request.
type PurchaseRow struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Rate     float64 `json:"rate,omitempty"`
	Vendor   string  `json:"vendor,omitempty"`

	// AutoDetected flags a category guessed from the item name, so the
	// UI can ask for confirmation before upload.
	AutoDetected bool `json:"auto_detected"`
}

// RejectedRow reports one row that failed validation, with enough context
// to fix the sheet. A rejected row never aborts the rest of the batch.
type RejectedRow struct {
	Line   int         `json:"line"`
	Row    PurchaseRow `json:"row"`
	Reason string      `json:"reason"`
}

// Hint carries the category/unit of an item already in stock, used to
// fill gaps in sheets that only list name and quantity. Keys are
// lowercased item names.
type Hint struct {
	Category string
	Unit     string
}

// ParseSheet reads the first worksheet of an .xlsx file into purchase
// rows. Column meaning is inferred from the header row: the parser looks
// for item/quantity/category/unit/rate/vendor columns by name and falls
// back to the first column for the item name. Rows with a missing name or
// an unparsable/negative quantity are reported as rejected.
func ParseSheet(r io.Reader, hints map[string]Hint) ([]PurchaseRow, []RejectedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("spreadsheet has no worksheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read worksheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	cols := detectColumns(rows[0])

	var accepted []PurchaseRow
	var rejected []RejectedRow

	for i, cells := range rows[1:] {
		line := i + 2 // 1-based, after header
		if blankRow(cells) {
			continue
		}

		row := PurchaseRow{
			Name:   cell(cells, cols.name),
			Vendor: cell(cells, cols.vendor),
		}
		if row.Name == "" {
			rejected = append(rejected, RejectedRow{Line: line, Row: row, Reason: "missing item name"})
			continue
		}

		qtyRaw := cell(cells, cols.qty)
		qty, err := strconv.ParseFloat(strings.ReplaceAll(qtyRaw, ",", ""), 64)
		if err != nil {
			rejected = append(rejected, RejectedRow{Line: line, Row: row,
				Reason: fmt.Sprintf("quantity %q is not a number", qtyRaw)})
			continue
		}
		if qty < 0 {
			rejected = append(rejected, RejectedRow{Line: line, Row: row, Reason: "quantity is negative"})
			continue
		}
		row.Quantity = qty

		if rateRaw := cell(cells, cols.rate); rateRaw != "" {
			if rate, err := strconv.ParseFloat(strings.ReplaceAll(rateRaw, ",", ""), 64); err == nil && rate >= 0 {
				row.Rate = rate
			}
		}

		// Category and unit resolution: sheet value first, then the
		// existing inventory row, then keyword detection.
		row.Category = cell(cells, cols.category)
		row.Unit = NormalizeUnit(cell(cells, cols.unit))

		hint, hinted := hints[strings.ToLower(row.Name)]
		if row.Category == "" && hinted {
			row.Category = hint.Category
		}
		if row.Unit == "" && hinted {
			row.Unit = hint.Unit
		}
		if row.Category == "" {
			row.Category = DetectCategory(row.Name)
			row.AutoDetected = true
		}
		if row.Unit == "" {
			row.Unit = DetectUnit(row.Name)
		}

		accepted = append(accepted, row)
	}

	return accepted, rejected, nil
}

type columnIndices struct {
	name, qty, category, unit, rate, vendor int
}

func detectColumns(header []string) columnIndices {
	cols := columnIndices{name: -1, qty: -1, category: -1, unit: -1, rate: -1, vendor: -1}
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case cols.name < 0 && (strings.Contains(lower, "item") || strings.Contains(lower, "name") || strings.Contains(lower, "product")):
			cols.name = i
		case cols.qty < 0 && (strings.Contains(lower, "qty") || strings.Contains(lower, "quantity")):
			cols.qty = i
		case cols.category < 0 && strings.Contains(lower, "cat"):
			cols.category = i
		case cols.unit < 0 && strings.Contains(lower, "unit"):
			cols.unit = i
		case cols.rate < 0 && (strings.Contains(lower, "rate") || strings.Contains(lower, "price")):
			cols.rate = i
		case cols.vendor < 0 && (strings.Contains(lower, "vendor") || strings.Contains(lower, "supplier")):
			cols.vendor = i
		}
	}
	if cols.name < 0 {
		cols.name = 0
	}
	return cols
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
