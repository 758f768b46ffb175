package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel bill of materials from the given
// QuoteExport and returns the file contents as a byte slice.
func GenerateExcel(data QuoteExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet name (max 31 chars).
	sheetName := data.Folio
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Quote"
	}

	// Rename default sheet.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through D).
	columns := []string{"A", "B", "C", "D"}
	lastCol := columns[len(columns)-1] // "D"

	// Set column widths.
	widths := []float64{46, 10, 8, 20}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	// Title style: bold, 16pt.
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	// Subtitle style (folio, customer, date).
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// Section row style: bold on light gray.
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 10,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#EBEBEB"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	// Material row style: normal with borders.
	itemStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	// Summary label style: bold, right-aligned.
	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	// Summary value style: bold.
	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-4) ───────────────────────────────────────────────

	// Row 1: Title merged across all columns.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", "Solar Installation Quote")
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	// Row 2: Folio and date.
	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge folio: %w", err)
	}
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Folio: %s    Date: %s", data.Folio, data.CreatedDate))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	// Row 3: Customer.
	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge customer: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Customer: "+sanitizeExcelCell(data.CustomerName))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// Row 4: System summary.
	if err := f.MergeCell(sheetName, "A4", lastCol+"4"); err != nil {
		return nil, fmt.Errorf("merge system: %w", err)
	}
	f.SetCellValue(sheetName, "A4", fmt.Sprintf(
		"System: %d panels / %d strings / %.0f W target (%.0f kWh bimonthly)",
		data.PanelCount, data.StringTotal, data.RequiredWatts, data.ConsumptionKwh,
	))
	f.SetCellStyle(sheetName, "A4", lastCol+"4", subtitleStyle)

	// ── Row 6: Column Headers ───────────────────────────────────────────

	headers := []string{"Description", "Qty", "Unit", "Price"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s6", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	// ── Data Rows (starting row 7) ──────────────────────────────────────

	row := 7
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)

		if r.Section {
			if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
				return nil, fmt.Errorf("merge section row %d: %w", row, err)
			}
			f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.Description))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, sectionStyle)
			row++
			continue
		}

		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell("  "+r.Description))
		f.SetCellValue(sheetName, "B"+rowStr, r.Qty)
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.Unit))
		f.SetCellValue(sheetName, "D"+rowStr, FormatMXN(r.Price))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)

		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	// Skip a blank row.
	row++

	summaryRows := []struct {
		label  string
		amount float64
	}{
		{"Subtotal:", data.Subtotal},
		{"IVA (16%):", data.Tax},
		{"Total:", data.Total},
	}
	for _, s := range summaryRows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "C"+rowStr, s.label)
		f.SetCellStyle(sheetName, "C"+rowStr, "C"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "D"+rowStr, FormatMXN(s.amount))
		f.SetCellStyle(sheetName, "D"+rowStr, "D"+rowStr, summaryValueStyle)
		row++
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
