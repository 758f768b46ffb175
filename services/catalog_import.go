package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ImportError represents a single field-level error on one row of an
// uploaded inverter price list.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is returned after parsing and validating an uploaded
// inverter price list.
type ImportResult struct {
	TotalRows int               `json:"totalRows"`
	ValidRows int               `json:"validRows"`
	ErrorRows int               `json:"errorRows"`
	Errors    []ImportError     `json:"errors,omitempty"`
	Inverters []CatalogInverter `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := allRows[0]
	dataRows := allRows[1:]
	return headers, dataRows, nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := rows[0]
	dataRows := rows[1:]
	return headers, dataRows, nil
}

// inverterColumns maps the accepted column header spellings to canonical
// field keys. Matching is case-insensitive on the trimmed header.
var inverterColumns = map[string]string{
	"model":           "model",
	"power":           "power_watts",
	"power (w)":       "power_watts",
	"power_watts":     "power_watts",
	"strings":         "string_capacity",
	"string capacity": "string_capacity",
	"string_capacity": "string_capacity",
	"price":           "unit_price_usd",
	"price (usd)":     "unit_price_usd",
	"unit_price_usd":  "unit_price_usd",
}

// mapInverterHeaders resolves uploaded column headers to field keys.
// Unrecognized columns map to "" and are skipped during row parsing.
func mapInverterHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		mapped[i] = inverterColumns[norm]
	}
	return mapped
}

// ValidateInverterFile parses and validates an uploaded inverter price
// list (.csv or .xlsx). Every row is checked; valid rows are collected
// in the result, errors are reported per row and field.
func ValidateInverterFile(file io.Reader, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapInverterHeaders(headers)

	result := &ImportResult{TotalRows: len(dataRows)}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		inv, rowErrors := parseInverterRow(rowNum, rowData)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}
		result.Inverters = append(result.Inverters, inv)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// parseInverterRow converts one mapped row into a CatalogInverter,
// collecting a validation error per bad field.
func parseInverterRow(rowNum int, data map[string]string) (CatalogInverter, []ImportError) {
	var errs []ImportError
	var inv CatalogInverter

	inv.Model = data["model"]
	if inv.Model == "" {
		errs = append(errs, ImportError{Row: rowNum, Field: "Model", Message: "Model is required"})
	}

	power, err := strconv.ParseFloat(data["power_watts"], 64)
	if err != nil || power <= 0 {
		errs = append(errs, ImportError{Row: rowNum, Field: "Power", Message: "Power must be a positive number of watts"})
	}
	inv.PowerWatts = power

	capacity, err := strconv.Atoi(data["string_capacity"])
	if err != nil || capacity < 1 {
		errs = append(errs, ImportError{Row: rowNum, Field: "Strings", Message: "String capacity must be a whole number of at least 1"})
	}
	inv.StringCapacity = capacity

	price, err := strconv.ParseFloat(data["unit_price_usd"], 64)
	if err != nil || price <= 0 {
		errs = append(errs, ImportError{Row: rowNum, Field: "Price", Message: "Price must be a positive USD amount"})
	}
	inv.UnitPriceUSD = price

	return inv, errs
}

// ImportInverters saves the validated inverter rows as active catalog
// records. An existing active record with the same model is deactivated
// first, so re-importing a price list updates prices in place.
func ImportInverters(app *pocketbase.PocketBase, inverters []CatalogInverter) (int, error) {
	col, err := app.FindCollectionByNameOrId("inverters")
	if err != nil {
		return 0, fmt.Errorf("import: could not find inverters collection: %w", err)
	}

	saved := 0
	for _, inv := range inverters {
		same, err := app.FindRecordsByFilter(
			"inverters", "active = true && model = {:model}", "", 0, 0,
			map[string]any{"model": inv.Model},
		)
		if err == nil {
			for _, rec := range same {
				rec.Set("active", false)
				if err := app.Save(rec); err != nil {
					return saved, fmt.Errorf("import: could not deactivate inverter %s: %w", rec.Id, err)
				}
			}
		}

		record := core.NewRecord(col)
		record.Set("model", inv.Model)
		record.Set("power_watts", inv.PowerWatts)
		record.Set("string_capacity", inv.StringCapacity)
		record.Set("unit_price_usd", inv.UnitPriceUSD)
		record.Set("active", true)

		if err := app.Save(record); err != nil {
			return saved, fmt.Errorf("import: could not save inverter %q: %w", inv.Model, err)
		}
		saved++
	}

	return saved, nil
}
