package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
)

// buildQuoteExport loads a stored quote and flattens it for rendering.
func buildQuoteExport(app *pocketbase.PocketBase, quoteID string) (services.QuoteExport, error) {
	record, project, err := loadQuote(app, quoteID)
	if err != nil {
		return services.QuoteExport{}, fmt.Errorf("quote not found: %w", err)
	}

	createdDate := "—"
	if dt := record.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	return services.BuildQuoteExport(
		record.GetString("folio"),
		record.GetString("customer_name"),
		createdDate,
		project,
	), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleQuoteExportPDF returns a handler that generates and downloads
// the quote document as PDF.
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quote id"})
		}

		data, err := buildQuoteExport(app, quoteID)
		if err != nil {
			log.Printf("quote_export_pdf: %v", err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quote not found"})
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("quote_export_pdf: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate PDF file"})
		}

		filename := fmt.Sprintf("Quote_%s.pdf", sanitizeFilename(data.Folio))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleQuoteExportExcel returns a handler that generates and downloads
// the quote bill of materials as an Excel file.
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quote id"})
		}

		data, err := buildQuoteExport(app, quoteID)
		if err != nil {
			log.Printf("quote_export_excel: %v", err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quote not found"})
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("quote_export_excel: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate Excel file"})
		}

		filename := fmt.Sprintf("Quote_%s.xlsx", sanitizeFilename(data.Folio))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
