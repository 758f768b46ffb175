package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
)

// HandleInverterImport receives an uploaded inverter price list (.csv
// or .xlsx), validates it and saves the valid rows as active catalog
// records. Files with any invalid row are rejected whole, so a partial
// price update can never go live.
// Route: POST /api/catalog/inverters/import
func HandleInverterImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "file too large or invalid form data"})
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing file upload"})
		}
		defer file.Close()

		result, err := services.ValidateInverterFile(file, header.Filename)
		if err != nil {
			log.Printf("catalog_import: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		if result.ErrorRows > 0 {
			return e.JSON(http.StatusUnprocessableEntity, result)
		}

		imported, err := services.ImportInverters(app, result.Inverters)
		if err != nil {
			log.Printf("catalog_import: save failed after %d rows: %v", imported, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"imported":  imported,
			"totalRows": result.TotalRows,
		})
	}
}
