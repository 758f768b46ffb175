package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuoteDelete returns a handler that deletes a quote record.
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quote id"})
		}

		record, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quote not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quote_delete: could not delete quote %s: %v", quoteID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		return e.NoContent(http.StatusNoContent)
	}
}
