package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
)

// loadQuote fetches a quote record and unmarshals its project document.
func loadQuote(app *pocketbase.PocketBase, quoteID string) (*core.Record, *services.Project, error) {
	record, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return nil, nil, err
	}

	var project services.Project
	if err := json.Unmarshal([]byte(record.GetString("project")), &project); err != nil {
		return nil, nil, err
	}

	return record, &project, nil
}

// HandleQuoteView returns a handler that returns one quote including
// its full project document.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quote id"})
		}

		record, project, err := loadQuote(app, quoteID)
		if err != nil {
			log.Printf("quote_view: could not load quote %s: %v", quoteID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quote not found"})
		}

		return e.JSON(http.StatusOK, QuoteResponse{
			ID:             record.Id,
			Folio:          record.GetString("folio"),
			CustomerName:   record.GetString("customer_name"),
			CustomerEmail:  record.GetString("customer_email"),
			CustomerPhone:  record.GetString("customer_phone"),
			ConsumptionKwh: record.GetFloat("consumption_kwh"),
			Created:        record.GetDateTime("created").String(),
			Project:        project,
			Subtotal:       record.GetFloat("subtotal"),
			Tax:            record.GetFloat("tax"),
			Total:          record.GetFloat("total"),
		})
	}
}
