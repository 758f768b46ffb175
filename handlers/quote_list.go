package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuoteList returns a handler that lists stored quotes, newest
// first, without the full project documents.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("quotes", "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("quote_list: query failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		quotes := make([]QuoteResponse, 0, len(records))
		for _, rec := range records {
			quotes = append(quotes, QuoteResponse{
				ID:             rec.Id,
				Folio:          rec.GetString("folio"),
				CustomerName:   rec.GetString("customer_name"),
				CustomerEmail:  rec.GetString("customer_email"),
				CustomerPhone:  rec.GetString("customer_phone"),
				ConsumptionKwh: rec.GetFloat("consumption_kwh"),
				Created:        rec.GetDateTime("created").String(),
				Subtotal:       rec.GetFloat("subtotal"),
				Tax:            rec.GetFloat("tax"),
				Total:          rec.GetFloat("total"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"quotes": quotes})
	}
}
