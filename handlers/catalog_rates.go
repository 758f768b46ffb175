package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
)

// HandleExchangeRateCurrent returns a handler that returns the USD→MXN
// rate quotes are currently converted with.
func HandleExchangeRateCurrent(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rate, err := services.NewRecordCatalog(app).GetExchangeRate(context.Background())
		if err != nil {
			log.Printf("catalog_rates: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		if rate <= 0 {
			return e.JSON(http.StatusOK, map[string]any{"rate": services.DefaultExchangeRate, "source": "default"})
		}
		return e.JSON(http.StatusOK, map[string]any{"rate": rate, "source": "catalog"})
	}
}

// HandleExchangeRateCreate returns a handler that records a new current
// exchange rate.
func HandleExchangeRateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			Rate   float64 `json:"rate"`
			Source string  `json:"source"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if req.Rate <= 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "rate must be positive"})
		}

		col, err := app.FindCollectionByNameOrId("exchange_rates")
		if err != nil {
			log.Printf("catalog_rates: could not find exchange_rates collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		record := core.NewRecord(col)
		record.Set("rate", req.Rate)
		record.Set("source", strings.TrimSpace(req.Source))

		if err := app.Save(record); err != nil {
			log.Printf("catalog_rates: could not save exchange rate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}
