package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
)

// QuoteRequest is the JSON body for creating a quote.
type QuoteRequest struct {
	CustomerName   string  `json:"customerName"`
	CustomerEmail  string  `json:"customerEmail"`
	CustomerPhone  string  `json:"customerPhone"`
	ConsumptionKwh float64 `json:"consumptionKwh"`
}

// QuoteResponse is the JSON shape returned for a stored quote.
type QuoteResponse struct {
	ID             string            `json:"id"`
	Folio          string            `json:"folio"`
	CustomerName   string            `json:"customerName"`
	CustomerEmail  string            `json:"customerEmail,omitempty"`
	CustomerPhone  string            `json:"customerPhone,omitempty"`
	ConsumptionKwh float64           `json:"consumptionKwh"`
	Created        string            `json:"created"`
	Project        *services.Project `json:"project,omitempty"`
	Subtotal       float64           `json:"subtotal"`
	Tax            float64           `json:"tax"`
	Total          float64           `json:"total"`
}

// HandleQuoteCreate returns a handler that sizes an installation from
// the submitted consumption, persists the quote and returns the full
// project document.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req QuoteRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("quote_create: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		req.CustomerName = strings.TrimSpace(req.CustomerName)
		if req.CustomerName == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "customerName is required"})
		}

		project, err := services.ComputeQuote(e.Request.Context(), services.NewRecordCatalog(app), req.ConsumptionKwh)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidConsumption):
				return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			case errors.Is(err, services.ErrNoInverterCatalog):
				log.Printf("quote_create: %v", err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "inverter catalog is not configured"})
			default:
				log.Printf("quote_create: compute failed: %v", err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}
		}

		folio, err := services.GenerateFolio(app, time.Now())
		if err != nil {
			log.Printf("quote_create: folio generation failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		quotesCol, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_create: could not find quotes collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		raw, err := json.Marshal(project)
		if err != nil {
			log.Printf("quote_create: could not marshal project: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		record := core.NewRecord(quotesCol)
		record.Set("folio", folio)
		record.Set("customer_name", req.CustomerName)
		record.Set("customer_email", strings.TrimSpace(req.CustomerEmail))
		record.Set("customer_phone", strings.TrimSpace(req.CustomerPhone))
		record.Set("consumption_kwh", req.ConsumptionKwh)
		record.Set("project", string(raw))
		record.Set("subtotal", project.Pricing.Subtotal)
		record.Set("tax", project.Pricing.Tax)
		record.Set("total", project.Pricing.Total)

		if err := app.Save(record); err != nil {
			log.Printf("quote_create: could not save quote: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		return e.JSON(http.StatusCreated, QuoteResponse{
			ID:             record.Id,
			Folio:          folio,
			CustomerName:   req.CustomerName,
			CustomerEmail:  record.GetString("customer_email"),
			CustomerPhone:  record.GetString("customer_phone"),
			ConsumptionKwh: req.ConsumptionKwh,
			Created:        record.GetDateTime("created").String(),
			Project:        project,
			Subtotal:       project.Pricing.Subtotal,
			Tax:            project.Pricing.Tax,
			Total:          project.Pricing.Total,
		})
	}
}
