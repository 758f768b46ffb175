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

// HandleInverterList returns a handler that returns the active inverter
// catalog sorted ascending by power, falling back to the built-in set.
func HandleInverterList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		catalog, err := services.NewRecordCatalog(app).GetInverterCatalog(context.Background())
		if err != nil {
			log.Printf("catalog_inverters: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		if len(catalog) == 0 {
			return e.JSON(http.StatusOK, map[string]any{"inverters": services.DefaultInverters, "source": "default"})
		}
		return e.JSON(http.StatusOK, map[string]any{"inverters": catalog, "source": "catalog"})
	}
}

// HandleInverterCreate returns a handler that adds an inverter model to
// the catalog. An existing active record with the same model is
// deactivated first, so re-posting a model updates its price.
func HandleInverterCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			Model          string  `json:"model"`
			PowerWatts     float64 `json:"powerWatts"`
			StringCapacity int     `json:"stringCapacity"`
			UnitPriceUSD   float64 `json:"unitPriceUsd"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		req.Model = strings.TrimSpace(req.Model)
		if req.Model == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "model is required"})
		}
		if req.PowerWatts <= 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "powerWatts must be positive"})
		}
		if req.StringCapacity < 1 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "stringCapacity must be at least 1"})
		}
		if req.UnitPriceUSD <= 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "unitPriceUsd must be positive"})
		}

		col, err := app.FindCollectionByNameOrId("inverters")
		if err != nil {
			log.Printf("catalog_inverters: could not find inverters collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		same, err := app.FindRecordsByFilter(
			"inverters", "active = true && model = {:model}", "", 0, 0,
			map[string]any{"model": req.Model},
		)
		if err == nil {
			for _, rec := range same {
				rec.Set("active", false)
				if err := app.Save(rec); err != nil {
					log.Printf("catalog_inverters: could not deactivate inverter %s: %v", rec.Id, err)
				}
			}
		}

		record := core.NewRecord(col)
		record.Set("model", req.Model)
		record.Set("power_watts", req.PowerWatts)
		record.Set("string_capacity", req.StringCapacity)
		record.Set("unit_price_usd", req.UnitPriceUSD)
		record.Set("active", true)

		if err := app.Save(record); err != nil {
			log.Printf("catalog_inverters: could not save inverter: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}
