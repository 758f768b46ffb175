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

// HandlePanelCurrent returns a handler that returns the panel model
// quotes are currently sized with, falling back to the built-in default.
func HandlePanelCurrent(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		panel, err := services.NewRecordCatalog(app).GetCurrentPanel(context.Background())
		if err != nil {
			log.Printf("catalog_panels: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		if panel == nil {
			def := services.DefaultPanel
			return e.JSON(http.StatusOK, map[string]any{"panel": def, "source": "default"})
		}
		return e.JSON(http.StatusOK, map[string]any{"panel": panel, "source": "catalog"})
	}
}

// HandlePanelCreate returns a handler that registers a new current
// panel model. Prior active panels are deactivated so the newest record
// wins.
func HandlePanelCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			Brand        string  `json:"brand"`
			PowerWatts   float64 `json:"powerWatts"`
			UnitPriceUSD float64 `json:"unitPriceUsd"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if req.PowerWatts <= 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "powerWatts must be positive"})
		}
		if req.UnitPriceUSD <= 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "unitPriceUsd must be positive"})
		}

		col, err := app.FindCollectionByNameOrId("panels")
		if err != nil {
			log.Printf("catalog_panels: could not find panels collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		// Deactivate prior panels; the new record becomes current.
		active, err := app.FindRecordsByFilter("panels", "active = true", "", 0, 0)
		if err == nil {
			for _, rec := range active {
				rec.Set("active", false)
				if err := app.Save(rec); err != nil {
					log.Printf("catalog_panels: could not deactivate panel %s: %v", rec.Id, err)
				}
			}
		}

		record := core.NewRecord(col)
		record.Set("brand", strings.TrimSpace(req.Brand))
		record.Set("power_watts", req.PowerWatts)
		record.Set("unit_price_usd", req.UnitPriceUSD)
		record.Set("active", true)

		if err := app.Save(record); err != nil {
			log.Printf("catalog_panels: could not save panel: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}
