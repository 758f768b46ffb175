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

// HandleFrameCurrent returns a handler that returns the racking frame
// quotes are currently priced with. Without a catalog record racking
// uses its flat fallback unit price, reported here as such.
func HandleFrameCurrent(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		frame, err := services.NewRecordCatalog(app).GetCurrentFrame(context.Background())
		if err != nil {
			log.Printf("catalog_frames: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		if frame == nil {
			return e.JSON(http.StatusOK, map[string]any{
				"frame":           nil,
				"fallbackUnitMxn": services.FallbackFrameUnitPrice,
				"source":          "fallback",
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"frame": frame, "source": "catalog"})
	}
}

// HandleFrameCreate returns a handler that registers a new current
// racking frame, deactivating prior records.
func HandleFrameCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			Model        string  `json:"model"`
			UnitPriceUSD float64 `json:"unitPriceUsd"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if req.UnitPriceUSD <= 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "unitPriceUsd must be positive"})
		}

		col, err := app.FindCollectionByNameOrId("frames")
		if err != nil {
			log.Printf("catalog_frames: could not find frames collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		active, err := app.FindRecordsByFilter("frames", "active = true", "", 0, 0)
		if err == nil {
			for _, rec := range active {
				rec.Set("active", false)
				if err := app.Save(rec); err != nil {
					log.Printf("catalog_frames: could not deactivate frame %s: %v", rec.Id, err)
				}
			}
		}

		record := core.NewRecord(col)
		record.Set("model", strings.TrimSpace(req.Model))
		record.Set("unit_price_usd", req.UnitPriceUSD)
		record.Set("active", true)

		if err := app.Save(record); err != nil {
			log.Printf("catalog_frames: could not save frame: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}
