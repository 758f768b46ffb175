package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type panelDef struct {
	brand        string
	powerWatts   float64
	unitPriceUSD float64
}

type inverterDef struct {
	model          string
	powerWatts     float64
	stringCapacity int
	unitPriceUSD   float64
}

type frameDef struct {
	model        string
	unitPriceUSD float64
}

// ── Seed data ────────────────────────────────────────────────────────────
// Mirrors the embedded defaults in the services package, so a freshly
// seeded store and a degraded catalog fetch produce the same numbers.

var seedPanel = panelDef{brand: "generic 550", powerWatts: 550, unitPriceUSD: 91}

var seedInverters = []inverterDef{
	{model: "SIW-3000", powerWatts: 3000, stringCapacity: 2, unitPriceUSD: 485},
	{model: "SIW-6000", powerWatts: 6000, stringCapacity: 3, unitPriceUSD: 842},
	{model: "SIW-10000", powerWatts: 10000, stringCapacity: 4, unitPriceUSD: 1290},
	{model: "SIW-36000", powerWatts: 36000, stringCapacity: 8, unitPriceUSD: 3975},
}

var seedFrame = frameDef{model: "4-panel ground mount", unitPriceUSD: 74}

const seedExchangeRate = 20.28

// Seed populates the catalog collections with the default panel,
// inverter set, frame and exchange rate. It is safe to call on every
// startup because it returns early if any panel records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if a catalog already exists ────────────────
	panelsCol, err := app.FindCollectionByNameOrId("panels")
	if err != nil {
		return fmt.Errorf("seed: could not find panels collection: %w", err)
	}
	existing, err := app.FindAllRecords(panelsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query panels: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: panels collection is empty – inserting default catalog …")

	invertersCol, err := app.FindCollectionByNameOrId("inverters")
	if err != nil {
		return fmt.Errorf("seed: could not find inverters collection: %w", err)
	}
	framesCol, err := app.FindCollectionByNameOrId("frames")
	if err != nil {
		return fmt.Errorf("seed: could not find frames collection: %w", err)
	}
	ratesCol, err := app.FindCollectionByNameOrId("exchange_rates")
	if err != nil {
		return fmt.Errorf("seed: could not find exchange_rates collection: %w", err)
	}

	panel := core.NewRecord(panelsCol)
	panel.Set("brand", seedPanel.brand)
	panel.Set("power_watts", seedPanel.powerWatts)
	panel.Set("unit_price_usd", seedPanel.unitPriceUSD)
	panel.Set("active", true)
	if err := app.Save(panel); err != nil {
		return fmt.Errorf("seed: could not save panel: %w", err)
	}

	for _, d := range seedInverters {
		r := core.NewRecord(invertersCol)
		r.Set("model", d.model)
		r.Set("power_watts", d.powerWatts)
		r.Set("string_capacity", d.stringCapacity)
		r.Set("unit_price_usd", d.unitPriceUSD)
		r.Set("active", true)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save inverter %q: %w", d.model, err)
		}
	}

	frame := core.NewRecord(framesCol)
	frame.Set("model", seedFrame.model)
	frame.Set("unit_price_usd", seedFrame.unitPriceUSD)
	frame.Set("active", true)
	if err := app.Save(frame); err != nil {
		return fmt.Errorf("seed: could not save frame: %w", err)
	}

	rate := core.NewRecord(ratesCol)
	rate.Set("rate", seedExchangeRate)
	rate.Set("source", "seed")
	if err := app.Save(rate); err != nil {
		return fmt.Errorf("seed: could not save exchange rate: %w", err)
	}

	log.Println("seed: default catalog inserted.")
	return nil
}
