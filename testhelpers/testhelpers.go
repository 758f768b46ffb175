// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestPanel creates an active panel catalog record and returns it.
func CreateTestPanel(t *testing.T, app *pocketbase.PocketBase, brand string, powerWatts, unitPriceUSD float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("panels")
	if err != nil {
		t.Fatalf("failed to find panels collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("brand", brand)
	record.Set("power_watts", powerWatts)
	record.Set("unit_price_usd", unitPriceUSD)
	record.Set("active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test panel: %v", err)
	}

	return record
}

// CreateTestInverter creates an active inverter catalog record and returns it.
func CreateTestInverter(t *testing.T, app *pocketbase.PocketBase, model string, powerWatts float64, stringCapacity int, unitPriceUSD float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("inverters")
	if err != nil {
		t.Fatalf("failed to find inverters collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("model", model)
	record.Set("power_watts", powerWatts)
	record.Set("string_capacity", stringCapacity)
	record.Set("unit_price_usd", unitPriceUSD)
	record.Set("active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test inverter: %v", err)
	}

	return record
}

// CreateTestFrame creates an active frame catalog record and returns it.
func CreateTestFrame(t *testing.T, app *pocketbase.PocketBase, model string, unitPriceUSD float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("frames")
	if err != nil {
		t.Fatalf("failed to find frames collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("model", model)
	record.Set("unit_price_usd", unitPriceUSD)
	record.Set("active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test frame: %v", err)
	}

	return record
}

// CreateTestExchangeRate creates an exchange rate record and returns it.
func CreateTestExchangeRate(t *testing.T, app *pocketbase.PocketBase, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("exchange_rates")
	if err != nil {
		t.Fatalf("failed to find exchange_rates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("rate", rate)
	record.Set("source", "test")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test exchange rate: %v", err)
	}

	return record
}

// CreateTestQuote creates a quote record with a minimal project payload.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, folio, customerName string, consumptionKwh float64, project any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	raw, err := json.Marshal(project)
	if err != nil {
		t.Fatalf("failed to marshal test project: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("folio", folio)
	record.Set("customer_name", customerName)
	record.Set("customer_email", "customer@example.com")
	record.Set("consumption_kwh", consumptionKwh)
	record.Set("project", string(raw))
	record.Set("subtotal", 1000.0)
	record.Set("tax", 160.0)
	record.Set("total", 1160.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
