package collections_test

import (
	"testing"

	"solarquote/collections"
	"solarquote/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"panels",
	"inverters",
	"frames",
	"exchange_rates",
	"quotes",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	// Collect IDs from first run
	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	// Run Setup() again
	collections.Setup(app)

	// IDs should not change
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_PanelsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("panels")

	requiredFields := []string{"power_watts", "unit_price_usd"}
	optionalFields := []string{"brand", "active", "created", "updated"}

	for _, f := range requiredFields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("panels: missing required field %q", f)
		}
	}
	for _, f := range optionalFields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("panels: missing field %q", f)
		}
	}

	activeField := col.Fields.GetByName("active")
	if _, ok := activeField.(*core.BoolField); !ok {
		t.Errorf("panels.active is not a BoolField")
	}
}

func TestSetup_InvertersFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("inverters")

	fields := []string{"model", "power_watts", "string_capacity", "unit_price_usd", "active", "created", "updated"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("inverters: missing field %q", f)
		}
	}

	capField := col.Fields.GetByName("string_capacity")
	if _, ok := capField.(*core.NumberField); !ok {
		t.Errorf("inverters.string_capacity is not a NumberField")
	}
}

func TestSetup_FramesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("frames")

	fields := []string{"model", "unit_price_usd", "active", "created", "updated"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("frames: missing field %q", f)
		}
	}
}

func TestSetup_ExchangeRatesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("exchange_rates")

	fields := []string{"rate", "source", "created"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("exchange_rates: missing field %q", f)
		}
	}
}

func TestSetup_QuotesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("quotes")

	fields := []string{
		"folio", "customer_name", "customer_email", "customer_phone",
		"consumption_kwh", "project", "subtotal", "tax", "total",
		"created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("quotes: missing field %q", f)
		}
	}

	emailField := col.Fields.GetByName("customer_email")
	if _, ok := emailField.(*core.EmailField); !ok {
		t.Errorf("quotes.customer_email is not an EmailField")
	}

	projectField := col.Fields.GetByName("project")
	if _, ok := projectField.(*core.JSONField); !ok {
		t.Errorf("quotes.project is not a JSONField")
	}
}
