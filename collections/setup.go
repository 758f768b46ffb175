package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the panels, inverters, frames,
// exchange_rates and quotes collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "panels", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "brand", Required: false})
		c.Fields.Add(&core.NumberField{Name: "power_watts", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price_usd", Required: true})
		c.Fields.Add(&core.BoolField{Name: "active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "inverters", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "model", Required: true})
		c.Fields.Add(&core.NumberField{Name: "power_watts", Required: true})
		c.Fields.Add(&core.NumberField{Name: "string_capacity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price_usd", Required: true})
		c.Fields.Add(&core.BoolField{Name: "active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "frames", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "model", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_price_usd", Required: true})
		c.Fields.Add(&core.BoolField{Name: "active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "exchange_rates", func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "rate", Required: true})
		c.Fields.Add(&core.TextField{Name: "source", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "folio", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: true})
		c.Fields.Add(&core.EmailField{Name: "customer_email", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_phone", Required: false})
		c.Fields.Add(&core.NumberField{Name: "consumption_kwh", Required: true})
		c.Fields.Add(&core.JSONField{Name: "project", Required: true})
		c.Fields.Add(&core.NumberField{Name: "subtotal", Required: true})
		c.Fields.Add(&core.NumberField{Name: "tax", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
