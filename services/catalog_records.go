package services

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// RecordCatalog reads catalog entities from the PocketBase collections
// created by collections.Setup. "Current" always means the newest
// active record, so catalog updates take effect by inserting a new
// record rather than editing in place.
type RecordCatalog struct {
	app *pocketbase.PocketBase
}

func NewRecordCatalog(app *pocketbase.PocketBase) *RecordCatalog {
	return &RecordCatalog{app: app}
}

func (c *RecordCatalog) GetCurrentPanel(_ context.Context) (*CatalogPanel, error) {
	records, err := c.app.FindRecordsByFilter("panels", "active = true", "-created", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("find current panel: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]
	return &CatalogPanel{
		Brand:        rec.GetString("brand"),
		PowerWatts:   rec.GetFloat("power_watts"),
		UnitPriceUSD: rec.GetFloat("unit_price_usd"),
	}, nil
}

func (c *RecordCatalog) GetInverterCatalog(_ context.Context) ([]CatalogInverter, error) {
	records, err := c.app.FindRecordsByFilter("inverters", "active = true", "power_watts", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("find inverter catalog: %w", err)
	}
	var catalog []CatalogInverter
	for _, rec := range records {
		catalog = append(catalog, CatalogInverter{
			Model:          rec.GetString("model"),
			PowerWatts:     rec.GetFloat("power_watts"),
			StringCapacity: rec.GetInt("string_capacity"),
			UnitPriceUSD:   rec.GetFloat("unit_price_usd"),
		})
	}
	return catalog, nil
}

func (c *RecordCatalog) GetCurrentFrame(_ context.Context) (*CatalogFrame, error) {
	records, err := c.app.FindRecordsByFilter("frames", "active = true", "-created", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("find current frame: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]
	return &CatalogFrame{
		Model:        rec.GetString("model"),
		UnitPriceUSD: rec.GetFloat("unit_price_usd"),
	}, nil
}

func (c *RecordCatalog) GetExchangeRate(_ context.Context) (float64, error) {
	records, err := c.app.FindRecordsByFilter("exchange_rates", "rate > 0", "-created", 1, 0)
	if err != nil {
		return 0, fmt.Errorf("find exchange rate: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	return records[0].GetFloat("rate"), nil
}
