// Package services implements the solar quote engine: catalog snapshots,
// rule-based sizing, labor tiers, cost aggregation, quote assembly and
// document export.
package services

import (
	"context"
	"log"
	"sort"
	"time"
)

// CatalogPanel is the reference record for the panel model currently sold.
type CatalogPanel struct {
	Brand        string  `json:"brand"`
	PowerWatts   float64 `json:"powerWatts"`
	UnitPriceUSD float64 `json:"unitPriceUsd"`
}

// CatalogInverter is one inverter model available for selection.
type CatalogInverter struct {
	Model          string  `json:"model"`
	PowerWatts     float64 `json:"powerWatts"`
	StringCapacity int     `json:"stringCapacity"`
	UnitPriceUSD   float64 `json:"unitPriceUsd"`
}

// CatalogFrame is the racking unit record.
type CatalogFrame struct {
	Model        string  `json:"model"`
	UnitPriceUSD float64 `json:"unitPriceUsd"`
}

// CatalogProvider supplies current catalog records. Implementations
// return a nil record (or zero rate) to signal "not found"; the caller
// substitutes built-in defaults. Failures never propagate into sizing.
type CatalogProvider interface {
	GetCurrentPanel(ctx context.Context) (*CatalogPanel, error)
	GetInverterCatalog(ctx context.Context) ([]CatalogInverter, error)
	GetCurrentFrame(ctx context.Context) (*CatalogFrame, error)
	GetExchangeRate(ctx context.Context) (float64, error)
}

// CatalogSnapshot is the read-only catalog state one quote computation
// runs against. It is assembled once per request and never mutated, so
// concurrent quotes cannot race on shared catalog state.
type CatalogSnapshot struct {
	Panel        CatalogPanel
	Inverters    []CatalogInverter
	Frame        *CatalogFrame
	ExchangeRate float64
}

// DefaultPanel is the built-in panel spec used when the catalog is empty.
var DefaultPanel = CatalogPanel{
	Brand:        "generic 550",
	PowerWatts:   550,
	UnitPriceUSD: 91,
}

// DefaultInverters is the built-in inverter catalog, ascending by power.
var DefaultInverters = []CatalogInverter{
	{Model: "SIW-3000", PowerWatts: 3000, StringCapacity: 2, UnitPriceUSD: 485},
	{Model: "SIW-6000", PowerWatts: 6000, StringCapacity: 3, UnitPriceUSD: 842},
	{Model: "SIW-10000", PowerWatts: 10000, StringCapacity: 4, UnitPriceUSD: 1290},
	{Model: "SIW-36000", PowerWatts: 36000, StringCapacity: 8, UnitPriceUSD: 3975},
}

// DefaultCatalog returns a snapshot built entirely from embedded defaults.
// The frame is left nil so racking falls back to its flat unit price.
func DefaultCatalog() CatalogSnapshot {
	inverters := make([]CatalogInverter, len(DefaultInverters))
	copy(inverters, DefaultInverters)
	return CatalogSnapshot{
		Panel:        DefaultPanel,
		Inverters:    inverters,
		ExchangeRate: DefaultExchangeRate,
	}
}

// catalogFetchTimeout bounds the catalog fan-out so a slow store cannot
// stall a quote; on expiry the defaults are used.
const catalogFetchTimeout = 3 * time.Second

// LoadCatalog fetches the four catalog entities concurrently and joins
// them into a snapshot. Each read degrades independently to its default
// on error, absence or timeout. The returned inverter list is sorted
// ascending by power, the order selection depends on.
func LoadCatalog(ctx context.Context, provider CatalogProvider) CatalogSnapshot {
	snap := DefaultCatalog()
	if provider == nil {
		return snap
	}

	ctx, cancel := context.WithTimeout(ctx, catalogFetchTimeout)
	defer cancel()

	type result struct {
		panel     *CatalogPanel
		inverters []CatalogInverter
		frame     *CatalogFrame
		rate      float64
	}
	var res result
	done := make(chan struct{})

	go func() {
		defer close(done)

		panelCh := make(chan *CatalogPanel, 1)
		invCh := make(chan []CatalogInverter, 1)
		frameCh := make(chan *CatalogFrame, 1)
		rateCh := make(chan float64, 1)

		go func() {
			p, err := provider.GetCurrentPanel(ctx)
			if err != nil {
				log.Printf("catalog: panel fetch failed, using default: %v", err)
				p = nil
			}
			panelCh <- p
		}()
		go func() {
			inv, err := provider.GetInverterCatalog(ctx)
			if err != nil {
				log.Printf("catalog: inverter fetch failed, using defaults: %v", err)
				inv = nil
			}
			invCh <- inv
		}()
		go func() {
			f, err := provider.GetCurrentFrame(ctx)
			if err != nil {
				log.Printf("catalog: frame fetch failed, using fallback price: %v", err)
				f = nil
			}
			frameCh <- f
		}()
		go func() {
			r, err := provider.GetExchangeRate(ctx)
			if err != nil {
				log.Printf("catalog: exchange rate fetch failed, using default: %v", err)
				r = 0
			}
			rateCh <- r
		}()

		res.panel = <-panelCh
		res.inverters = <-invCh
		res.frame = <-frameCh
		res.rate = <-rateCh
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("catalog: fetch timed out, using defaults: %v", ctx.Err())
		return snap
	}

	if res.panel != nil && res.panel.PowerWatts > 0 {
		snap.Panel = *res.panel
	}
	if len(res.inverters) > 0 {
		snap.Inverters = res.inverters
	}
	if res.frame != nil {
		snap.Frame = res.frame
	}
	if res.rate > 0 {
		snap.ExchangeRate = res.rate
	}

	sort.Slice(snap.Inverters, func(i, j int) bool {
		return snap.Inverters[i].PowerWatts < snap.Inverters[j].PowerWatts
	})

	return snap
}
