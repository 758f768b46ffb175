package services

import (
	"context"
	"errors"
)

// ErrInvalidConsumption rejects non-positive consumption input before
// any sizing runs.
var ErrInvalidConsumption = errors.New("consumption must be a positive kWh value")

// Pricing is the quote roll-up. Its fields are deliberately named
// Subtotal/Tax/Total rather than Price so they never collide with the
// aggregator's leaf naming.
type Pricing struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Project is the fully sized installation for one quote. It is built
// once per request and treated as read-only by every consumer
// (persistence, PDF, email).
type Project struct {
	ConsumptionKwh   float64          `json:"consumptionKwh"`
	RequiredWatts    float64          `json:"requiredWatts"`
	ExchangeRate     float64          `json:"exchangeRate"`
	Panels           PanelBlock       `json:"panels"`
	Inverters        []InverterLine   `json:"inverters"`
	Strings          StringPlan       `json:"strings"`
	Cables           CableRun         `json:"cables"`
	Racking          RackingBlock     `json:"racking"`
	ConduitMaterials ConduitMaterials `json:"conduitMaterials"`
	Labor            LaborBlock       `json:"labor"`
	Pricing          Pricing          `json:"pricing"`
}

// CostTree maps the project into the aggregator's typed tree: one leaf
// per priced line, grouping mirroring the document structure. The
// Pricing roll-up stays out of the tree.
func (p *Project) CostTree() CostNode {
	inverters := make(CostList, 0, len(p.Inverters))
	for _, line := range p.Inverters {
		inverters = append(inverters, PricedItem{Price: line.Price})
	}

	return CostGroup{
		"panels":    PricedItem{Price: p.Panels.Price},
		"inverters": inverters,
		"cables": CostGroup{
			"dcPositive": PricedItem{Price: p.Cables.DCPositive.Price},
			"dcNegative": PricedItem{Price: p.Cables.DCNegative.Price},
			"dcGround":   PricedItem{Price: p.Cables.DCGround.Price},
			"acPhase":    PricedItem{Price: p.Cables.ACPhase.Price},
			"acNeutral":  PricedItem{Price: p.Cables.ACNeutral.Price},
		},
		"racking": PricedItem{Price: p.Racking.Price},
		"conduitMaterials": CostGroup{
			"tubes":         PricedItem{Price: p.ConduitMaterials.Tubes.Price},
			"junctionBoxes": PricedItem{Price: p.ConduitMaterials.JunctionBoxes.Price},
			"connectors":    PricedItem{Price: p.ConduitMaterials.Connectors.Price},
			"couplers":      PricedItem{Price: p.ConduitMaterials.Couplers.Price},
			"elbows":        PricedItem{Price: p.ConduitMaterials.Elbows.Price},
		},
		"labor": PricedItem{Price: p.Labor.Price},
	}
}

// ComputeQuote runs the full sizing pipeline for a bimonthly kWh
// consumption figure against a catalog snapshot loaded from provider.
//
// The pipeline order is fixed by data dependencies: panels first, then
// strings, racking and labor from the panel count, then cables and
// conduit from the string total, then the aggregate. Only the catalog
// reads run concurrently.
func ComputeQuote(ctx context.Context, provider CatalogProvider, consumptionKwh float64) (*Project, error) {
	if consumptionKwh <= 0 {
		return nil, ErrInvalidConsumption
	}

	catalog := LoadCatalog(ctx, provider)

	panels := PanelsRequired(consumptionKwh, catalog.Panel, catalog.ExchangeRate)

	inverters, err := SelectInverters(consumptionKwh, catalog.Inverters, catalog.ExchangeRate)
	if err != nil {
		return nil, err
	}

	strings := SizeStrings(panels.Count)
	racking := SizeRacking(panels.Count, catalog.Frame, catalog.ExchangeRate)
	labor := LaborCost(panels.Count)

	cables := SizeCables(strings.Total)
	conduit := SizeConduit(strings.Total)

	project := &Project{
		ConsumptionKwh:   consumptionKwh,
		RequiredWatts:    round2(RequiredPowerWatts(consumptionKwh)),
		ExchangeRate:     catalog.ExchangeRate,
		Panels:           panels,
		Inverters:        inverters,
		Strings:          strings,
		Cables:           cables,
		Racking:          racking,
		ConduitMaterials: conduit,
		Labor:            labor,
	}

	subtotal := round2(AggregatePrice(project.CostTree()))
	tax := round2(subtotal * TaxRate)
	project.Pricing = Pricing{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    round2(subtotal + tax),
	}

	return project, nil
}
