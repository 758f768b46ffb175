package services

import "fmt"

// QuoteExportRow is a single line of the exported bill of materials.
// Section rows carry only a description and group the rows below them.
type QuoteExportRow struct {
	Section     bool
	Description string
	Qty         float64
	Unit        string
	Price       float64
}

// QuoteExport holds everything the PDF and Excel renderers need.
type QuoteExport struct {
	Folio          string
	CustomerName   string
	CreatedDate    string
	ConsumptionKwh float64
	RequiredWatts  float64
	PanelCount     int
	StringTotal    int
	Rows           []QuoteExportRow
	Subtotal       float64
	Tax            float64
	Total          float64
}

// BuildQuoteExport flattens a sized project into export rows, one row
// per priced bill-of-materials line, grouped under section headers.
func BuildQuoteExport(folio, customerName, createdDate string, project *Project) QuoteExport {
	var rows []QuoteExportRow

	section := func(desc string) {
		rows = append(rows, QuoteExportRow{Section: true, Description: desc})
	}
	line := func(desc string, qty float64, unit string, price float64) {
		rows = append(rows, QuoteExportRow{Description: desc, Qty: qty, Unit: unit, Price: price})
	}

	section("Solar panels")
	line(
		fmt.Sprintf("%.0f W photovoltaic panel", project.Panels.UnitPowerWatts),
		float64(project.Panels.Count), "pcs", project.Panels.Price,
	)

	section("Inverters")
	for _, inv := range project.Inverters {
		line(
			fmt.Sprintf("%s (%.0f W, %d strings)", inv.Model, inv.PowerWatts, inv.StringsSupported),
			float64(inv.Quantity), "pcs", inv.Price,
		)
	}

	section("Racking")
	line("Mounting structure (4 panels per unit)", float64(project.Racking.Quantity), "pcs", project.Racking.Price)

	section("Cabling")
	line("PV wire, DC positive", project.Cables.DCPositive.Quantity, "m", project.Cables.DCPositive.Price)
	line("PV wire, DC negative", project.Cables.DCNegative.Quantity, "m", project.Cables.DCNegative.Price)
	line("Ground conductor", project.Cables.DCGround.Quantity, "m", project.Cables.DCGround.Price)
	line("AC phase conductor", project.Cables.ACPhase.Quantity, "m", project.Cables.ACPhase.Price)
	line("AC neutral conductor", project.Cables.ACNeutral.Quantity, "m", project.Cables.ACNeutral.Price)

	section(fmt.Sprintf("Conduit (%s)", project.ConduitMaterials.Diameter))
	line("Conduit tube, 3 m", project.ConduitMaterials.Tubes.Quantity, "pcs", project.ConduitMaterials.Tubes.Price)
	line("Junction box", project.ConduitMaterials.JunctionBoxes.Quantity, "pcs", project.ConduitMaterials.JunctionBoxes.Price)
	line("Connector", project.ConduitMaterials.Connectors.Quantity, "pcs", project.ConduitMaterials.Connectors.Price)
	line("Coupler", project.ConduitMaterials.Couplers.Quantity, "pcs", project.ConduitMaterials.Couplers.Price)
	line("Elbow", project.ConduitMaterials.Elbows.Quantity, "pcs", project.ConduitMaterials.Elbows.Price)

	section("Labor and fees")
	line("Installation, engineering, shipping and permits", 1, "lot", project.Labor.Price)

	return QuoteExport{
		Folio:          folio,
		CustomerName:   customerName,
		CreatedDate:    createdDate,
		ConsumptionKwh: project.ConsumptionKwh,
		RequiredWatts:  project.RequiredWatts,
		PanelCount:     project.Panels.Count,
		StringTotal:    project.Strings.Total,
		Rows:           rows,
		Subtotal:       project.Pricing.Subtotal,
		Tax:            project.Pricing.Tax,
		Total:          project.Pricing.Total,
	}
}
