package services

import (
	"errors"
	"math"
)

// ErrNoInverterCatalog means neither the catalog nor the embedded
// defaults supplied any inverter to select from.
var ErrNoInverterCatalog = errors.New("no inverter catalog available")

// RequiredPowerWatts converts a bimonthly kWh consumption figure into
// the array power target: average daily watt-hours over peak sun hours.
func RequiredPowerWatts(consumptionKwh float64) float64 {
	dailyWh := consumptionKwh * bimonthlyKwhToDailyWh
	return dailyWh / PeakSunHours
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PanelBlock is the sized panel section of a project.
type PanelBlock struct {
	Count          int     `json:"count"`
	UnitPowerWatts float64 `json:"unitPowerWatts"`
	Price          float64 `json:"price"`
}

// PanelsRequired sizes the array for the given bimonthly consumption.
// Count is always at least 1 for positive consumption.
func PanelsRequired(consumptionKwh float64, panel CatalogPanel, exchangeRate float64) PanelBlock {
	required := RequiredPowerWatts(consumptionKwh)
	count := int(math.Ceil(required / panel.PowerWatts))
	if count < 1 {
		count = 1
	}
	price := round2(float64(count) * panel.UnitPriceUSD * exchangeRate * (1 + PanelMarkup))
	return PanelBlock{
		Count:          count,
		UnitPowerWatts: panel.PowerWatts,
		Price:          price,
	}
}

// InverterLine is one selected inverter model with its quantity.
// Price covers the full quantity, so the aggregator sums it as-is.
type InverterLine struct {
	Model            string  `json:"model"`
	PowerWatts       float64 `json:"powerWatts"`
	Quantity         int     `json:"quantity"`
	StringsSupported int     `json:"stringsSupported"`
	Price            float64 `json:"price"`
}

// SelectInverters covers the required power target by greedy
// bin-covering over the catalog, which must be sorted ascending by
// power. Each iteration picks the smallest model whose power covers the
// remaining target, or the largest model when none does; that fallback
// guarantees termination even when the catalog tops out below the
// target. The loop stops once the uncovered remainder drops to 3% of
// the original target. The threshold is computed once, up front, and
// never drifts with the remainder. Remaining may go negative after the
// final pick.
func SelectInverters(consumptionKwh float64, catalog []CatalogInverter, exchangeRate float64) ([]InverterLine, error) {
	if len(catalog) == 0 {
		return nil, ErrNoInverterCatalog
	}

	required := RequiredPowerWatts(consumptionKwh)
	threshold := required * InverterCoverageSlack
	remaining := required

	counts := make(map[string]int)
	for remaining > threshold {
		pick := catalog[len(catalog)-1]
		for _, inv := range catalog {
			if inv.PowerWatts >= remaining {
				pick = inv
				break
			}
		}
		counts[pick.Model]++
		remaining -= pick.PowerWatts
	}

	// Group by model, preserving catalog order for stable output.
	var lines []InverterLine
	for _, inv := range catalog {
		qty := counts[inv.Model]
		if qty == 0 {
			continue
		}
		lines = append(lines, InverterLine{
			Model:            inv.Model,
			PowerWatts:       inv.PowerWatts,
			Quantity:         qty,
			StringsSupported: inv.StringCapacity,
			Price:            round2(float64(qty) * inv.UnitPriceUSD * exchangeRate * (1 + InverterMarkup)),
		})
	}
	return lines, nil
}

// StringPlan is the DC string layout for a panel count.
type StringPlan struct {
	Complete    int `json:"complete"`
	LastPartial int `json:"lastPartial"`
	Total       int `json:"total"`
}

// MaxPanelsPerString is how many series-wired panels fit under the
// string voltage limit.
func MaxPanelsPerString() int {
	return int(MaxStringVoltage / PanelVoltage)
}

// SizeStrings lays panels out into full-capacity strings plus at most
// one trailing partial string.
func SizeStrings(panelCount int) StringPlan {
	capacity := MaxPanelsPerString()
	complete := panelCount / capacity
	lastPartial := panelCount - complete*capacity
	total := complete
	if lastPartial > 0 {
		total++
	}
	return StringPlan{Complete: complete, LastPartial: lastPartial, Total: total}
}

// MaterialLine is a named bill-of-materials entry. Quantity is in the
// item's natural unit (meters or pieces); Price covers the quantity.
type MaterialLine struct {
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// CableRun is the conductor bill of materials for one installation.
type CableRun struct {
	DCPositive MaterialLine `json:"dcPositive"`
	DCNegative MaterialLine `json:"dcNegative"`
	DCGround   MaterialLine `json:"dcGround"`
	ACPhase    MaterialLine `json:"acPhase"`
	ACNeutral  MaterialLine `json:"acNeutral"`
}

// SizeCables prices the conductor runs. DC positive/negative scale with
// the string count over the trench distance, the ground is a single
// trench run, and the AC side is a fixed run regardless of array size.
func SizeCables(totalStrings int) CableRun {
	dcMeters := TrenchMeters * float64(totalStrings)
	meterLine := func(meters, pricePerMeter float64) MaterialLine {
		return MaterialLine{Quantity: meters, Price: round2(meters * pricePerMeter)}
	}
	return CableRun{
		DCPositive: meterLine(dcMeters, dcPositivePerMeter),
		DCNegative: meterLine(dcMeters, dcNegativePerMeter),
		DCGround:   meterLine(TrenchMeters, dcGroundPerMeter),
		ACPhase:    meterLine(ACRunMeters, acPhasePerMeter),
		ACNeutral:  meterLine(ACRunMeters, acNeutralPerMeter),
	}
}

// RackingBlock is the sized mounting-structure section.
type RackingBlock struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// SizeRacking sizes mounting units at four panels per unit. With a
// catalog frame the unit price is USD cost converted and marked up;
// without one a flat MXN fallback price applies.
func SizeRacking(panelCount int, frame *CatalogFrame, exchangeRate float64) RackingBlock {
	quantity := int(math.Ceil(float64(panelCount) / PanelsPerRack))
	unitPrice := FallbackFrameUnitPrice
	if frame != nil {
		unitPrice = frame.UnitPriceUSD * exchangeRate * (1 + FrameMarkup)
	}
	return RackingBlock{
		Quantity: quantity,
		Price:    round2(float64(quantity) * unitPrice),
	}
}

// conduitTier holds MXN unit prices for one conduit diameter class.
type conduitTier struct {
	diameter  string
	tube      float64
	box       float64
	connector float64
	coupler   float64
	elbow     float64
}

// conduitTiers maps a maximum string count to a diameter class,
// checked in order; the last row is the catch-all.
var conduitTiers = []struct {
	maxStrings int
	tier       conduitTier
}{
	{3, conduitTier{diameter: `3/4"`, tube: 52, box: 85, connector: 14, coupler: 9, elbow: 18}},
	{5, conduitTier{diameter: `1"`, tube: 74, box: 98, connector: 18, coupler: 12, elbow: 24}},
	{7, conduitTier{diameter: `1 1/4"`, tube: 96, box: 120, connector: 24, coupler: 16, elbow: 32}},
	{math.MaxInt, conduitTier{diameter: `1 1/2"`, tube: 128, box: 150, connector: 30, coupler: 21, elbow: 45}},
}

// ConduitMaterials is the conduit bill of materials for one trench run.
type ConduitMaterials struct {
	Diameter      string       `json:"diameter"`
	Tubes         MaterialLine `json:"tubes"`
	JunctionBoxes MaterialLine `json:"junctionBoxes"`
	Connectors    MaterialLine `json:"connectors"`
	Couplers      MaterialLine `json:"couplers"`
	Elbows        MaterialLine `json:"elbows"`
}

// SizeConduit picks the conduit diameter for the string count and
// prices the trench materials: 3 m tube segments over the trench, one
// junction box per three tubes, six connectors per box, two couplers
// per tube and four elbows.
func SizeConduit(totalStrings int) ConduitMaterials {
	tier := conduitTiers[len(conduitTiers)-1].tier
	for _, t := range conduitTiers {
		if totalStrings <= t.maxStrings {
			tier = t.tier
			break
		}
	}

	tubes := int(math.Ceil(TrenchMeters / ConduitSegmentMeters))
	boxes := int(math.Ceil(float64(tubes) / 3))
	connectors := boxes * 6
	couplers := tubes * 2
	const elbows = 4

	pieceLine := func(qty int, unitPrice float64) MaterialLine {
		return MaterialLine{Quantity: float64(qty), Price: round2(float64(qty) * unitPrice)}
	}
	return ConduitMaterials{
		Diameter:      tier.diameter,
		Tubes:         pieceLine(tubes, tier.tube),
		JunctionBoxes: pieceLine(boxes, tier.box),
		Connectors:    pieceLine(connectors, tier.connector),
		Couplers:      pieceLine(couplers, tier.coupler),
		Elbows:        pieceLine(elbows, tier.elbow),
	}
}
