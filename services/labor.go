package services

// laborTier holds the MXN fee schedule for installations up to
// MaxPanels panels. Rows are checked in order; the last row is the
// catch-all for anything larger.
type laborTier struct {
	maxPanels       int
	perPanel        float64
	inverterInstall float64
	shipping        float64
	engineering     float64
}

var laborTiers = []laborTier{
	{maxPanels: 8, perPanel: 850, inverterInstall: 2500, shipping: 1800, engineering: 3000},
	{maxPanels: 16, perPanel: 800, inverterInstall: 3200, shipping: 2600, engineering: 4500},
	{maxPanels: 24, perPanel: 760, inverterInstall: 4000, shipping: 3400, engineering: 6000},
	{maxPanels: 32, perPanel: 720, inverterInstall: 4800, shipping: 4200, engineering: 7500},
	{maxPanels: 100, perPanel: 680, inverterInstall: 6000, shipping: 5500, engineering: 9000},
}

// LaborBlock is the labor and fee section of a project. Price is the
// roll-up of every component and is the only field the aggregator
// counts; the components are informational.
type LaborBlock struct {
	Installation    float64 `json:"installation"`
	InverterInstall float64 `json:"inverterInstall"`
	Shipping        float64 `json:"shipping"`
	Engineering     float64 `json:"engineering"`
	Permit          float64 `json:"permit"`
	Price           float64 `json:"price"`
}

// LaborCost maps a panel count onto the tiered fee schedule: the first
// tier whose ceiling covers the count applies, larger jobs take the
// last tier's rates. The permit fee is a single fixed constant across
// all tiers.
func LaborCost(panelCount int) LaborBlock {
	tier := laborTiers[len(laborTiers)-1]
	for _, t := range laborTiers {
		if panelCount <= t.maxPanels {
			tier = t
			break
		}
	}

	installation := float64(panelCount) * tier.perPanel
	total := installation + tier.inverterInstall + tier.shipping + tier.engineering + PermitFee

	return LaborBlock{
		Installation:    installation,
		InverterInstall: tier.inverterInstall,
		Shipping:        tier.shipping,
		Engineering:     tier.engineering,
		Permit:          PermitFee,
		Price:           round2(total),
	}
}
