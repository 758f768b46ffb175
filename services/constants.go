package services

// Engineering and commercial constants for quote sizing.
// Catalog prices are USD; installation materials and labor are MXN.
const (
	// PeakSunHours is the assumed daily hours of full-intensity sunlight
	// used to convert a power rating into daily energy yield.
	PeakSunHours = 5.0

	// bimonthlyKwhToDailyWh converts a bimonthly kWh consumption figure
	// into average daily watt-hours (1000 Wh/kWh over ~60 days).
	bimonthlyKwhToDailyWh = 1000.0 / 60.0

	// String electrical limits. Panels are series-wired, so string
	// capacity is the voltage headroom divided by per-panel voltage.
	MaxStringVoltage = 500.0
	PanelVoltage     = 50.0

	// PanelsPerRack is the number of panels one racking unit carries.
	PanelsPerRack = 4

	// TrenchMeters is the assumed cable/conduit run between the array
	// and the service entrance. ConduitSegmentMeters is the length of
	// one rigid conduit tube.
	TrenchMeters         = 30.0
	ConduitSegmentMeters = 3.0

	// ACRunMeters is the fixed AC-side run from inverter to panel board,
	// independent of array size.
	ACRunMeters = 10.0

	// Markup applied over catalog cost to obtain sale price.
	PanelMarkup    = 0.25
	InverterMarkup = 0.25
	FrameMarkup    = 0.25

	// InverterCoverageSlack is the fraction of the required power target
	// that may remain uncovered by the selected inverter set.
	InverterCoverageSlack = 0.03

	// TaxRate is Mexican IVA.
	TaxRate = 0.16

	// DefaultExchangeRate (USD to MXN) applies when no exchange_rates
	// record is available.
	DefaultExchangeRate = 20.28

	// PermitFee is the fixed municipal interconnection/permit fee,
	// identical across all labor tiers.
	PermitFee = 5500.0

	// FallbackFrameUnitPrice is a flat MXN price per racking unit used
	// when the frames catalog has no entry.
	FallbackFrameUnitPrice = 1150.0
)

// Per-meter MXN prices for the fixed conductor set.
const (
	dcPositivePerMeter = 14.50
	dcNegativePerMeter = 14.50
	dcGroundPerMeter   = 9.80
	acPhasePerMeter    = 18.20
	acNeutralPerMeter  = 18.20
)
