package services

import (
	"errors"
	"math"
	"testing"
)

func TestRequiredPowerWatts(t *testing.T) {
	tests := []struct {
		name           string
		consumptionKwh float64
		expect         float64
	}{
		{"reference scenario", 1000, 3333.333333},
		{"small household", 300, 1000},
		{"large consumer", 12000, 40000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredPowerWatts(tt.consumptionKwh)
			if math.Abs(got-tt.expect) > 0.001 {
				t.Errorf("RequiredPowerWatts(%v) = %v, want %v", tt.consumptionKwh, got, tt.expect)
			}
		})
	}
}

func TestPanelsRequired(t *testing.T) {
	tests := []struct {
		name           string
		consumptionKwh float64
		panel          CatalogPanel
		rate           float64
		expectCount    int
	}{
		{"reference scenario 1000 kWh on 550 W", 1000, DefaultPanel, 20.28, 7},
		{"exact multiple", 330, CatalogPanel{PowerWatts: 550, UnitPriceUSD: 91}, 20.28, 2},
		{"tiny consumption still needs one panel", 1, DefaultPanel, 20.28, 1},
		{"bigger panel needs fewer", 1000, CatalogPanel{PowerWatts: 700, UnitPriceUSD: 120}, 20.28, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PanelsRequired(tt.consumptionKwh, tt.panel, tt.rate)
			if got.Count != tt.expectCount {
				t.Errorf("count = %d, want %d", got.Count, tt.expectCount)
			}
			if got.Count < 1 {
				t.Error("count must always be at least 1")
			}
			if got.UnitPowerWatts != tt.panel.PowerWatts {
				t.Errorf("unitPowerWatts = %v, want %v", got.UnitPowerWatts, tt.panel.PowerWatts)
			}
			wantPrice := round2(float64(tt.expectCount) * tt.panel.UnitPriceUSD * tt.rate * (1 + PanelMarkup))
			if math.Abs(got.Price-wantPrice) > 0.001 {
				t.Errorf("price = %v, want %v", got.Price, wantPrice)
			}
		})
	}
}

func TestPanelsRequiredCountMatchesCeil(t *testing.T) {
	for _, consumption := range []float64{1, 50, 275, 999.5, 1000, 4321, 25000} {
		got := PanelsRequired(consumption, DefaultPanel, DefaultExchangeRate)
		want := int(math.Ceil(RequiredPowerWatts(consumption) / DefaultPanel.PowerWatts))
		if want < 1 {
			want = 1
		}
		if got.Count != want {
			t.Errorf("consumption %v: count = %d, want %d", consumption, got.Count, want)
		}
	}
}

func TestSelectInverters(t *testing.T) {
	tests := []struct {
		name           string
		consumptionKwh float64
		catalog        []CatalogInverter
		expectQty      map[string]int
	}{
		{
			// required ≈ 3333 W: the 6000 W unit is the smallest that
			// covers it in one pick.
			name:           "single covering pick",
			consumptionKwh: 1000,
			catalog:        DefaultInverters,
			expectQty:      map[string]int{"SIW-6000": 1},
		},
		{
			// required = 40000 W: largest-available fallback (36000),
			// then 6000 covers the 4000 W remainder.
			name:           "largest fallback then cover",
			consumptionKwh: 12000,
			catalog:        DefaultInverters,
			expectQty:      map[string]int{"SIW-36000": 1, "SIW-6000": 1},
		},
		{
			// Catalog tops out below the target: the same model repeats
			// until the remainder falls under the 3% slack (1200 W).
			name:           "repeat single model until covered",
			consumptionKwh: 12000,
			catalog: []CatalogInverter{
				{Model: "SIW-3000", PowerWatts: 3000, StringCapacity: 2, UnitPriceUSD: 485},
			},
			expectQty: map[string]int{"SIW-3000": 13},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := SelectInverters(tt.consumptionKwh, tt.catalog, DefaultExchangeRate)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(lines) != len(tt.expectQty) {
				t.Fatalf("got %d lines, want %d", len(lines), len(tt.expectQty))
			}
			for _, line := range lines {
				wantQty, ok := tt.expectQty[line.Model]
				if !ok {
					t.Errorf("unexpected model %q selected", line.Model)
					continue
				}
				if line.Quantity != wantQty {
					t.Errorf("model %q quantity = %d, want %d", line.Model, line.Quantity, wantQty)
				}
			}
		})
	}
}

func TestSelectInvertersLinePriceCoversQuantity(t *testing.T) {
	lines, err := SelectInverters(12000, []CatalogInverter{
		{Model: "SIW-3000", PowerWatts: 3000, StringCapacity: 2, UnitPriceUSD: 485},
	}, 20.28)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	line := lines[0]
	want := round2(float64(line.Quantity) * 485 * 20.28 * (1 + InverterMarkup))
	if math.Abs(line.Price-want) > 0.001 {
		t.Errorf("price = %v, want %v (quantity folded in)", line.Price, want)
	}
}

func TestSelectInvertersEmptyCatalog(t *testing.T) {
	_, err := SelectInverters(1000, nil, DefaultExchangeRate)
	if !errors.Is(err, ErrNoInverterCatalog) {
		t.Errorf("expected ErrNoInverterCatalog, got %v", err)
	}
}

func TestSelectInvertersTerminates(t *testing.T) {
	// Any positive target against any non-empty ascending catalog must
	// terminate thanks to the pick-the-largest fallback.
	catalogs := [][]CatalogInverter{
		DefaultInverters,
		{{Model: "tiny", PowerWatts: 800, StringCapacity: 1, UnitPriceUSD: 120}},
	}
	for _, catalog := range catalogs {
		for _, consumption := range []float64{1, 100, 1000, 50000} {
			if _, err := SelectInverters(consumption, catalog, 20.28); err != nil {
				t.Fatalf("catalog %v consumption %v: %v", catalog[0].Model, consumption, err)
			}
		}
	}
}

func TestSizeStrings(t *testing.T) {
	tests := []struct {
		name        string
		panelCount  int
		complete    int
		lastPartial int
		total       int
	}{
		{"seven panels one partial string", 7, 0, 7, 1},
		{"exactly one full string", 10, 1, 0, 1},
		{"one full plus partial", 13, 1, 3, 2},
		{"two full plus partial", 25, 2, 5, 3},
		{"zero panels", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SizeStrings(tt.panelCount)
			if got.Complete != tt.complete || got.LastPartial != tt.lastPartial || got.Total != tt.total {
				t.Errorf("SizeStrings(%d) = %+v, want {%d %d %d}",
					tt.panelCount, got, tt.complete, tt.lastPartial, tt.total)
			}

			// Idempotence: a second call yields the identical result.
			again := SizeStrings(tt.panelCount)
			if again != got {
				t.Errorf("SizeStrings(%d) not idempotent: %+v then %+v", tt.panelCount, got, again)
			}

			// Total is complete plus one iff a partial remainder exists.
			wantTotal := got.Complete
			if got.LastPartial > 0 {
				wantTotal++
			}
			if got.Total != wantTotal {
				t.Errorf("total = %d, want %d", got.Total, wantTotal)
			}
		})
	}
}

func TestMaxPanelsPerStringDerivedFromVoltages(t *testing.T) {
	if got := MaxPanelsPerString(); got != int(MaxStringVoltage/PanelVoltage) {
		t.Errorf("MaxPanelsPerString() = %d, want %v", got, MaxStringVoltage/PanelVoltage)
	}
}

func TestSizeCables(t *testing.T) {
	got := SizeCables(2)

	wantDCMeters := TrenchMeters * 2
	if got.DCPositive.Quantity != wantDCMeters || got.DCNegative.Quantity != wantDCMeters {
		t.Errorf("DC runs = %v/%v m, want %v m", got.DCPositive.Quantity, got.DCNegative.Quantity, wantDCMeters)
	}
	if got.DCGround.Quantity != TrenchMeters {
		t.Errorf("ground run = %v m, want %v m", got.DCGround.Quantity, TrenchMeters)
	}

	// AC side never scales with the array.
	bigger := SizeCables(9)
	if bigger.ACPhase != got.ACPhase || bigger.ACNeutral != got.ACNeutral {
		t.Error("AC conductors must not depend on string count")
	}

	if math.Abs(got.DCPositive.Price-round2(wantDCMeters*dcPositivePerMeter)) > 0.001 {
		t.Errorf("DC positive price = %v", got.DCPositive.Price)
	}
	if math.Abs(got.ACPhase.Price-round2(ACRunMeters*acPhasePerMeter)) > 0.001 {
		t.Errorf("AC phase price = %v", got.ACPhase.Price)
	}
}

func TestSizeRacking(t *testing.T) {
	tests := []struct {
		name       string
		panelCount int
		frame      *CatalogFrame
		rate       float64
		expectQty  int
	}{
		{"seven panels two racks fallback", 7, nil, 20.28, 2},
		{"exact fit", 8, nil, 20.28, 2},
		{"one extra panel adds a rack", 9, nil, 20.28, 3},
		{"catalog frame", 7, &CatalogFrame{UnitPriceUSD: 74}, 20.28, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SizeRacking(tt.panelCount, tt.frame, tt.rate)
			if got.Quantity != tt.expectQty {
				t.Errorf("quantity = %d, want %d", got.Quantity, tt.expectQty)
			}

			var wantUnit float64
			if tt.frame != nil {
				wantUnit = tt.frame.UnitPriceUSD * tt.rate * (1 + FrameMarkup)
			} else {
				wantUnit = FallbackFrameUnitPrice
			}
			wantPrice := round2(float64(tt.expectQty) * wantUnit)
			if math.Abs(got.Price-wantPrice) > 0.001 {
				t.Errorf("price = %v, want %v", got.Price, wantPrice)
			}
		})
	}
}

func TestSizeConduitTierSelection(t *testing.T) {
	tests := []struct {
		strings  int
		diameter string
	}{
		{1, `3/4"`},
		{3, `3/4"`},
		{4, `1"`},
		{5, `1"`},
		{6, `1 1/4"`},
		{7, `1 1/4"`},
		{8, `1 1/2"`},
		{20, `1 1/2"`},
	}

	for _, tt := range tests {
		got := SizeConduit(tt.strings)
		if got.Diameter != tt.diameter {
			t.Errorf("SizeConduit(%d).Diameter = %s, want %s", tt.strings, got.Diameter, tt.diameter)
		}
	}
}

func TestSizeConduitQuantities(t *testing.T) {
	got := SizeConduit(1)

	// 30 m trench in 3 m segments.
	if got.Tubes.Quantity != 10 {
		t.Errorf("tubes = %v, want 10", got.Tubes.Quantity)
	}
	if got.JunctionBoxes.Quantity != 4 {
		t.Errorf("junction boxes = %v, want 4", got.JunctionBoxes.Quantity)
	}
	if got.Connectors.Quantity != 24 {
		t.Errorf("connectors = %v, want 24", got.Connectors.Quantity)
	}
	if got.Couplers.Quantity != 20 {
		t.Errorf("couplers = %v, want 20", got.Couplers.Quantity)
	}
	if got.Elbows.Quantity != 4 {
		t.Errorf("elbows = %v, want 4", got.Elbows.Quantity)
	}

	// Quantities are tier-independent; only prices change with diameter.
	wide := SizeConduit(9)
	if wide.Tubes.Quantity != got.Tubes.Quantity {
		t.Error("tube count must not depend on diameter tier")
	}
	if wide.Tubes.Price <= got.Tubes.Price {
		t.Error("wider conduit should cost more per tube run")
	}
}
