package services

import (
	"testing"
	"time"
)

func TestFormatFolio(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		sequence int
		expect   string
	}{
		{"first_of_year", 2026, 1, "SQ-26-0001"},
		{"mid_sequence", 2026, 42, "SQ-26-0042"},
		{"four_digits", 2026, 1234, "SQ-26-1234"},
		{"overflow_keeps_digits", 2026, 10001, "SQ-26-10001"},
		{"prior_year", 2025, 7, "SQ-25-0007"},
		{"year_2000", 2000, 1, "SQ-00-0001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatFolio(tt.year, tt.sequence)
			if got != tt.expect {
				t.Errorf("FormatFolio(%d, %d) = %q, want %q", tt.year, tt.sequence, got, tt.expect)
			}
		})
	}
}

func TestFolioYearPrefix(t *testing.T) {
	// The sequence restarts per calendar year: same sequence, different prefix.
	jan := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	if got := FormatFolio(jan.Year(), 1); got != "SQ-26-0001" {
		t.Errorf("january folio = %q, want SQ-26-0001", got)
	}
	if got := FormatFolio(dec.Year(), 1); got != "SQ-25-0001" {
		t.Errorf("december folio = %q, want SQ-25-0001", got)
	}
}
