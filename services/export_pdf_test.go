package services

import (
	"context"
	"testing"
)

func sampleExport(t *testing.T) QuoteExport {
	t.Helper()

	project, err := ComputeQuote(context.Background(), nil, 1000)
	if err != nil {
		t.Fatalf("ComputeQuote() error = %v", err)
	}
	return BuildQuoteExport("SQ-26-0001", "Ana Torres", "15 Jan 2026", project)
}

func TestGeneratePDF_Quote(t *testing.T) {
	result, err := GeneratePDF(sampleExport(t))
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_EmptyRows(t *testing.T) {
	data := QuoteExport{
		Folio:       "SQ-26-0002",
		CreatedDate: "2026-01-15",
		Rows:        []QuoteExportRow{},
	}

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole number", 10, "10"},
		{"zero", 0, "0"},
		{"decimal", 10.5, "10.50"},
		{"small decimal", 0.25, "0.25"},
		{"large whole", 1000, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatQty(tt.input)
			if got != tt.want {
				t.Errorf("formatQty(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
