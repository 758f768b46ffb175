package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders a quote document from the export data using
// maroto/v2 and returns the raw PDF bytes.
func GeneratePDF(data QuoteExport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m)
	for _, r := range data.Rows {
		addTableRow(m, r)
	}
	addSummary(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the title, folio, customer and system summary lines.
func addHeader(m core.Maroto, data QuoteExport) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Solar Installation Quote", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	gray := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Folio: %s", data.Folio), props.Text{
					Size: 9, Align: align.Left, Color: gray,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size: 9, Align: align.Right, Color: gray,
				}),
			),
		),
	)
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Customer: %s", data.CustomerName), props.Text{
					Size: 9, Align: align.Left, Color: gray,
				}),
			),
			col.New(6).Add(
				text.New(
					fmt.Sprintf("System: %d panels / %d strings / %.0f W target",
						data.PanelCount, data.StringTotal, data.RequiredWatts),
					props.Text{Size: 9, Align: align.Right, Color: gray},
				),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row for the materials table.
func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(3).Add(
				text.New("Price", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addTableRow adds one materials row; section rows get a shaded full-width band.
func addTableRow(m core.Maroto, r QuoteExportRow) {
	if r.Section {
		bg := &props.Color{Red: 235, Green: 235, Blue: 235}
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(
					text.New(r.Description, props.Text{
						Size:  8,
						Style: fontstyle.Bold,
						Align: align.Left,
					}),
				).WithStyle(&props.Cell{BackgroundColor: bg}),
			),
		)
		return
	}

	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("  "+r.Description, leftText)),
			col.New(2).Add(text.New(formatQty(r.Qty), rightText)),
			col.New(1).Add(text.New(r.Unit, baseText)),
			col.New(3).Add(text.New(FormatMXN(r.Price), rightText)),
		),
	)
}

// addSummary adds the subtotal, IVA and total block at the bottom.
func addSummary(m core.Maroto, data QuoteExport) {
	// Spacer before summary
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := labelStyle

	summaryRow := func(label string, amount float64) {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatMXN(amount), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}

	summaryRow("Subtotal", data.Subtotal)
	summaryRow("IVA (16%)", data.Tax)
	summaryRow("Total", data.Total)
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data QuoteExport) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s · Prices include markup over catalog cost, converted at the day's exchange rate.", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

// formatQty returns a string representation of the quantity value.
// Whole numbers are formatted without decimals; fractional values get 2 decimal places.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
