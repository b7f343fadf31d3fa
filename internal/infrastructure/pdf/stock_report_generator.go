// Package pdf genera el reporte de bajo estoque en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Servicio + título  │  Fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos bajo mínimo / sin estoque / a pedir      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Prio | SKU | Producto | Actual | Res. | Mín | Sug.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

var _ inventory.ReportPDFGenerator = (*StockReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// StockReportGenerator implementa inventory.ReportPDFGenerator usando Maroto v2.
type StockReportGenerator struct {
	service string
}

// NewStockReportGenerator construye el generador; service aparece en el encabezado.
func NewStockReportGenerator(service string) *StockReportGenerator {
	return &StockReportGenerator{service: service}
}

// GenerateLowStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateLowStockReport(report *dto.StockReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de bajo estoque", true).
		WithAuthor(g.service, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Ningún producto por debajo del nivel mínimo.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableItemRows(report.Items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Cantidad sugerida = ceil(nivel mínimo × 1,5) − estoque actual. "+
			"Prioridad 1 = mayor déficit respecto al mínimo.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *StockReportGenerator) headerRow(report *dto.StockReportResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.service, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de bajo estoque", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("GENERADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func summaryRow(report *dto.StockReportResponse) core.Row {
	outOfStock, toOrder := 0, 0
	for _, it := range report.Items {
		if it.IsOutOfStock {
			outOfStock++
		}
		toOrder += it.SuggestedOrderQty
	}
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("BAJO MÍNIMO", formatQuantity(report.Total)),
		cell("SIN ESTOQUE", formatQuantity(outOfStock)),
		cell("UNIDADES A PEDIR", formatQuantity(toOrder)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Prio.", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Actual", 1, align.Right),
		h("Res.", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Unidad", 1, align.Center),
		h("Sugerido", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableItemRows(items []dto.StockReportItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		qtyStyle := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if it.IsOutOfStock {
			qtyStyle.Color = colorDanger
			qtyStyle.Style = fontstyle.Bold
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Priority), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(it.SKU, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(it.ProductName, it.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(formatQuantity(it.CurrentQuantity), qtyStyle)),
			col.New(1).Add(text.New(formatQuantity(it.ReservedQuantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(formatQuantity(it.MinimumLevel), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.UnitOfMeasure, props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatQuantity(it.SuggestedOrderQty), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQuantity inserta puntos de miles. Ej: 25000 → "25.000".
func formatQuantity(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	l := len(s)
	if l <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
