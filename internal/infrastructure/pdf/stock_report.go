// Package pdf genera el relatório de estoque en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Produto | SKU | Categoria | Preço | Qtd.             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de productos y con estoque baixo             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/stockly-web/internal/domain/entity"
	"github.com/jhoicas/stockly-web/pkg/format"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 79, Green: 70, Blue: 229}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 220, Green: 38, Blue: 38}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator relatório de estoque a partir del listado del servicio.
type StockReportGenerator struct {
	appName string
	now     func() time.Time
}

// NewStockReportGenerator construye el generador. appName va en los metadatos del PDF.
func NewStockReportGenerator(appName string) *StockReportGenerator {
	return &StockReportGenerator{appName: appName, now: time.Now}
}

// Generate arma el PDF con los productos dados (ya filtrados por el servicio) y devuelve
// sus bytes. total es el total informado por el servicio, que puede superar len(products).
func (g *StockReportGenerator) Generate(_ context.Context, products []entity.Product, total int) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Estoque", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.now().Local()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(products, total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar relatório: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(now time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Stockly", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Relatório de Estoque", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+format.Date(now), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 4, align.Left),
		h("SKU", 2, align.Left),
		h("Categoria", 2, align.Left),
		h("Preço", 2, align.Right),
		h("Qtd.", 2, align.Right),
	)
}

// tableRows una fila por producto; los de estoque baixo van marcados en rojo.
func tableRows(products []entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		name := p.Name
		qtyProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if p.IsLowStock {
			name = "! " + name
			qtyProps.Style = fontstyle.Bold
			qtyProps.Color = colorRed
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(p.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(format.Currency(p.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(format.Int(p.Quantity), qtyProps)),
		))
	}
	if len(products) == 0 {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Nenhum produto encontrado", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	return rows
}

func summaryRow(products []entity.Product, total int) core.Row {
	low := 0
	for _, p := range products {
		if p.IsLowStock {
			low++
		}
	}
	return row.New(14).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("%d produtos cadastrados", total), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 3,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Estoque baixo nesta listagem: %d", low), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorRed,
			}),
		),
	)
}
