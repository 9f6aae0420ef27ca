// Package pdf genera los documentos imprimibles de la estación con Maroto v2:
// el reporte de productos extraídos de remitos y la etiqueta con el QR del pedido.
//
// Reporte (A4):
//
//	┌───────────────────────────────────────────────┐
//	│  Título                                       │
//	│  Fecha / Archivo                              │
//	│  ───────────────────────────────────────────  │
//	│  SKU | Nombre | Cantidad | Color | Talle      │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var (
	_ ports.ProductReportRenderer = (*Generator)(nil)
	_ ports.LabelRenderer         = (*Generator)(nil)
)

// Generator arma los PDF de la estación.
type Generator struct {
	loc *time.Location
	now func() time.Time
}

// NewGenerator loc define la fecha impresa en los reportes.
func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{loc: loc, now: time.Now}
}

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

// RenderProductReport tabla de productos de uno o varios remitos.
func (g *Generator) RenderProductReport(_ context.Context, title, sourceFile string, lines []entity.ProductLine) ([]byte, error) {
	m := newDocument(title)

	m.AddRows(row.New(12).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2}),
	)))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New("Fecha: "+g.now().In(g.loc).Format("02/01/2006"), props.Text{Size: 9, Color: colorGray, Top: 1}),
		text.New("Archivo: "+nonEmpty(sourceFile, "Todos los archivos"), props.Text{Size: 9, Color: colorGray, Top: 5}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(lines)...)
	if len(lines) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin productos", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Nombre", 5, align.Left),
		h("Cantidad", 1, align.Center),
		h("Color", 2, align.Left),
		h("Talle", 2, align.Left),
	)
}

func tableRows(lines []entity.ProductLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, l := range lines {
		color, size := l.Color, l.Size
		if color == "" && size == "" && l.ColorAndSize != "" {
			color = l.ColorAndSize
		}
		out = append(out, row.New(7).Add(
			cell(l.SKU, 2, align.Left),
			cell(l.Name, 5, align.Left),
			cell(strconv.Itoa(l.Quantity), 1, align.Center),
			cell(color, 2, align.Left),
			cell(size, 2, align.Left),
		))
	}
	return out
}

// RenderOrderLabel etiqueta con el QR (qrContent) y los datos legibles del pedido.
func (g *Generator) RenderOrderLabel(_ context.Context, label dto.OrderLabel, qrContent string) ([]byte, error) {
	m := newDocument("Etiqueta " + label.OrderID)

	m.AddRows(row.New(14).Add(col.New(12).Add(
		text.New("PEDIDO "+label.OrderID, props.Text{Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 3}),
	)))
	m.AddRows(row.New(80).Add(
		col.New(3),
		col.New(6).Add(code.NewQr(qrContent, props.Rect{Percent: 95, Center: true})),
		col.New(3),
	))
	m.AddRows(line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.3}))

	fields := []struct{ k, v string }{
		{"Cliente", label.Customer},
		{"Fecha", label.OrderDate},
		{"Productos", label.Products},
		{"Estado", label.Status},
		{"Notas", label.Notes},
	}
	for _, f := range fields {
		if f.v == "" {
			continue
		}
		m.AddRows(row.New(7).Add(
			col.New(3).Add(text.New(f.k+":", props.Text{Style: fontstyle.Bold, Size: 10, Top: 1})),
			col.New(9).Add(text.New(f.v, props.Text{Size: 10, Top: 1})),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
