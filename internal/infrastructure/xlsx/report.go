// Package xlsx genera la planilla de productos analizados con excelize.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// SheetName hoja única del reporte.
const SheetName = "Productos"

var headers = []string{"SKU", "Nombre", "Cantidad", "Color", "Talle"}

var _ ports.ProductReportRenderer = (*Renderer)(nil)

// Renderer implementa ports.ProductReportRenderer.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// RenderProductReport título y archivo de origen en las dos primeras filas, la tabla desde la cuarta.
func (r *Renderer) RenderProductReport(_ context.Context, title, sourceFile string, lines []entity.ProductLine) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: quitar hoja por defecto: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	set := func(cell string, v any) {
		// SetCellValue solo falla con nombres de hoja o celda inválidos, que acá son fijos.
		_ = f.SetCellValue(SheetName, cell, v)
	}
	set("A1", title)
	_ = f.SetCellStyle(SheetName, "A1", "A1", bold)
	if sourceFile != "" {
		set("A2", "Archivo: "+sourceFile)
	}

	const headerRow = 4
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		set(cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	_ = f.SetCellStyle(SheetName, first, last, headerStyle)

	for i, l := range lines {
		color, size := l.Color, l.Size
		if color == "" && size == "" {
			color = l.ColorAndSize
		}
		values := []any{l.SKU, l.Name, l.Quantity, color, size}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, headerRow+1+i)
			set(cell, v)
		}
	}
	_ = f.SetColWidth(SheetName, "A", "A", 15)
	_ = f.SetColWidth(SheetName, "B", "B", 40)
	_ = f.SetColWidth(SheetName, "C", "E", 12)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
