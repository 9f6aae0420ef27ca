package xlsx_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	"github.com/deporar/sdt-pedidos/internal/infrastructure/xlsx"
)

func TestRenderProductReport(t *testing.T) {
	out, err := xlsx.NewRenderer().RenderProductReport(context.Background(), "Análisis de Productos", "remito.pdf", []entity.ProductLine{
		{SKU: "B-1", Name: "Buzo", Quantity: 2, Color: "Negro", Size: "M"},
		{SKU: "R-9", Name: "Remera", Quantity: 1, ColorAndSize: "Blanco L"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsx.SheetName}, f.GetSheetList())
	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Análisis de Productos", rows[0][0])
	assert.Equal(t, "Archivo: remito.pdf", rows[1][0])
	assert.Equal(t, []string{"SKU", "Nombre", "Cantidad", "Color", "Talle"}, rows[3])
	assert.Equal(t, []string{"B-1", "Buzo", "2", "Negro", "M"}, rows[4])
	assert.Equal(t, []string{"R-9", "Remera", "1", "Blanco L"}, rows[5])
}
