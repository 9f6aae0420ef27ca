package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	"github.com/deporar/sdt-pedidos/internal/infrastructure/pdf"
)

func TestRenderProductReport(t *testing.T) {
	g := pdf.NewGenerator(time.UTC)
	out, err := g.RenderProductReport(context.Background(), "Análisis de Productos", "remito.pdf", []entity.ProductLine{
		{SKU: "B-1", Name: "Buzo", Quantity: 2, Color: "Negro", Size: "M"},
		{SKU: "R-9", Name: "Remera", Quantity: 1, ColorAndSize: "Blanco L"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderProductReport_Vacio(t *testing.T) {
	out, err := pdf.NewGenerator(nil).RenderProductReport(context.Background(), "Análisis de Productos", "", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderOrderLabel(t *testing.T) {
	out, err := pdf.NewGenerator(time.UTC).RenderOrderLabel(context.Background(),
		dto.OrderLabel{OrderID: "55", Customer: "Ana", Products: "Buzo x1"}, `{"orderId":"55"}`)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
