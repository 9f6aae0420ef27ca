package qr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deporar/sdt-pedidos/internal/domain/qr"
)

func TestInterpret_JSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		id   string
	}{
		{"orderId texto", `{"orderId":"ML-100","customer":"Ana"}`, "ML-100"},
		{"id texto", `{"id":"ML-555","status":"RECIBIDO"}`, "ML-555"},
		{"id numérico", `{"id": 98765}`, "98765"},
		{"orderId tiene prioridad", `{"orderId":"A","id":"B"}`, "A"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := qr.Interpret(tc.raw)
			assert.True(t, p.Valid)
			assert.Equal(t, qr.FormatJSON, p.Format)
			assert.Equal(t, tc.id, p.OrderID)
			assert.Equal(t, tc.raw, p.Raw)
		})
	}
}

func TestInterpret_JSONCamposDePresentacion(t *testing.T) {
	p := qr.Interpret(`{"orderId":"7","timestamp":"2024-05-02","name":"Juan","products":["Remera","Short"],"status":"EMBALADO","description":"frágil"}`)

	assert.Equal(t, "2024-05-02", p.OrderDate)
	assert.Equal(t, "Juan", p.Customer)
	assert.Equal(t, []string{"Remera", "Short"}, p.Products)
	assert.Equal(t, "EMBALADO", p.Status)
	assert.Equal(t, "frágil", p.Notes)

	p = qr.Interpret(`{"orderId":"8","products":"2x Buzo"}`)
	assert.Equal(t, []string{"2x Buzo"}, p.Products)
}

func TestInterpret_JSONSinIDEsInvalido(t *testing.T) {
	p := qr.Interpret(`{"customer":"ORDER:123","status":"RECIBIDO"}`)
	assert.False(t, p.Valid)
	assert.Equal(t, qr.FormatJSON, p.Format, "un objeto JSON válido sin id no pasa a otras estrategias")
	assert.Empty(t, p.OrderID)
}

func TestInterpret_JSONConTextoSobranteNoEsJSON(t *testing.T) {
	for _, raw := range []string{`{"id":"x"} junk`, `{"id":"x"}}`, `{"id":"x"}{"id":"y"}`} {
		t.Run(raw, func(t *testing.T) {
			p := qr.Interpret(raw)
			assert.NotEqual(t, qr.FormatJSON, p.Format)
			assert.False(t, p.Valid)
			assert.Empty(t, p.OrderID)
			assert.Equal(t, raw, p.Raw)
		})
	}
	assert.True(t, qr.Interpret("  {\"id\":\"x\"}\n").Valid, "espacios alrededor se aceptan")
}

func TestInterpret_URL(t *testing.T) {
	p := qr.Interpret("https://tienda.example.com/a/b/c?order_id=ABC-1&customer=Luz&status=DESPACHADO&date=2024-01-01")
	assert.True(t, p.Valid)
	assert.Equal(t, qr.FormatURL, p.Format)
	assert.Equal(t, "ABC-1", p.OrderID)
	assert.Equal(t, "Luz", p.Customer)
	assert.Equal(t, "DESPACHADO", p.Status)
	assert.Equal(t, "2024-01-01", p.OrderDate)

	p = qr.Interpret("https://tienda.example.com/orders/4455")
	assert.True(t, p.Valid)
	assert.Equal(t, "4455", p.OrderID, "sin order_id usa el último segmento")

	p = qr.Interpret("https://tienda.example.com/orders/")
	assert.False(t, p.Valid, "último segmento vacío")
	assert.Equal(t, qr.FormatURL, p.Format)
}

func TestInterpret_Delimitado(t *testing.T) {
	p := qr.Interpret("ORDER:5544|DATE:2024-03-01|CUSTOMER:Pedro|STATUS:RECIBIDO")
	assert.True(t, p.Valid)
	assert.Equal(t, qr.FormatDelimited, p.Format)
	assert.Equal(t, "5544", p.OrderID)
	assert.Equal(t, "2024-03-01", p.OrderDate)
	assert.Equal(t, "Pedro", p.Customer)
	assert.Equal(t, "RECIBIDO", p.Status)

	p = qr.Interpret("CLIENT:Ana|PEDIDO_ID:9")
	assert.True(t, p.Valid)
	assert.Equal(t, "9", p.OrderID)
	assert.Equal(t, "Ana", p.Customer)
}

func TestInterpret_Invalidos(t *testing.T) {
	for _, raw := range []string{
		"",
		"   \n\t",
		"FOO:1|BAR:2",
		"order:123",
		"texto cualquiera",
		"{no es json",
		"12345",
		`["orderId","x"]`,
		"http",
		"|||:::",
	} {
		t.Run(raw, func(t *testing.T) {
			assert.NotPanics(t, func() {
				p := qr.Interpret(raw)
				assert.False(t, p.Valid)
				assert.Empty(t, p.OrderID)
				assert.Equal(t, raw, p.Raw)
			})
		})
	}
}

func TestManual(t *testing.T) {
	p := qr.Manual("  4021 ")
	assert.True(t, p.Valid)
	assert.Equal(t, "4021", p.OrderID)
	assert.Equal(t, qr.FormatManual, p.Format)

	assert.False(t, qr.Manual(" ").Valid)
}
