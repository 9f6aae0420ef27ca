// Package qr interpreta el texto leído de un código QR (o tipeado a mano) y extrae
// el identificador de pedido más los datos de presentación que vengan en él.
package qr

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"
)

// Format forma en que se reconoció el contenido.
type Format string

const (
	FormatJSON      Format = "json"
	FormatURL       Format = "url"
	FormatDelimited Format = "delimited"
	FormatManual    Format = "manual"
	FormatUnknown   Format = "unknown"
)

// Payload resultado de la interpretación. Raw se conserva siempre para mostrarlo.
type Payload struct {
	Raw       string   `json:"raw"`
	Format    Format   `json:"format"`
	OrderID   string   `json:"orderId,omitempty"`
	OrderDate string   `json:"orderDate,omitempty"`
	Customer  string   `json:"customer,omitempty"`
	Products  []string `json:"products,omitempty"`
	Status    string   `json:"status,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Valid     bool     `json:"valid"`
}

// Interpret prueba JSON, URL y pares KEY:VALUE separados por "|", en ese orden.
// Nunca entra en pánico: cualquier fallo degrada a la siguiente estrategia o a inválido.
func Interpret(raw string) Payload {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Payload{Raw: raw, Format: FormatUnknown}
	}

	if p, ok := fromJSON(text); ok {
		p.Raw = raw
		return p
	}
	if strings.HasPrefix(text, "http") {
		if p, ok := fromURL(text); ok {
			p.Raw = raw
			return p
		}
	}
	p := fromDelimited(text)
	p.Raw = raw
	return p
}

// Manual arma el payload de una carga manual: el texto es directamente el id del pedido.
func Manual(raw string) Payload {
	id := strings.TrimSpace(raw)
	return Payload{Raw: raw, Format: FormatManual, OrderID: id, Valid: id != ""}
}

// fromJSON devuelve ok=false solo si el texto no es un objeto JSON; un objeto sin id
// es un payload inválido y no sigue con las demás estrategias.
func fromJSON(text string) (Payload, bool) {
	if !strings.HasPrefix(text, "{") {
		return Payload{}, false
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return Payload{}, false
	}
	// texto después del objeto: no es JSON
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Payload{}, false
	}

	p := Payload{Format: FormatJSON}
	p.OrderID = firstScalar(obj, "orderId", "id")
	p.OrderDate = firstScalar(obj, "orderDate", "timestamp")
	p.Customer = firstScalar(obj, "customer", "name")
	p.Status = firstScalar(obj, "status")
	p.Notes = firstScalar(obj, "notes", "description")
	p.Products = productList(obj["products"])
	p.Valid = p.OrderID != ""
	return p, true
}

func fromURL(text string) (Payload, bool) {
	u, err := url.Parse(text)
	if err != nil || u.Scheme == "" {
		return Payload{}, false
	}
	q := u.Query()
	p := Payload{
		Format:    FormatURL,
		OrderID:   strings.TrimSpace(q.Get("order_id")),
		OrderDate: q.Get("date"),
		Customer:  q.Get("customer"),
		Status:    q.Get("status"),
	}
	if p.OrderID == "" {
		segments := strings.Split(u.Path, "/")
		p.OrderID = segments[len(segments)-1]
	}
	p.Valid = p.OrderID != ""
	return p, true
}

// fromDelimited reconoce claves por subcadena y respetando mayúsculas (ORDER, ID, DATE, ...).
func fromDelimited(text string) Payload {
	p := Payload{Format: FormatUnknown}
	for _, part := range strings.Split(text, "|") {
		key, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch {
		case strings.Contains(key, "ORDER") || strings.Contains(key, "ID"):
			if p.OrderID == "" {
				p.OrderID = value
			}
		case strings.Contains(key, "DATE"):
			p.OrderDate = value
		case strings.Contains(key, "CUSTOMER") || strings.Contains(key, "CLIENT"):
			p.Customer = value
		case strings.Contains(key, "STATUS"):
			p.Status = value
		}
	}
	if p.OrderID != "" {
		p.Format = FormatDelimited
		p.Valid = true
	}
	return p
}

// firstScalar devuelve el primer campo presente que sea texto o número, como string.
func firstScalar(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func productList(v any) []string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch it := item.(type) {
			case string:
				out = append(out, it)
			case json.Number:
				out = append(out, it.String())
			case map[string]any:
				if name := firstScalar(it, "description", "name", "sku"); name != "" {
					out = append(out, name)
					continue
				}
				b, err := json.Marshal(it)
				if err == nil {
					out = append(out, string(b))
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
