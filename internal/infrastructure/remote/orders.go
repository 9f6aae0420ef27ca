package remote

import (
	"bytes"
	"context"
	"net/http"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

var _ ports.OrderGateway = (*Client)(nil)

// GetByQR GET /orders/qr/{id}.
func (c *Client) GetByQR(ctx context.Context, token, orderID string) (*entity.Order, error) {
	return c.getOrder(ctx, token, "/orders/qr/"+escape(orderID), "/orders/qr/{id}")
}

// GetManual GET /orders/manual/{id}; se usa para la carga por teclado y la búsqueda puntual del tablero.
func (c *Client) GetManual(ctx context.Context, token, orderID string) (*entity.Order, error) {
	return c.getOrder(ctx, token, "/orders/manual/"+escape(orderID), "/orders/manual/{id}")
}

func (c *Client) getOrder(ctx context.Context, token, path, route string) (*entity.Order, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: path, route: route, token: token})
	if err != nil {
		return nil, err
	}
	var w wireOrder
	if err := decode(resp.body, &w); err != nil {
		return nil, err
	}
	o := c.toOrder(w)
	return &o, nil
}

// UpdateStatus PUT /orders/{id}/status. Devuelve nil, nil cuando la API responde sin pedido.
func (c *Client) UpdateStatus(ctx context.Context, token, orderID string, in dto.StatusUpdateRequest) (*entity.Order, error) {
	body, err := jsonBody(in)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, request{
		method:      http.MethodPut,
		path:        "/orders/" + escape(orderID) + "/status",
		route:       "/orders/{id}/status",
		token:       token,
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return nil, nil
	}
	var w wireOrder
	if err := decode(resp.body, &w); err != nil {
		// El cambio ya se aplicó; el llamador vuelve a pedir el pedido.
		c.log.Warn().Err(err).Str("order_id", orderID).Msg("respuesta de cambio de estado ilegible")
		return nil, nil
	}
	if w.ID == "" {
		return nil, nil
	}
	o := c.toOrder(w)
	return &o, nil
}

// CreateManual POST /orders/manual.
func (c *Client) CreateManual(ctx context.Context, token string, in entity.ShippingData) (*entity.ManualOrder, error) {
	body, err := jsonBody(map[string]wireShipping{"shippingData": {
		Address:       in.Address,
		RecipientName: in.RecipientName,
		Floor:         in.Floor,
		Door:          in.Door,
		PostalCode:    in.PostalCode,
		City:          in.City,
		Phone:         in.Phone,
		HousingType:   in.HousingType,
		Observations:  in.Observations,
		Email:         in.Email,
	}})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/orders/manual",
		route:       "/orders/manual",
		token:       token,
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return nil, err
	}
	var w wireManualOrder
	if err := decode(resp.body, &w); err != nil {
		return nil, err
	}
	m := c.toManualOrder(w)
	if m.Shipping == (entity.ShippingData{}) {
		m.Shipping = in
	}
	return &m, nil
}
