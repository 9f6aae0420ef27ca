package remote

import (
	"context"
	"net/http"

	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

var _ ports.AuthGateway = (*Client)(nil)

type loginResponse struct {
	Token string    `json:"token"`
	User  *wireUser `json:"user"`
}

// Login POST /auth/login. Es la única llamada sin bearer: un 401 acá son credenciales inválidas.
func (c *Client) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	body, err := jsonBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", nil, err
	}
	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/login",
		route:       "/auth/login",
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return "", nil, err
	}
	var out loginResponse
	if err := decode(resp.body, &out); err != nil {
		return "", nil, err
	}
	if out.User == nil {
		return out.Token, nil, nil
	}
	u := c.toUser(*out.User)
	return out.Token, &u, nil
}
