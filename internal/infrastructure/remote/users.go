package remote

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

var _ ports.UserGateway = (*Client)(nil)

// List GET /users/. Algunas instalaciones solo exponen /usuarios; con 404 se prueba esa ruta.
func (c *Client) List(ctx context.Context, token string) ([]entity.User, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: "/users/", route: "/users/", token: token})
	if errors.Is(err, domain.ErrNotFound) {
		resp, err = c.do(ctx, request{method: http.MethodGet, path: "/usuarios", route: "/usuarios", token: token})
	}
	if err != nil {
		return nil, err
	}
	var list []wireUser
	trimmed := bytes.TrimSpace(resp.body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var page struct {
			Content []wireUser `json:"content"`
		}
		if err := decode(trimmed, &page); err != nil {
			return nil, err
		}
		list = page.Content
	} else if err := decode(trimmed, &list); err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(list))
	for _, w := range list {
		out = append(out, c.toUser(w))
	}
	return out, nil
}

// Create POST /auth/signup con el rol en mayúsculas.
func (c *Client) Create(ctx context.Context, token string, in dto.CreateUserRequest) (*entity.User, error) {
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	body, err := jsonBody(in)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/signup",
		route:       "/auth/signup",
		token:       token,
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return nil, err
	}
	return c.userOrEcho(resp.body, entity.User{
		Email:    in.Email,
		Name:     in.FullName,
		Username: in.UserName,
		Role:     entity.Role{Name: in.Role},
		DuxID:    in.DuxID,
		Enabled:  true,
	})
}

// Update PUT /users/{id}.
func (c *Client) Update(ctx context.Context, token, userID string, in dto.UpdateUserRequest) (*entity.User, error) {
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	body, err := jsonBody(in)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, request{
		method:      http.MethodPut,
		path:        "/users/" + escape(userID),
		route:       "/users/{id}",
		token:       token,
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return nil, err
	}
	return c.userOrEcho(resp.body, entity.User{
		ID:       userID,
		Email:    in.Email,
		Name:     in.Name,
		Username: in.Username,
		Role:     entity.Role{Name: in.Role},
		DuxID:    in.DuxID,
		Enabled:  true,
	})
}

// Delete DELETE /users/{id}.
func (c *Client) Delete(ctx context.Context, token, userID string) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/users/" + escape(userID),
		route:  "/users/{id}",
		token:  token,
	})
	return err
}

// userOrEcho la API a veces responde solo un mensaje; en ese caso se devuelve lo enviado.
func (c *Client) userOrEcho(body []byte, sent entity.User) (*entity.User, error) {
	var w wireUser
	if len(bytes.TrimSpace(body)) == 0 || decode(body, &w) != nil || w.ID == "" {
		return &sent, nil
	}
	u := c.toUser(w)
	return &u, nil
}
