package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	apphttp "github.com/deporar/sdt-pedidos/internal/interfaces/http"
	"github.com/deporar/sdt-pedidos/pkg/logger"
	"github.com/deporar/sdt-pedidos/pkg/reqid"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeSessions sesión en memoria; Expire deja el redirect a /login como el Manager real.
type fakeSessions struct {
	mu      sync.Mutex
	s       *entity.Session
	expired bool
}

func withRole(role string) *fakeSessions {
	return &fakeSessions{s: &entity.Session{UserID: "7", DisplayName: "Ana Pérez", Role: entity.Role{Name: role}, Token: "tok"}}
}

func (f *fakeSessions) Current() (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.s == nil {
		return nil, domain.ErrNoSession
	}
	return f.s.Clone(), nil
}

func (f *fakeSessions) Expire(_, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.s = nil
	f.expired = true
}

func (f *fakeSessions) Redirect() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.s == nil && f.expired {
		return "/login", true
	}
	return "", false
}

// buildTestApp app mínima con RequireSession + RequireRole y un handler que devuelve el rol.
func buildTestApp(sessions *fakeSessions, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.RequireSession(sessions),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetSession(c).Role.Name})
		},
	)
	return app
}

func doGet(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireSession / RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	resp := doGet(t, buildTestApp(withRole("ADMIN"), "admin"), "/protected")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ADMIN", body["role"])
}

func TestRequireRole_ComparaSinMayusculasNiAcentos(t *testing.T) {
	resp := doGet(t, buildTestApp(withRole("Súper Admin"), "admin", "super_admin"), "/protected")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_OperadorBloqueadoEnRutaAdmin(t *testing.T) {
	resp := doGet(t, buildTestApp(withRole("OPERADOR"), "admin"), "/protected")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)
}

func TestRequireRole_SesionSinRol(t *testing.T) {
	resp := doGet(t, buildTestApp(withRole(""), "admin"), "/protected")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", decodeError(t, resp).Code)
}

func TestRequireSession_SinSesion(t *testing.T) {
	resp := doGet(t, buildTestApp(&fakeSessions{}, "admin"), "/protected")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "NO_SESSION", decodeError(t, resp).Code)
}

func TestRequireSession_SesionExpiradaRedirigeALogin(t *testing.T) {
	sessions := withRole("ADMIN")
	sessions.Expire("tok", "token vencido")

	resp := doGet(t, buildTestApp(sessions, "admin"), "/protected")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "SESSION_EXPIRED", body.Code)
	assert.Equal(t, "/login", body.Redirect)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequestID y ErrorHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestID_SePropagaAlContexto(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestID(), apphttp.RequestLogger(logger.Nop()))
	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(reqid.FromContext(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(reqid.Header, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "abc-123", string(body))
	assert.Equal(t, "abc-123", resp.Header.Get(reqid.Header))

	resp2 := doGet(t, app, "/id")
	defer resp2.Body.Close()
	assert.NotEmpty(t, resp2.Header.Get(reqid.Header), "sin header se genera uno")
}

func TestErrorHandler_Sobres(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrAuthExpired, http.StatusUnauthorized, "SESSION_EXPIRED"},
		{fmt.Errorf("%w: El archivo x.txt no es un PDF válido", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION"},
		{domain.ErrStaleResponse, http.StatusConflict, "STALE"},
		{fmt.Errorf("remoto: %w", domain.ErrUnavailable), http.StatusBadGateway, "REMOTE_UNAVAILABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
		{fiber.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
			app.Get("/x", func(*fiber.Ctx) error { return tc.err })

			resp := doGet(t, app, "/x")
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tc.code, body.Code)
			if tc.code == "VALIDATION" {
				assert.Equal(t, "El archivo x.txt no es un PDF válido", body.Message)
			}
			if tc.code == "SESSION_EXPIRED" {
				assert.Equal(t, "/login", body.Redirect)
			}
		})
	}
}
