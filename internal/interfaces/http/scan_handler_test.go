package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/policy"
	"github.com/deporar/sdt-pedidos/internal/application/scan"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	apphttp "github.com/deporar/sdt-pedidos/internal/interfaces/http"
	"github.com/deporar/sdt-pedidos/pkg/logger"
)

type fakeOrders struct {
	updateErr error
	updates   atomic.Int32
}

func (f *fakeOrders) GetByQR(_ context.Context, _, id string) (*entity.Order, error) {
	if id == "404" {
		return nil, domain.ErrNotFound
	}
	return &entity.Order{ID: id, OrderCode: "ML-" + id, Status: entity.StatusEnPreparacion}, nil
}

func (f *fakeOrders) GetManual(ctx context.Context, token, id string) (*entity.Order, error) {
	return f.GetByQR(ctx, token, id)
}

func (f *fakeOrders) UpdateStatus(_ context.Context, _, id string, in dto.StatusUpdateRequest) (*entity.Order, error) {
	f.updates.Add(1)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &entity.Order{ID: id, Status: entity.Status(in.OrderStatus)}, nil
}

func (f *fakeOrders) CreateManual(context.Context, string, entity.ShippingData) (*entity.ManualOrder, error) {
	return nil, domain.ErrUnavailable
}

type scanFixture struct {
	app      *fiber.App
	sessions *fakeSessions
	orders   *fakeOrders
	guard    *scan.Guard
}

func newScanFixture(role string) *scanFixture {
	sessions := withRole(role)
	orders := &fakeOrders{}
	log := logger.Nop()
	guard := scan.NewGuard(scan.NoDevice{}, log)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Middlewares(app, log, "*")
	apphttp.Router(app, apphttp.RouterDeps{
		Sessions: sessions,
		Flow:     scan.NewFlow(sessions, policy.Default(), orders, log, scan.WithGuard(guard)),
		Guard:    guard,
	})
	return &scanFixture{app: app, sessions: sessions, orders: orders, guard: guard}
}

func (f *scanFixture) post(t *testing.T, path, body string) (*http.Response, dto.ScanViewResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var v dto.ScanViewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return resp, v
}

func TestScan_LecturaAceptadaLiberaElLector(t *testing.T) {
	f := newScanFixture("EMBALADOR")
	require.NoError(t, f.guard.Acquire(context.Background()))

	resp, v := f.post(t, "/api/scan", `{"raw":"{\"orderId\":\"123\"}"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(scan.PhaseReady), v.Phase)
	require.NotNil(t, v.Order)
	assert.Equal(t, "123", v.Order.ID)
	assert.False(t, f.guard.Active())
	assert.Len(t, v.AllowedStatuses, 2)
}

func TestScan_FlujoCompletoDeCambioDeEstado(t *testing.T) {
	f := newScanFixture("EMBALADOR")
	f.post(t, "/api/scan", `{"raw":"123","source":"manual"}`)

	resp, v := f.post(t, "/api/scan/select", `{"status":"DESPACHADO"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "STATUS_NOT_ALLOWED", v.Code)

	resp, _ = f.post(t, "/api/scan/select", `{"status":"EMBALADO"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, v = f.post(t, "/api/scan/submit", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, v.Completed)
	assert.Equal(t, "EMBALADO", v.Order.Status)

	resp, v = f.post(t, "/api/scan/submit", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_COMPLETED", v.Code)
	assert.EqualValues(t, 1, f.orders.updates.Load())
}

func TestScan_PedidoInexistente(t *testing.T) {
	f := newScanFixture("EMBALADOR")
	resp, v := f.post(t, "/api/scan", `{"raw":"404","source":"manual"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Pedido no encontrado", v.Error)
	assert.Nil(t, v.Order)
}

func TestScan_CodigoIlegibleNoEsError(t *testing.T) {
	f := newScanFixture("EMBALADOR")
	resp, v := f.post(t, "/api/scan", `{"raw":"hola mundo"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, scan.MsgUnrecognized, v.Notice)
	require.NotNil(t, v.Payload)
	assert.False(t, v.Payload.Valid)
}

func TestScan_TokenVencidoVuelveAlLogin(t *testing.T) {
	f := newScanFixture("EMBALADOR")
	f.orders.updateErr = domain.ErrAuthExpired
	f.post(t, "/api/scan", `{"raw":"123","source":"manual"}`)
	f.post(t, "/api/scan/select", `{"status":"EMBALADO"}`)

	resp, v := f.post(t, "/api/scan/submit", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", v.Code)
	assert.Equal(t, "/login", v.Redirect)
	assert.Empty(t, v.Error, "sin error en línea")

	r, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/statuses", nil), -1)
	require.NoError(t, err)
	defer r.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", decodeError(t, r).Code)
}

func TestStatuses_RolDesconocido(t *testing.T) {
	f := newScanFixture("PASANTE")
	r, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/statuses", nil), -1)
	require.NoError(t, err)
	defer r.Body.Close()

	var out dto.StatusesResponse
	require.NoError(t, json.NewDecoder(r.Body).Decode(&out))
	assert.True(t, out.NoPermission)
	assert.Empty(t, out.Statuses)
	assert.Equal(t, policy.NoPermissionMessage, out.Message)
}

func TestMetrics_SoloAdmin(t *testing.T) {
	f := newScanFixture("EMBALADOR")
	r, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/metrics", nil), -1)
	require.NoError(t, err)
	defer r.Body.Close()
	assert.Equal(t, http.StatusForbidden, r.StatusCode)
}
