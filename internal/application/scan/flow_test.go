package scan_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/policy"
	"github.com/deporar/sdt-pedidos/internal/application/scan"
	"github.com/deporar/sdt-pedidos/internal/application/session"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	"github.com/deporar/sdt-pedidos/pkg/logger"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type fakeSessions struct {
	mu      sync.Mutex
	s       *entity.Session
	expired []string
}

func (f *fakeSessions) Current() (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.s == nil {
		return nil, domain.ErrNoSession
	}
	return f.s.Clone(), nil
}

func (f *fakeSessions) Expire(token, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.s != nil && f.s.Token != token {
		return
	}
	f.s = nil
	f.expired = append(f.expired, reason)
}

func (f *fakeSessions) login(s *entity.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.s = s
}

func withRole(role string) *fakeSessions {
	return &fakeSessions{s: &entity.Session{
		UserID:      "10",
		DisplayName: "Rita",
		Role:        entity.Role{Name: role},
		Token:       "tok",
	}}
}

type fakeOrders struct {
	mu        sync.Mutex
	orders    map[string]*entity.Order
	getErr    error
	updateErr error
	// updateBody false = la API responde sin pedido.
	updateBody bool
	// block, si no es nil, retiene UpdateStatus hasta que se cierre.
	block   chan struct{}
	updates atomic.Int32
	qrGets  atomic.Int32
	manGets atomic.Int32
	last    dto.StatusUpdateRequest
	// putIDs ids de cada PUT /orders/{id}/status recibido.
	putIDs []string
	// onGet se ejecuta al entrar a cada búsqueda.
	onGet func()
}

func newOrders(ids ...string) *fakeOrders {
	f := &fakeOrders{orders: map[string]*entity.Order{}, updateBody: true}
	for _, id := range ids {
		f.orders[id] = &entity.Order{ID: id, OrderCode: "ML-" + id, Status: entity.StatusRecibido}
	}
	return f
}

func (f *fakeOrders) get(id string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *o
	return &c, nil
}

func (f *fakeOrders) GetByQR(_ context.Context, _, id string) (*entity.Order, error) {
	f.qrGets.Add(1)
	if f.onGet != nil {
		f.onGet()
	}
	return f.get(id)
}

func (f *fakeOrders) GetManual(_ context.Context, _, id string) (*entity.Order, error) {
	f.manGets.Add(1)
	if f.onGet != nil {
		f.onGet()
	}
	return f.get(id)
}

func (f *fakeOrders) UpdateStatus(_ context.Context, _, id string, in dto.StatusUpdateRequest) (*entity.Order, error) {
	f.updates.Add(1)
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = in
	f.putIDs = append(f.putIDs, id)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = entity.Status(in.OrderStatus)
	if !f.updateBody {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (f *fakeOrders) CreateManual(context.Context, string, entity.ShippingData) (*entity.ManualOrder, error) {
	return nil, errors.New("no usado")
}

type apiError struct{ msg string }

func (e apiError) Error() string         { return "api: " + e.msg }
func (e apiError) PublicMessage() string { return e.msg }
func (e apiError) Unwrap() error         { return domain.ErrValidation }

type fakeEvents struct {
	mu   sync.Mutex
	evts []dto.StatusChangedEvent
}

func (f *fakeEvents) PublishStatusChanged(_ context.Context, e dto.StatusChangedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evts = append(f.evts, e)
	return nil
}

func newFlow(s session.Provider, o *fakeOrders, opts ...scan.Option) *scan.Flow {
	return scan.NewFlow(s, policy.Default(), o, logger.Nop(), opts...)
}

func TestRecibidor_EscaneaYActualiza(t *testing.T) {
	orders := newOrders("123")
	events := &fakeEvents{}
	f := newFlow(withRole("RECIBIDOR"), orders, scan.WithEvents(events))

	v, err := f.Load(context.Background(), `{"orderId":"123"}`, scan.SourceQR)
	require.NoError(t, err)
	assert.Equal(t, "ready", v.Phase)
	assert.Equal(t, "json", v.Payload.Format)
	assert.Equal(t, []dto.StatusOption{{Value: "RECIBIDO", Label: entity.StatusRecibido.Label()}}, v.AllowedStatuses)
	assert.False(t, v.NoPermission)
	assert.False(t, v.CanSubmit)

	v, err = f.Select("recibido")
	require.NoError(t, err)
	assert.True(t, v.CanSubmit)

	v, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "success", v.Phase)
	assert.True(t, v.Completed)
	require.NotNil(t, v.Order)
	assert.Equal(t, "RECIBIDO", v.Order.Status)
	assert.Equal(t, dto.StatusUpdateRequest{OrderStatus: "RECIBIDO", UserID: "10", UserName: "Rita", UserRole: "RECIBIDOR"}, orders.last)
	assert.Equal(t, int32(1), orders.qrGets.Load())

	require.Len(t, events.evts, 1)
	assert.Equal(t, "123", events.evts[0].OrderID)
	assert.Equal(t, "RECIBIDO", events.evts[0].ToStatus)

	_, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	assert.Equal(t, int32(1), orders.updates.Load())
}

func TestSelect_FueraDelRolEsRechazado(t *testing.T) {
	f := newFlow(withRole("recibidor"), newOrders("1"))
	_, err := f.Load(context.Background(), "1", scan.SourceManual)
	require.NoError(t, err)

	v, err := f.Select("DESPACHADO")
	assert.ErrorIs(t, err, domain.ErrStatusNotAllowed)
	assert.Empty(t, v.Selected)
}

func TestRolDesconocido_SinPermisos(t *testing.T) {
	orders := newOrders("1")
	f := newFlow(withRole("auditor"), orders)
	v, err := f.Load(context.Background(), "ORDER:1|DATE:2025-01-01", scan.SourceQR)
	require.NoError(t, err)
	assert.True(t, v.NoPermission)
	assert.Empty(t, v.AllowedStatuses)
	assert.Equal(t, policy.NoPermissionMessage, v.Error)

	_, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoStatusSelected)
	assert.Zero(t, orders.updates.Load())
}

func TestPayloadInvalido_NoBusca(t *testing.T) {
	orders := newOrders()
	f := newFlow(withRole("admin"), orders)
	v, err := f.Load(context.Background(), "hola mundo", scan.SourceQR)
	require.NoError(t, err)
	assert.Equal(t, scan.MsgUnrecognized, v.Notice)
	assert.Equal(t, "hola mundo", v.Payload.Raw)
	assert.False(t, v.Payload.Valid)
	assert.Zero(t, orders.qrGets.Load())
}

func TestLoad_LectorSeDetieneAntesDeBuscar(t *testing.T) {
	dev := &countingDevice{}
	guard := scan.NewGuard(dev, logger.Nop())
	require.NoError(t, guard.Acquire(context.Background()))

	orders := newOrders("123")
	var activeAtFetch bool
	orders.onGet = func() { activeAtFetch = guard.Active() }
	f := newFlow(withRole("admin"), orders, scan.WithGuard(guard))

	_, err := f.Load(context.Background(), `{"orderId":"123"}`, scan.SourceQR)
	require.NoError(t, err)
	assert.False(t, activeAtFetch, "la cámara ya estaba detenida al consultar la API")
	assert.Equal(t, 1, dev.stops)
}

func TestLoad_LecturaInvalidaOManualNoLiberaElLector(t *testing.T) {
	guard := scan.NewGuard(&countingDevice{}, logger.Nop())
	require.NoError(t, guard.Acquire(context.Background()))
	f := newFlow(withRole("admin"), newOrders("7"), scan.WithGuard(guard))

	_, err := f.Load(context.Background(), "hola mundo", scan.SourceQR)
	require.NoError(t, err)
	assert.True(t, guard.Active())

	_, err = f.Load(context.Background(), "7", scan.SourceManual)
	require.NoError(t, err)
	assert.True(t, guard.Active())
}

func TestManual_UsaRutaManual(t *testing.T) {
	orders := newOrders("77")
	f := newFlow(withRole("admin"), orders)
	_, err := f.Load(context.Background(), "  77 ", scan.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, int32(1), orders.manGets.Load())
	assert.Zero(t, orders.qrGets.Load())
}

func TestLoad_MismoCodigoNoRepite(t *testing.T) {
	orders := newOrders("5")
	f := newFlow(withRole("admin"), orders)
	_, err := f.Load(context.Background(), "5", scan.SourceManual)
	require.NoError(t, err)
	_, err = f.Load(context.Background(), "5", scan.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, int32(1), orders.manGets.Load())
}

func TestLoad_PedidoInexistente(t *testing.T) {
	f := newFlow(withRole("admin"), newOrders())
	v, err := f.Load(context.Background(), "https://x.test/p?order_id=9", scan.SourceQR)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "failed", v.Phase)
	assert.Equal(t, scan.MsgOrderNotFound, v.Error)
}

func TestSubmit_DobleEnvioUnaSolaLlamada(t *testing.T) {
	orders := newOrders("1")
	orders.block = make(chan struct{})
	f := newFlow(withRole("admin"), orders)
	_, err := f.Load(context.Background(), "1", scan.SourceManual)
	require.NoError(t, err)
	_, err = f.Select("EMBALADO")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return orders.updates.Load() == 1 }, timeout, tick)

	v, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
	assert.True(t, v.Loading)
	assert.False(t, v.CanSubmit)

	close(orders.block)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), orders.updates.Load())
}

func TestSubmit_JWTVencidoLimpiaSesionSinError(t *testing.T) {
	orders := newOrders("1")
	orders.updateErr = errors.Join(domain.ErrAuthExpired, errors.New("JWT expired"))
	sessions := withRole("admin")
	f := newFlow(sessions, orders)
	_, err := f.Load(context.Background(), "1", scan.SourceManual)
	require.NoError(t, err)
	_, err = f.Select("CANCELADO")
	require.NoError(t, err)

	v, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.Equal(t, "auth_expired", v.Phase)
	assert.Empty(t, v.Error)
	assert.Equal(t, session.LoginPath, v.Redirect)
	assert.Len(t, sessions.expired, 1)
	_, err = sessions.Current()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSubmit_ActualizaPorElIdLeido(t *testing.T) {
	for name, bodyID := range map[string]string{
		"id interno distinto": "42",
		"sin id en la API":    "",
	} {
		t.Run(name, func(t *testing.T) {
			orders := newOrders()
			orders.orders["ML-555"] = &entity.Order{ID: bodyID, Status: entity.StatusRecibido}
			events := &fakeEvents{}
			f := newFlow(withRole("admin"), orders, scan.WithEvents(events))

			_, err := f.Load(context.Background(), `{"id":"ML-555","status":"RECIBIDO"}`, scan.SourceQR)
			require.NoError(t, err)
			_, err = f.Select("EMBALADO")
			require.NoError(t, err)

			v, err := f.Submit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "success", v.Phase)
			assert.Equal(t, []string{"ML-555"}, orders.putIDs)
			require.Len(t, events.evts, 1)
			assert.Equal(t, "ML-555", events.evts[0].OrderID)
		})
	}
}

func TestSubmit_SinCuerpoReleePorElIdLeido(t *testing.T) {
	orders := newOrders()
	orders.updateBody = false
	orders.orders["ML-555"] = &entity.Order{ID: "42", Status: entity.StatusRecibido}
	f := newFlow(withRole("admin"), orders)
	_, err := f.Load(context.Background(), "https://x.test/p?order_id=ML-555", scan.SourceQR)
	require.NoError(t, err)
	_, err = f.Select("EMBALADO")
	require.NoError(t, err)

	v, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, v.Order)
	assert.Equal(t, "EMBALADO", v.Order.Status)
	assert.Equal(t, int32(2), orders.qrGets.Load(), "la relectura encuentra el pedido por el código")
}

func TestLoad_MismoCodigoTrasReloginVuelveABuscar(t *testing.T) {
	orders := newOrders("1")
	orders.updateErr = domain.ErrAuthExpired
	sessions := withRole("admin")
	f := newFlow(sessions, orders)
	_, err := f.Load(context.Background(), `{"orderId":"1"}`, scan.SourceQR)
	require.NoError(t, err)
	_, err = f.Select("EMBALADO")
	require.NoError(t, err)
	v, err := f.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthExpired)
	require.Equal(t, "auth_expired", v.Phase)

	sessions.login(&entity.Session{UserID: "10", DisplayName: "Rita", Role: entity.Role{Name: "admin"}, Token: "tok2"})
	orders.mu.Lock()
	orders.updateErr = nil
	orders.mu.Unlock()

	v, err = f.Load(context.Background(), `{"orderId":"1"}`, scan.SourceQR)
	require.NoError(t, err)
	assert.Equal(t, "ready", v.Phase)
	assert.Empty(t, v.Redirect)
	assert.NotEmpty(t, v.AllowedStatuses)
	assert.Equal(t, int32(2), orders.qrGets.Load())
}

func TestSubmit_RechazoDeTokenViejoNoCierraSesionNueva(t *testing.T) {
	orders := newOrders("1")
	orders.block = make(chan struct{})
	orders.updateErr = domain.ErrAuthExpired
	sessions := withRole("admin")
	f := newFlow(sessions, orders)
	_, err := f.Load(context.Background(), "1", scan.SourceManual)
	require.NoError(t, err)
	_, err = f.Select("EMBALADO")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return orders.updates.Load() == 1 }, timeout, tick)

	sessions.login(&entity.Session{UserID: "10", Role: entity.Role{Name: "admin"}, Token: "tok2"})
	close(orders.block)
	assert.ErrorIs(t, <-done, domain.ErrStaleResponse)

	v := f.View()
	assert.Equal(t, "ready", v.Phase)
	assert.Empty(t, v.Redirect)
	assert.True(t, v.CanSubmit, "se puede reenviar con la sesión nueva")

	s, err := sessions.Current()
	require.NoError(t, err)
	assert.Equal(t, "tok2", s.Token)
	assert.Empty(t, sessions.expired)
}

func TestSubmit_ErrorDeNegocioPermiteReintentar(t *testing.T) {
	orders := newOrders("1")
	orders.updateErr = apiError{msg: "Transición no permitida"}
	f := newFlow(withRole("admin"), orders)
	_, err := f.Load(context.Background(), "1", scan.SourceManual)
	require.NoError(t, err)
	_, err = f.Select("ENTREGADO")
	require.NoError(t, err)

	v, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "failed", v.Phase)
	assert.Equal(t, "Transición no permitida", v.Error)
	assert.True(t, v.CanSubmit)

	orders.mu.Lock()
	orders.updateErr = errors.New("sin mensaje")
	orders.mu.Unlock()
	v, err = f.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, scan.MsgUpdateFailed, v.Error)
	assert.Equal(t, int32(2), orders.updates.Load())
}

func TestSubmit_SinCuerpoReleeElPedido(t *testing.T) {
	orders := newOrders("1")
	orders.updateBody = false
	f := newFlow(withRole("admin"), orders)
	_, err := f.Load(context.Background(), `{"id": 1}`, scan.SourceQR)
	require.NoError(t, err)
	_, err = f.Select("PREPARADO")
	require.NoError(t, err)

	v, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, v.Order)
	assert.Equal(t, "PREPARADO", v.Order.Status)
	assert.Equal(t, int32(2), orders.qrGets.Load())
}

func TestReset_DescartaRespuestaVieja(t *testing.T) {
	orders := newOrders("1")
	orders.block = make(chan struct{})
	f := newFlow(withRole("admin"), orders)
	_, err := f.Load(context.Background(), "1", scan.SourceManual)
	require.NoError(t, err)
	_, err = f.Select("EMBALADO")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return orders.updates.Load() == 1 }, timeout, tick)

	f.Reset()
	close(orders.block)
	assert.ErrorIs(t, <-done, domain.ErrStaleResponse)

	v := f.View()
	assert.Equal(t, "idle", v.Phase)
	assert.Nil(t, v.Order)
	assert.False(t, v.Completed)
}

func TestNuevoCodigoLimpiaEstado(t *testing.T) {
	orders := newOrders("1", "2")
	f := newFlow(withRole("admin"), orders)
	_, err := f.Load(context.Background(), "1", scan.SourceManual)
	require.NoError(t, err)
	_, err = f.Select("EMBALADO")
	require.NoError(t, err)
	_, err = f.Submit(context.Background())
	require.NoError(t, err)

	v, err := f.Load(context.Background(), "2", scan.SourceManual)
	require.NoError(t, err)
	assert.Empty(t, v.Selected)
	assert.False(t, v.Completed)
	assert.Equal(t, "2", v.Order.ID)
}

func TestSinSesion(t *testing.T) {
	f := newFlow(&fakeSessions{}, newOrders("1"))
	v, err := f.Load(context.Background(), "1", scan.SourceManual)
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Equal(t, session.LoginPath, v.Redirect)

	_, err = f.Statuses()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}
