// Package scan orquesta el flujo de actualización de estado a partir de un código leído:
// interpretar, buscar el pedido, elegir un estado permitido para el rol y enviarlo una sola vez.
package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/policy"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/application/session"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	"github.com/deporar/sdt-pedidos/internal/domain/qr"
	"github.com/deporar/sdt-pedidos/pkg/logger"
)

// Source origen del texto: lectura de QR o carga por teclado.
type Source string

const (
	SourceQR     Source = "qr"
	SourceManual Source = "manual"
)

// ParseSource vacío o desconocido se toma como qr.
func ParseSource(s string) Source {
	if strings.EqualFold(strings.TrimSpace(s), string(SourceManual)) {
		return SourceManual
	}
	return SourceQR
}

// Phase etapa del flujo para la UI.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseLoading     Phase = "loading"
	PhaseReady       Phase = "ready"
	PhaseSubmitting  Phase = "submitting"
	PhaseSuccess     Phase = "success"
	PhaseFailed      Phase = "failed"
	PhaseAuthExpired Phase = "auth_expired"
)

// Mensajes que ve el operador.
const (
	MsgUnrecognized  = "Formato de código no reconocido"
	MsgOrderNotFound = "Pedido no encontrado"
	MsgLoadFailed    = "No se pudo obtener el pedido"
	MsgUpdateFailed  = "Error al actualizar el estado"
)

// Recorder contadores de escaneos y envíos (Prometheus en producción).
type Recorder interface {
	Scan(format string)
	StatusUpdate(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Scan(string)         {}
func (nopRecorder) StatusUpdate(string) {}

// Flow estado de la pantalla de escaneo de la estación. Es seguro para uso concurrente:
// las llamadas de red se hacen sin tomar el lock y el resultado se descarta si mientras tanto
// cambió la generación (nuevo código o reset).
type Flow struct {
	sessions session.Provider
	policy   *policy.Table
	orders   ports.OrderGateway
	events   ports.EventPublisher
	guard    *Guard
	rec      Recorder
	log      *logger.Logger
	timeout  time.Duration
	now      func() time.Time

	mu        sync.Mutex
	gen       uint64
	source    Source
	payload   *qr.Payload
	order     *entity.Order
	selected  entity.Status
	phase     Phase
	inFlight  bool
	completed bool
	notice    string
	errMsg    string
	redirect  string
}

// Option configura el Flow.
type Option func(*Flow)

// WithEvents publica order.status_changed tras cada actualización aceptada.
func WithEvents(p ports.EventPublisher) Option {
	return func(f *Flow) { f.events = p }
}

// WithGuard lector que se libera apenas se acepta un QR, antes de buscar el pedido.
func WithGuard(g *Guard) Option {
	return func(f *Flow) { f.guard = g }
}

// WithRecorder registra métricas del flujo.
func WithRecorder(r Recorder) Option {
	return func(f *Flow) {
		if r != nil {
			f.rec = r
		}
	}
}

// WithTimeout timeout de cada llamada a la API.
func WithTimeout(d time.Duration) Option {
	return func(f *Flow) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// NewFlow construye el flujo.
func NewFlow(sessions session.Provider, table *policy.Table, orders ports.OrderGateway, log *logger.Logger, opts ...Option) *Flow {
	f := &Flow{
		sessions: sessions,
		policy:   table,
		orders:   orders,
		rec:      nopRecorder{},
		log:      log,
		timeout:  15 * time.Second,
		now:      time.Now,
		phase:    PhaseIdle,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Load procesa un texto leído. Si es el mismo código ya cargado no hace nada; si es distinto
// descarta todo el estado anterior. Después de una expiración de sesión el mismo código se
// vuelve a buscar con la sesión nueva. Un código sin id válido queda visible con un aviso y no
// dispara ninguna búsqueda.
func (f *Flow) Load(ctx context.Context, raw string, src Source) (dto.ScanViewResponse, error) {
	f.mu.Lock()
	if f.payload != nil && f.payload.Raw == raw && f.source == src && f.phase != PhaseAuthExpired &&
		(f.order != nil || f.phase == PhaseLoading) {
		v := f.viewLocked()
		f.mu.Unlock()
		if src == SourceQR {
			f.releaseReader()
		}
		return v, nil
	}
	f.resetLocked()

	var p qr.Payload
	if src == SourceManual {
		p = qr.Manual(raw)
	} else {
		p = qr.Interpret(raw)
	}
	f.rec.Scan(string(p.Format))
	f.source = src
	f.payload = &p
	if !p.Valid {
		f.notice = MsgUnrecognized
		v := f.viewLocked()
		f.mu.Unlock()
		return v, nil
	}

	s, err := f.sessions.Current()
	if err != nil {
		v := f.authFailureLocked(err)
		f.mu.Unlock()
		if src == SourceQR {
			f.releaseReader()
		}
		return v, err
	}
	f.phase = PhaseLoading
	gen := f.gen
	f.mu.Unlock()

	if src == SourceQR {
		f.releaseReader()
	}
	order, err := f.fetch(ctx, s.Token, src, p.OrderID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return f.viewLocked(), domain.ErrStaleResponse
	}
	if err != nil {
		if errors.Is(err, domain.ErrAuthExpired) {
			if f.expireLocked(s.Token, "token rechazado al buscar pedido") {
				f.phase = PhaseIdle
				return f.viewLocked(), domain.ErrStaleResponse
			}
			return f.authFailureLocked(err), err
		}
		f.phase = PhaseFailed
		if errors.Is(err, domain.ErrNotFound) {
			f.errMsg = MsgOrderNotFound
		} else {
			f.errMsg = domain.UserMessage(err, MsgLoadFailed)
		}
		f.log.Warn().Err(err).Str("order_id", p.OrderID).Str("source", string(src)).Msg("no se pudo cargar el pedido")
		return f.viewLocked(), err
	}
	f.order = order
	f.phase = PhaseReady
	return f.viewLocked(), nil
}

// Select elige el estado a aplicar; tiene que estar dentro de los permitidos para el rol.
func (f *Flow) Select(status string) (dto.ScanViewResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order == nil {
		return f.viewLocked(), domain.ErrNoOrder
	}
	if f.completed {
		return f.viewLocked(), domain.ErrAlreadyCompleted
	}
	st, err := entity.ParseStatus(status)
	if err != nil {
		return f.viewLocked(), err
	}
	s, err := f.sessions.Current()
	if err != nil {
		return f.authFailureLocked(err), err
	}
	if !f.policy.Permits(s.Role.Name, st) {
		return f.viewLocked(), fmt.Errorf("%w: %s", domain.ErrStatusNotAllowed, st)
	}
	f.selected = st
	f.errMsg = ""
	if f.phase == PhaseFailed {
		f.phase = PhaseReady
	}
	return f.viewLocked(), nil
}

// Submit envía el estado elegido. Rechaza sin tocar la red si no hay selección, si el rol
// no tiene permisos, si ya hay un envío en curso o si el pedido ya se actualizó para este código.
func (f *Flow) Submit(ctx context.Context) (dto.ScanViewResponse, error) {
	f.mu.Lock()
	switch {
	case f.order == nil:
		v := f.viewLocked()
		f.mu.Unlock()
		return v, domain.ErrNoOrder
	case f.completed:
		v := f.viewLocked()
		f.mu.Unlock()
		return v, domain.ErrAlreadyCompleted
	case f.inFlight:
		v := f.viewLocked()
		f.mu.Unlock()
		return v, domain.ErrSubmitInFlight
	case f.selected == "":
		v := f.viewLocked()
		f.mu.Unlock()
		return v, domain.ErrNoStatusSelected
	}
	s, err := f.sessions.Current()
	if err != nil {
		v := f.authFailureLocked(err)
		f.mu.Unlock()
		return v, err
	}
	if !f.policy.Permits(s.Role.Name, f.selected) {
		v := f.viewLocked()
		f.mu.Unlock()
		return v, domain.ErrStatusNotAllowed
	}

	f.inFlight = true
	f.phase = PhaseSubmitting
	f.errMsg = ""
	gen := f.gen
	// el PUT va al id leído del código; el id del cuerpo de la API puede ser interno o faltar
	orderID := f.payload.OrderID
	prev := *f.order
	target := f.selected
	src := f.source
	f.mu.Unlock()

	in := dto.StatusUpdateRequest{
		OrderStatus: string(target),
		UserID:      s.UserID,
		UserName:    s.DisplayName,
		UserRole:    s.Role.Name,
	}
	updated, err := f.update(ctx, s.Token, orderID, in)
	if err == nil && updated == nil {
		updated = f.refetch(ctx, s.Token, src, orderID, prev, target)
	}

	f.mu.Lock()
	if gen != f.gen {
		v := f.viewLocked()
		f.mu.Unlock()
		f.log.Debug().Str("order_id", orderID).Msg("respuesta de cambio de estado descartada")
		return v, domain.ErrStaleResponse
	}
	f.inFlight = false
	if err != nil {
		if errors.Is(err, domain.ErrAuthExpired) {
			f.rec.StatusUpdate("auth_expired")
			if f.expireLocked(s.Token, "token rechazado al actualizar estado") {
				f.phase = PhaseReady
				v := f.viewLocked()
				f.mu.Unlock()
				return v, domain.ErrStaleResponse
			}
			v := f.authFailureLocked(err)
			f.mu.Unlock()
			return v, err
		}
		f.rec.StatusUpdate("failed")
		f.phase = PhaseFailed
		f.errMsg = domain.UserMessage(err, MsgUpdateFailed)
		v := f.viewLocked()
		f.mu.Unlock()
		f.log.Warn().Err(err).Str("order_id", orderID).Str("status", string(target)).Msg("cambio de estado rechazado")
		return v, err
	}
	f.rec.StatusUpdate("success")
	f.order = updated
	f.completed = true
	f.phase = PhaseSuccess
	f.notice = fmt.Sprintf("Estado actualizado a %s", target.Label())
	v := f.viewLocked()
	f.mu.Unlock()

	f.log.Info().Str("order_id", orderID).Str("from", string(prev.Status)).Str("to", string(target)).
		Str("user_id", s.UserID).Msg("estado de pedido actualizado")
	f.publish(ctx, dto.StatusChangedEvent{
		OrderID:    orderID,
		FromStatus: string(prev.Status),
		ToStatus:   string(target),
		UserID:     s.UserID,
		UserName:   s.DisplayName,
		UserRole:   s.Role.Name,
		Source:     string(src),
		OccurredAt: f.now().UTC(),
	})
	return v, nil
}

// Reset vuelve a cero; cualquier respuesta pendiente queda huérfana.
func (f *Flow) Reset() dto.ScanViewResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	return f.viewLocked()
}

// View foto del estado actual.
func (f *Flow) View() dto.ScanViewResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

// Statuses estados permitidos para el rol de la sesión.
func (f *Flow) Statuses() (dto.StatusesResponse, error) {
	s, err := f.sessions.Current()
	if err != nil {
		return dto.StatusesResponse{}, err
	}
	allowed := f.policy.Allowed(s.Role.Name)
	out := dto.StatusesResponse{Role: s.Role.Name, Statuses: dto.StatusOptions(allowed)}
	if len(allowed) == 0 {
		out.NoPermission = true
		out.Message = policy.NoPermissionMessage
	}
	return out, nil
}

// releaseReader detiene el lector tras una lectura válida. Se llama sin el lock del flujo.
func (f *Flow) releaseReader() {
	if f.guard == nil {
		return
	}
	if err := f.guard.Release(); err != nil {
		f.log.Warn().Err(err).Msg("liberar lector tras lectura")
	}
}

func (f *Flow) fetch(ctx context.Context, token string, src Source, id string) (*entity.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if src == SourceManual {
		return f.orders.GetManual(ctx, token, id)
	}
	return f.orders.GetByQR(ctx, token, id)
}

func (f *Flow) update(ctx context.Context, token, id string, in dto.StatusUpdateRequest) (*entity.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return f.orders.UpdateStatus(ctx, token, id, in)
}

// refetch la API aceptó el cambio pero no devolvió el pedido. Si tampoco se puede releer,
// se entrega la copia local con el estado nuevo.
func (f *Flow) refetch(ctx context.Context, token string, src Source, id string, prev entity.Order, target entity.Status) *entity.Order {
	o, err := f.fetch(ctx, token, src, id)
	if err == nil && o != nil {
		return o
	}
	f.log.Warn().Err(err).Str("order_id", id).Msg("no se pudo releer el pedido actualizado")
	prev.Status = target
	prev.UpdatedAt = f.now()
	return &prev
}

func (f *Flow) publish(ctx context.Context, evt dto.StatusChangedEvent) {
	if f.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := f.events.PublishStatusChanged(ctx, evt); err != nil {
		f.log.Warn().Err(err).Str("order_id", evt.OrderID).Msg("no se pudo publicar el evento de estado")
	}
}

// expireLocked descarta la sesión de token. Devuelve true si ya hay otra sesión vigente
// (login nuevo mientras la llamada estaba en vuelo): el rechazo no aplica a ella.
func (f *Flow) expireLocked(token, reason string) bool {
	f.sessions.Expire(token, reason)
	cur, err := f.sessions.Current()
	return err == nil && cur.Token != token
}

// authFailureLocked deja el flujo esperando un nuevo login. No hay error en línea: la UI navega.
func (f *Flow) authFailureLocked(err error) dto.ScanViewResponse {
	if errors.Is(err, domain.ErrAuthExpired) || errors.Is(err, domain.ErrNoSession) {
		f.phase = PhaseAuthExpired
		f.inFlight = false
		f.errMsg = ""
		f.redirect = session.LoginPath
	}
	return f.viewLocked()
}

func (f *Flow) resetLocked() {
	f.gen++
	f.source = ""
	f.payload = nil
	f.order = nil
	f.selected = ""
	f.phase = PhaseIdle
	f.inFlight = false
	f.completed = false
	f.notice = ""
	f.errMsg = ""
	f.redirect = ""
}

func (f *Flow) viewLocked() dto.ScanViewResponse {
	v := dto.ScanViewResponse{
		Phase:           string(f.phase),
		Order:           dto.FromOrder(f.order),
		AllowedStatuses: []dto.StatusOption{},
		Selected:        string(f.selected),
		Loading:         f.phase == PhaseLoading || f.phase == PhaseSubmitting,
		Completed:       f.completed,
		Notice:          f.notice,
		Error:           f.errMsg,
		Redirect:        f.redirect,
	}
	if f.payload != nil {
		v.Payload = &dto.PayloadResponse{
			Raw:       f.payload.Raw,
			Format:    string(f.payload.Format),
			OrderID:   f.payload.OrderID,
			OrderDate: f.payload.OrderDate,
			Customer:  f.payload.Customer,
			Products:  f.payload.Products,
			Status:    f.payload.Status,
			Notes:     f.payload.Notes,
			Valid:     f.payload.Valid,
		}
	}
	if f.phase == PhaseAuthExpired {
		return v
	}
	if s, err := f.sessions.Current(); err == nil {
		allowed := f.policy.Allowed(s.Role.Name)
		v.AllowedStatuses = dto.StatusOptions(allowed)
		v.NoPermission = len(allowed) == 0
		if v.NoPermission && f.order != nil && v.Error == "" {
			v.Error = policy.NoPermissionMessage
		}
		v.CanSubmit = f.order != nil && !f.completed && !f.inFlight && f.selected != "" &&
			f.policy.Permits(s.Role.Name, f.selected)
	}
	return v
}
