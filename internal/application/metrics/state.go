// Package metrics mantiene el estado del tablero de métricas: filtros, página actual y
// el último resultado recibido. Cada consulta lleva un número de secuencia y solo la más
// reciente puede escribir el estado.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/application/session"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	"github.com/deporar/sdt-pedidos/pkg/logger"
)

const (
	// DefaultTimeRange rango del tablero al entrar o al limpiar filtros.
	DefaultTimeRange = "day"
	// DefaultPageSize tamaño de página si no se configura otro.
	DefaultPageSize = 10

	// allStatuses valor del selector que equivale a no filtrar.
	allStatuses = "ALL"
)

// Formatos de exportación de la API remota.
const (
	ExportExcel = "excel"
	ExportCSV   = "csv"
)

// Mensajes del tablero.
const (
	MsgOrderNotFound = "Pedido no encontrado"
	MsgLoadFailed    = "Error al cargar las métricas"
)

var timeRanges = map[string]bool{"": true, "day": true, "week": true, "month": true, "year": true, "custom": true}

// State estado del tablero de la estación.
type State struct {
	sessions session.Provider
	gw       ports.MetricsGateway
	orders   ports.OrderGateway
	log      *logger.Logger
	timeout  time.Duration
	pageSize int

	mu      sync.Mutex
	seq     uint64
	filters dto.MetricsFilters
	page    int
	metrics *entity.Metrics
	list    entity.OrderPage
	loading bool
	notice  string
	errMsg  string
}

// Option configura el State.
type Option func(*State)

// WithPageSize tamaño de página de la tabla de pedidos.
func WithPageSize(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithTimeout timeout de cada consulta.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewState arranca con los filtros por defecto y página 1, sin datos hasta el primer Refresh.
func NewState(sessions session.Provider, gw ports.MetricsGateway, orders ports.OrderGateway, log *logger.Logger, opts ...Option) *State {
	s := &State{
		sessions: sessions,
		gw:       gw,
		orders:   orders,
		log:      log,
		timeout:  15 * time.Second,
		pageSize: DefaultPageSize,
		filters:  DefaultFilters(),
		page:     1,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DefaultFilters filtros iniciales.
func DefaultFilters() dto.MetricsFilters {
	return dto.MetricsFilters{TimeRange: DefaultTimeRange}
}

// Normalize limpia y valida los filtros que llegan de la UI.
func Normalize(f dto.MetricsFilters) (dto.MetricsFilters, error) {
	f.Responsible = strings.TrimSpace(f.Responsible)
	f.OrderID = strings.TrimSpace(f.OrderID)
	f.Origin = strings.TrimSpace(f.Origin)
	f.TimeRange = strings.ToLower(strings.TrimSpace(f.TimeRange))
	if !timeRanges[f.TimeRange] {
		return f, fmt.Errorf("%w: time_range %q", domain.ErrInvalidInput, f.TimeRange)
	}

	status := strings.TrimSpace(f.Status)
	if strings.EqualFold(status, allStatuses) {
		status = ""
	}
	if status != "" {
		st, err := entity.ParseStatus(status)
		if err != nil {
			return f, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		status = string(st)
	}
	f.Status = status

	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate) {
		return f, fmt.Errorf("%w: fecha_fin anterior a fecha_inicio", domain.ErrInvalidInput)
	}
	return f, nil
}

// SetFilters aplica filtros nuevos; siempre vuelve a la página 1.
func (s *State) SetFilters(ctx context.Context, f dto.MetricsFilters) (dto.MetricsResponse, error) {
	f, err := Normalize(f)
	if err != nil {
		return s.Snapshot(), err
	}
	s.mu.Lock()
	s.filters = f
	s.page = 1
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SetPage cambia de página conservando los filtros.
func (s *State) SetPage(ctx context.Context, page int) (dto.MetricsResponse, error) {
	if page < 1 {
		return s.Snapshot(), fmt.Errorf("%w: página %d", domain.ErrInvalidInput, page)
	}
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Reset vuelve a los filtros por defecto y a la página 1.
func (s *State) Reset(ctx context.Context) (dto.MetricsResponse, error) {
	s.mu.Lock()
	s.filters = DefaultFilters()
	s.page = 1
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Refresh consulta con los filtros y la página actuales. Si otra consulta empezó después,
// esta respuesta se descarta y se devuelve ErrStaleResponse.
func (s *State) Refresh(ctx context.Context) (dto.MetricsResponse, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	filters := s.filters
	page := s.page
	s.loading = true
	s.mu.Unlock()

	sess, err := s.sessions.Current()
	if err != nil {
		s.mu.Lock()
		if seq == s.seq {
			s.loading = false
		}
		s.mu.Unlock()
		return s.Snapshot(), err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		m      *entity.Metrics
		single *entity.Order
	)
	if filters.OrderID != "" {
		single, err = s.orders.GetManual(ctx, sess.Token, filters.OrderID)
	} else {
		m, err = s.gw.Metrics(ctx, sess.Token, dto.MetricsQuery{Filters: filters, Page: page, Size: s.pageSize})
	}

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.log.Debug().Uint64("seq", seq).Msg("respuesta de métricas descartada")
		return s.Snapshot(), domain.ErrStaleResponse
	}
	s.loading = false
	s.notice = ""
	s.errMsg = ""
	switch {
	case err == nil && single != nil:
		s.metrics = nil
		s.list = entity.SingleOrderPage(*single)
	case err == nil && m != nil:
		s.metrics = m
		s.list = m.Orders
	case filters.OrderID != "" && (err == nil || errors.Is(err, domain.ErrNotFound)):
		s.metrics = nil
		s.list = entity.OrderPage{}
		s.notice = MsgOrderNotFound
		err = nil
	case err == nil:
		s.metrics = nil
		s.list = entity.OrderPage{}
	case errors.Is(err, domain.ErrAuthExpired):
		s.metrics = nil
		s.list = entity.OrderPage{}
	default:
		s.errMsg = domain.UserMessage(err, MsgLoadFailed)
	}
	s.mu.Unlock()

	if errors.Is(err, domain.ErrAuthExpired) {
		s.sessions.Expire(sess.Token, "token rechazado al consultar métricas")
	} else if err != nil {
		s.log.Warn().Err(err).Msg("no se pudieron cargar las métricas")
	}
	return s.Snapshot(), err
}

// Export descarga el reporte con los filtros actuales. format: xlsx/excel o csv.
func (s *State) Export(ctx context.Context, format string) (*dto.ExportFile, error) {
	var remote string
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "xlsx", ExportExcel:
		remote = ExportExcel
	case ExportCSV:
		remote = ExportCSV
	default:
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
	sess, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	filters := s.filters
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	f, err := s.gw.Export(ctx, sess.Token, filters, remote)
	if errors.Is(err, domain.ErrAuthExpired) {
		s.sessions.Expire(sess.Token, "token rechazado al exportar métricas")
	}
	return f, err
}

// Latest último agregado recibido; nil en búsqueda por pedido o antes de la primera consulta.
func (s *State) Latest() *entity.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metrics == nil {
		return nil
	}
	c := *s.metrics
	return &c
}

// Snapshot estado para la UI.
func (s *State) Snapshot() dto.MetricsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := dto.MetricsResponse{
		Filters: s.filters,
		Orders:  make([]dto.OrderResponse, 0, len(s.list.Orders)),
		Page: dto.PageResponse{
			Page:          s.page,
			Size:          s.pageSize,
			TotalPages:    s.list.TotalPages,
			TotalElements: s.list.TotalElements,
		},
		Loading: s.loading,
		Notice:  s.notice,
		Error:   s.errMsg,
	}
	for i := range s.list.Orders {
		out.Orders = append(out.Orders, *dto.FromOrder(&s.list.Orders[i]))
	}
	if s.filters.OrderID != "" && s.list.TotalElements > 0 {
		out.Page.Page = 1
		out.Page.Size = s.list.Size
	}
	if m := s.metrics; m != nil {
		agg := &dto.MetricsAggregate{
			TotalOrders:           m.TotalOrders,
			CompletedOrders:       m.CompletedOrders,
			PendingOrders:         m.PendingOrders,
			OrdersAtRisk:          m.OrdersAtRisk,
			AverageProcessingTime: m.AverageProcessingTime,
			ByStatus:              make([]dto.StatusCountResponse, 0, len(m.ByStatus)),
			ByUser:                make([]dto.UserCountResponse, 0, len(m.ByUser)),
			ByDate:                make([]dto.DateCountResponse, 0, len(m.ByDate)),
		}
		for _, c := range m.ByStatus {
			agg.ByStatus = append(agg.ByStatus, dto.StatusCountResponse{Status: string(c.Status), StatusLabel: c.Status.Label(), Count: c.Count})
		}
		for _, c := range m.ByUser {
			agg.ByUser = append(agg.ByUser, dto.UserCountResponse{UserID: c.UserID, UserName: c.UserName, Count: c.Count})
		}
		for _, c := range m.ByDate {
			agg.ByDate = append(agg.ByDate, dto.DateCountResponse{Date: c.Date, Count: c.Count, PreviousCount: c.PreviousCount})
		}
		out.Metrics = agg
	}
	return out
}
