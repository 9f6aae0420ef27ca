package dto

import (
	"github.com/shopspring/decimal"

	"github.com/deporar/sdt-pedidos/internal/domain/calendar"
)

// MetricsFilters criterios del tablero de métricas. Las claves JSON son las de la API remota.
type MetricsFilters struct {
	StartDate   calendar.Day `json:"fecha_inicio"`
	EndDate     calendar.Day `json:"fecha_fin"`
	Responsible string       `json:"responsable"`
	OrderID     string       `json:"pedido_id"`
	Status      string       `json:"estado"`
	Origin      string       `json:"origen"`
	TimeRange   string       `json:"time_range"`
}

// MetricsQuery filtros más página (base 1, como la ve la UI).
type MetricsQuery struct {
	Filters MetricsFilters
	Page    int
	Size    int
}

// SetPageRequest cambio de página.
type SetPageRequest struct {
	Page int `json:"page"`
}

// StatusCountResponse cantidad por estado.
type StatusCountResponse struct {
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Count       int    `json:"count"`
}

// UserCountResponse cantidad por responsable.
type UserCountResponse struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Count    int    `json:"count"`
}

// DateCountResponse cantidad por día.
type DateCountResponse struct {
	Date          string `json:"date"`
	Count         int    `json:"count"`
	PreviousCount *int   `json:"previous_count,omitempty"`
}

// MetricsAggregate agregados del período.
type MetricsAggregate struct {
	TotalOrders           int                   `json:"total_orders"`
	CompletedOrders       int                   `json:"completed_orders"`
	PendingOrders         int                   `json:"pending_orders"`
	OrdersAtRisk          int                   `json:"orders_at_risk"`
	AverageProcessingTime float64               `json:"average_processing_time"`
	ByStatus              []StatusCountResponse `json:"by_status"`
	ByUser                []UserCountResponse   `json:"by_user"`
	ByDate                []DateCountResponse   `json:"by_date"`
}

// MetricsResponse estado del tablero. Metrics es nil en la búsqueda por pedido puntual.
type MetricsResponse struct {
	Filters MetricsFilters    `json:"filters"`
	Metrics *MetricsAggregate `json:"metrics"`
	Orders  []OrderResponse   `json:"orders"`
	Page    PageResponse      `json:"page"`
	Loading bool              `json:"loading"`
	Notice  string            `json:"notice,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// StatusShare participación porcentual de un estado.
type StatusShare struct {
	Status  string          `json:"status"`
	Label   string          `json:"label"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}

// DashboardSummary indicadores derivados de los agregados (porcentajes con dos decimales).
type DashboardSummary struct {
	TotalOrders       int             `json:"total_orders"`
	CompletionRate    decimal.Decimal `json:"completion_rate"`
	PendingRate       decimal.Decimal `json:"pending_rate"`
	AtRiskRate        decimal.Decimal `json:"at_risk_rate"`
	AvgProcessingTime decimal.Decimal `json:"avg_processing_hours"`
	StatusShares      []StatusShare   `json:"status_shares"`
	PeriodLabel       string          `json:"period_label"` // ej: "Marzo 2025"
}

// ExportFile archivo binario devuelto por /metricas/export.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
