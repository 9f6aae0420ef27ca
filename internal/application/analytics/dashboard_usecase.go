// Package analytics deriva indicadores del tablero a partir de los agregados de /metricas.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/calendar"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// MetricsSource último agregado conocido del tablero.
type MetricsSource interface {
	Latest() *entity.Metrics
}

// DashboardUseCase resumen porcentual de las métricas vigentes.
type DashboardUseCase struct {
	source MetricsSource
	loc    *time.Location
	now    func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc es la zona de los filtros de fecha.
func NewDashboardUseCase(source MetricsSource, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{source: source, loc: loc, now: time.Now}
}

// GetSummary arma el resumen de lo último consultado. Sin agregados (búsqueda por pedido
// o tablero sin cargar) devuelve ErrNotFound.
func (uc *DashboardUseCase) GetSummary(_ context.Context, filters dto.MetricsFilters) (*dto.DashboardSummary, error) {
	m := uc.source.Latest()
	if m == nil {
		return nil, fmt.Errorf("resumen: %w", domain.ErrNotFound)
	}
	out := Summarize(m)
	day := filters.StartDate
	if day.IsZero() {
		day = calendar.Today(uc.now(), uc.loc)
	}
	out.PeriodLabel = monthLabel(day)
	return &out, nil
}

// Summarize calcula tasas y participación por estado con dos decimales. Con total cero
// todas las tasas valen cero.
func Summarize(m *entity.Metrics) dto.DashboardSummary {
	total := decimal.NewFromInt(int64(m.TotalOrders))
	out := dto.DashboardSummary{
		TotalOrders:       m.TotalOrders,
		CompletionRate:    percent(m.CompletedOrders, total),
		PendingRate:       percent(m.PendingOrders, total),
		AtRiskRate:        percent(m.OrdersAtRisk, total),
		AvgProcessingTime: decimal.NewFromFloat(m.AverageProcessingTime).Round(2),
		StatusShares:      make([]dto.StatusShare, 0, len(m.ByStatus)),
	}

	// La participación se calcula sobre la suma por estado: la API puede no incluir todos.
	sum := 0
	for _, c := range m.ByStatus {
		sum += c.Count
	}
	base := decimal.NewFromInt(int64(sum))
	for _, c := range m.ByStatus {
		out.StatusShares = append(out.StatusShares, dto.StatusShare{
			Status:  string(c.Status),
			Label:   c.Status.Label(),
			Count:   c.Count,
			Percent: percent(c.Count, base),
		})
	}
	sort.SliceStable(out.StatusShares, func(i, j int) bool {
		return out.StatusShares[i].Count > out.StatusShares[j].Count
	})
	return out
}

func percent(n int, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(n)).Mul(hundred).Div(total).Round(2)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(d calendar.Day) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[d.Month-1], d.Year)
}
