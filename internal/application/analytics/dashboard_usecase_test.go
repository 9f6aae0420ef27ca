package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deporar/sdt-pedidos/internal/application/analytics"
	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/calendar"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

type staticSource struct{ m *entity.Metrics }

func (s staticSource) Latest() *entity.Metrics { return s.m }

func TestSummarize(t *testing.T) {
	m := &entity.Metrics{
		TotalOrders:           3,
		CompletedOrders:       1,
		PendingOrders:         2,
		OrdersAtRisk:          0,
		AverageProcessingTime: 4.256,
		ByStatus: []entity.StatusCount{
			{Status: entity.StatusRecibido, Count: 1},
			{Status: entity.StatusEmbalado, Count: 2},
		},
	}
	s := analytics.Summarize(m)
	assert.Equal(t, "33.33", s.CompletionRate.String())
	assert.Equal(t, "66.67", s.PendingRate.String())
	assert.Equal(t, "0", s.AtRiskRate.String())
	assert.Equal(t, "4.26", s.AvgProcessingTime.String())
	require.Len(t, s.StatusShares, 2)
	assert.Equal(t, "EMBALADO", s.StatusShares[0].Status)
	assert.Equal(t, "66.67", s.StatusShares[0].Percent.String())
}

func TestSummarize_TotalCero(t *testing.T) {
	s := analytics.Summarize(&entity.Metrics{})
	assert.True(t, s.CompletionRate.IsZero())
	assert.Empty(t, s.StatusShares)
}

func TestGetSummary(t *testing.T) {
	uc := analytics.NewDashboardUseCase(staticSource{m: &entity.Metrics{TotalOrders: 1}}, time.UTC)
	s, err := uc.GetSummary(context.Background(), dto.MetricsFilters{StartDate: calendar.New(2025, time.March, 4)})
	require.NoError(t, err)
	assert.Equal(t, "Marzo 2025", s.PeriodLabel)

	_, err = analytics.NewDashboardUseCase(staticSource{}, nil).GetSummary(context.Background(), dto.MetricsFilters{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
