package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

var _ ports.MetricsGateway = (*Client)(nil)

// Formatos de exportación aceptados por /metricas/export.
const (
	ExportExcel = "excel"
	ExportCSV   = "csv"
)

// filterQuery arma los parámetros del tablero; los vacíos no se envían.
func filterQuery(f dto.MetricsFilters) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	set("fecha_inicio", f.StartDate.String())
	set("fecha_fin", f.EndDate.String())
	set("responsable", f.Responsible)
	set("pedido_id", f.OrderID)
	set("estado", f.Status)
	set("origen", f.Origin)
	set("time_range", f.TimeRange)
	return q
}

// Metrics GET /metricas. La página llega base 1 y la API la espera base 0.
func (c *Client) Metrics(ctx context.Context, token string, in dto.MetricsQuery) (*entity.Metrics, error) {
	q := filterQuery(in.Filters)
	if in.Page > 0 {
		q.Set("page", strconv.Itoa(in.Page-1))
	}
	if in.Size > 0 {
		q.Set("size", strconv.Itoa(in.Size))
	}
	resp, err := c.do(ctx, request{method: http.MethodGet, path: "/metricas", route: "/metricas", token: token, query: q})
	if err != nil {
		return nil, err
	}
	var w wireMetrics
	if err := decode(resp.body, &w); err != nil {
		return nil, err
	}
	m := c.toMetrics(w)
	return &m, nil
}

// Export GET /metricas/export con el mismo filtro más format.
func (c *Client) Export(ctx context.Context, token string, f dto.MetricsFilters, format string) (*dto.ExportFile, error) {
	var filename, contentType string
	switch format {
	case ExportExcel:
		filename = "metricas.xlsx"
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportCSV:
		filename = "metricas.csv"
		contentType = "text/csv"
	default:
		return nil, fmt.Errorf("%w: formato de exportación %q", domain.ErrInvalidInput, format)
	}
	q := filterQuery(f)
	q.Set("format", format)
	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/metricas/export",
		route:  "/metricas/export",
		token:  token,
		query:  q,
		limit:  maxBinaryBody,
	})
	if err != nil {
		return nil, err
	}
	if ct := resp.header.Get("Content-Type"); ct != "" {
		contentType = ct
	}
	return &dto.ExportFile{Filename: filename, ContentType: contentType, Data: resp.body}, nil
}
