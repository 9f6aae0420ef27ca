package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deporar/sdt-pedidos/internal/application/analytics"
	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/metrics"
)

// MetricsHandler tablero de métricas (solo ADMIN).
type MetricsHandler struct {
	state     *metrics.State
	dashboard *analytics.DashboardUseCase
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(state *metrics.State, dashboard *analytics.DashboardUseCase) *MetricsHandler {
	return &MetricsHandler{state: state, dashboard: dashboard}
}

// Get godoc
// @Summary      Métricas con los filtros y la página actuales
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  dto.MetricsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/metrics [get]
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	return h.respond(c)(h.state.Refresh(c.UserContext()))
}

// SetFilters godoc
// @Summary      Aplicar filtros (vuelve a la página 1)
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MetricsFilters  true  "fecha_inicio, fecha_fin (yyyy-MM-dd), responsable, pedido_id, estado, origen, time_range"
// @Success      200   {object}  dto.MetricsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/metrics/filters [put]
func (h *MetricsHandler) SetFilters(c *fiber.Ctx) error {
	var in dto.MetricsFilters
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return h.respond(c)(h.state.SetFilters(c.UserContext(), in))
}

// SetPage godoc
// @Summary      Cambiar de página conservando filtros
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetPageRequest  true  "page (base 1)"
// @Success      200   {object}  dto.MetricsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/metrics/page [put]
func (h *MetricsHandler) SetPage(c *fiber.Ctx) error {
	var in dto.SetPageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return h.respond(c)(h.state.SetPage(c.UserContext(), in.Page))
}

// Reset godoc
// @Summary      Limpiar filtros
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  dto.MetricsResponse
// @Router       /api/metrics/reset [post]
func (h *MetricsHandler) Reset(c *fiber.Ctx) error {
	return h.respond(c)(h.state.Reset(c.UserContext()))
}

// Export godoc
// @Summary      Descargar métricas
// @Tags         metrics
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format  query  string  false  "xlsx (default) o csv"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/metrics/export [get]
func (h *MetricsHandler) Export(c *fiber.Ctx) error {
	f, err := h.state.Export(c.UserContext(), c.Query("format", "xlsx"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f, false)
}

// Summary godoc
// @Summary      Resumen porcentual del período consultado
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/metrics/summary [get]
func (h *MetricsHandler) Summary(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.UserContext(), h.state.Snapshot().Filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// respond una respuesta descartada por otra consulta más reciente se informa con 409 STALE.
func (h *MetricsHandler) respond(c *fiber.Ctx) func(dto.MetricsResponse, error) error {
	return func(out dto.MetricsResponse, err error) error {
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}
