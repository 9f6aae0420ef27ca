package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/scan"
)

// ScanHandler pantalla de escaneo: lector, carga del pedido y cambio de estado.
// Todas las respuestas devuelven la vista completa, también en error.
type ScanHandler struct {
	flow  *scan.Flow
	guard *scan.Guard
}

// NewScanHandler construye el handler.
func NewScanHandler(flow *scan.Flow, guard *scan.Guard) *ScanHandler {
	return &ScanHandler{flow: flow, guard: guard}
}

// Statuses godoc
// @Summary      Estados que el rol de la sesión puede aplicar
// @Tags         scan
// @Produce      json
// @Success      200  {object}  dto.StatusesResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/statuses [get]
func (h *ScanHandler) Statuses(c *fiber.Ctx) error {
	out, err := h.flow.Statuses()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Acquire godoc
// @Summary      Tomar el lector
// @Tags         scanner
// @Produce      json
// @Success      200  {object}  dto.ScannerResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/scanner/acquire [post]
func (h *ScanHandler) Acquire(c *fiber.Ctx) error {
	if err := h.guard.Acquire(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ScannerResponse{Active: h.guard.Active()})
}

// Release godoc
// @Summary      Liberar el lector
// @Tags         scanner
// @Produce      json
// @Success      200  {object}  dto.ScannerResponse
// @Router       /api/scanner/release [post]
func (h *ScanHandler) Release(c *fiber.Ctx) error {
	if err := h.guard.Release(); err != nil {
		logFromCtx(c).Warn().Err(err).Msg("liberar lector")
	}
	return c.JSON(dto.ScannerResponse{Active: h.guard.Active()})
}

// Load godoc
// @Summary      Procesar un código leído o tipeado
// @Description  source=qr interpreta JSON, URL o pares KEY:VALUE; source=manual toma el texto como id.
// @Description  Una lectura aceptada libera el lector.
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "raw, source"
// @Success      200   {object}  dto.ScanViewResponse
// @Failure      401   {object}  dto.ScanViewResponse
// @Failure      404   {object}  dto.ScanViewResponse
// @Failure      409   {object}  dto.ScanViewResponse
// @Router       /api/scan [post]
func (h *ScanHandler) Load(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v, err := h.flow.Load(c.UserContext(), in.Raw, scan.ParseSource(in.Source))
	return respondView(c, v, err)
}

// View godoc
// @Summary      Estado actual de la pantalla de escaneo
// @Tags         scan
// @Produce      json
// @Success      200  {object}  dto.ScanViewResponse
// @Router       /api/scan [get]
func (h *ScanHandler) View(c *fiber.Ctx) error {
	return c.JSON(h.flow.View())
}

// Select godoc
// @Summary      Elegir el estado a aplicar
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectStatusRequest  true  "status"
// @Success      200   {object}  dto.ScanViewResponse
// @Failure      400   {object}  dto.ScanViewResponse
// @Failure      403   {object}  dto.ScanViewResponse
// @Router       /api/scan/select [post]
func (h *ScanHandler) Select(c *fiber.Ctx) error {
	var in dto.SelectStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v, err := h.flow.Select(in.Status)
	return respondView(c, v, err)
}

// Submit godoc
// @Summary      Enviar el cambio de estado
// @Tags         scan
// @Produce      json
// @Success      200  {object}  dto.ScanViewResponse
// @Failure      400  {object}  dto.ScanViewResponse
// @Failure      401  {object}  dto.ScanViewResponse
// @Failure      409  {object}  dto.ScanViewResponse
// @Failure      422  {object}  dto.ScanViewResponse
// @Router       /api/scan/submit [post]
func (h *ScanHandler) Submit(c *fiber.Ctx) error {
	v, err := h.flow.Submit(c.UserContext())
	return respondView(c, v, err)
}

// Reset godoc
// @Summary      Descartar el pedido cargado
// @Tags         scan
// @Produce      json
// @Success      200  {object}  dto.ScanViewResponse
// @Router       /api/scan/reset [post]
func (h *ScanHandler) Reset(c *fiber.Ctx) error {
	return c.JSON(h.flow.Reset())
}
