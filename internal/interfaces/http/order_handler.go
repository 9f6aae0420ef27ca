package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/usecase"
)

// OrderHandler alta manual, etiquetas con QR y fotos de bultos.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// CreateManual godoc
// @Summary      Crear pedido manual
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManualOrderRequest  true  "Datos de envío"
// @Success      201   {object}  dto.ManualOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/manual [post]
func (h *OrderHandler) CreateManual(c *fiber.Ctx) error {
	var in dto.ManualOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateManual(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Label godoc
// @Summary      Etiqueta imprimible con el QR del pedido
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/label [get]
func (h *OrderHandler) Label(c *fiber.Ctx) error {
	f, err := h.uc.Label(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f, true)
}

// LabelFromForm godoc
// @Summary      Etiqueta con QR a partir del formulario del generador
// @Tags         orders
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.OrderLabel  true  "orderId, customer y products obligatorios"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders/labels [post]
func (h *OrderHandler) LabelFromForm(c *fiber.Ctx) error {
	var in dto.OrderLabel
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	f, err := h.uc.LabelFromForm(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f, true)
}

// UploadImage godoc
// @Summary      Subir foto de bulto
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen (máx. 10MB)"
// @Success      201   {object}  dto.ImageUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/volume/upload [post]
func (h *OrderHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "falta el archivo"})
	}
	file, err := readUpload(fh)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	out, err := h.uc.UploadImage(c.UserContext(), file)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Image godoc
// @Summary      Imagen protegida de la API remota
// @Tags         images
// @Produce      image/jpeg
// @Produce      image/png
// @Param        path  path  string  true  "Ruta remota, ej: api/volume/images/x.jpg"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/images/{path} [get]
func (h *OrderHandler) Image(c *fiber.Ctx) error {
	f, err := h.uc.Image(c.UserContext(), c.Params("*"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return sendFile(c, f, true)
}
