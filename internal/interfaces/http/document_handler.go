package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/usecase"
)

// DocumentHandler análisis de remitos en PDF.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Analyze godoc
// @Summary      Analizar remitos PDF
// @Description  Los archivos se envían de a uno y en orden; el lote se corta en el primer error
// @Description  y la respuesta incluye lo procesado hasta ahí.
// @Tags         pdf
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file    true   "PDF (máx. 10MB cada uno)"
// @Param        notes  formData  string  false  "Notas para el análisis"
// @Success      200    {object}  dto.AnalyzeResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      422    {object}  dto.AnalyzeResponse
// @Router       /api/pdf/analyze [post]
func (h *DocumentHandler) Analyze(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "Seleccioná al menos un archivo PDF"})
	}
	files := make([]dto.UploadedFile, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		f, err := readUpload(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
		}
		files = append(files, f)
	}
	notes := ""
	if v := form.Value["notes"]; len(v) > 0 {
		notes = v[0]
	}

	out, err := h.uc.Analyze(c.UserContext(), files, notes)
	if err != nil {
		if out != nil {
			return c.Status(mapError(err).status).JSON(out)
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Descargar productos analizados
// @Tags         pdf
// @Accept       json
// @Produce      application/pdf
// @Produce      application/json
// @Param        format  query  string             false  "pdf (default), xlsx o json"
// @Param        body    body   dto.ReportRequest  true   "file (vacío = reporte completo) y productos"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pdf/report [post]
func (h *DocumentHandler) Report(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	f, err := h.uc.Report(c.UserContext(), in, c.Query("format", usecase.ReportPDF))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f, false)
}
