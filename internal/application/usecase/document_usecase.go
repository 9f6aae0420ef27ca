package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/application/session"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/calendar"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// MaxUploadSize tope por archivo subido (PDF o foto).
const MaxUploadSize = 10 << 20

// Formatos de descarga del análisis.
const (
	ReportPDF  = "pdf"
	ReportXLSX = "xlsx"
	ReportJSON = "json"
)

// ReportTitle título de los reportes de análisis.
const ReportTitle = "Análisis de Productos"

var reportContentTypes = map[string]string{
	ReportPDF:  "application/pdf",
	ReportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ReportJSON: "application/json",
}

// DocumentUseCase análisis de remitos en PDF y descarga de resultados.
// Cada archivo se envía por separado y con su propio timeout: el análisis remoto puede
// tardar bastante más que una consulta común.
type DocumentUseCase struct {
	analyzer  ports.DocumentAnalyzer
	renderers map[string]ports.ProductReportRenderer
	sessions  session.Provider
	timeout   time.Duration
	loc       *time.Location
	now       func() time.Time
}

// NewDocumentUseCase construye el caso de uso. renderers indexa por formato (pdf, xlsx).
func NewDocumentUseCase(analyzer ports.DocumentAnalyzer, renderers map[string]ports.ProductReportRenderer, sessions session.Provider, timeout time.Duration, loc *time.Location) *DocumentUseCase {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DocumentUseCase{analyzer: analyzer, renderers: renderers, sessions: sessions, timeout: timeout, loc: loc, now: time.Now}
}

// ValidatePDF rechaza lo que no es PDF o supera 10MB, con el mensaje que ve el usuario.
func ValidatePDF(f dto.UploadedFile) error {
	isPDF := f.ContentType == "application/pdf" ||
		(strings.EqualFold(filepath.Ext(f.Name), ".pdf") && bytes.HasPrefix(f.Data, []byte("%PDF")))
	if !isPDF {
		return fmt.Errorf("%w: El archivo %s no es un PDF válido", domain.ErrInvalidInput, f.Name)
	}
	if len(f.Data) > MaxUploadSize {
		return fmt.Errorf("%w: El archivo %s es demasiado grande. El tamaño máximo es 10MB", domain.ErrInvalidInput, f.Name)
	}
	return nil
}

// Analyze procesa los archivos en orden y corta en el primer error. La respuesta incluye
// lo ya procesado; Error describe el archivo que falló.
func (uc *DocumentUseCase) Analyze(ctx context.Context, files []dto.UploadedFile, notes string) (*dto.AnalyzeResponse, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no se recibieron archivos", domain.ErrInvalidInput)
	}
	for _, f := range files {
		if err := ValidatePDF(f); err != nil {
			return nil, err
		}
	}
	s, err := uc.sessions.Current()
	if err != nil {
		return nil, err
	}

	out := &dto.AnalyzeResponse{Files: make([]dto.FileAnalysis, 0, len(files)), Total: len(files)}
	for _, f := range files {
		lines, err := uc.analyzeOne(ctx, s.Token, f, notes)
		if err != nil {
			if errors.Is(err, domain.ErrAuthExpired) {
				return nil, expireOnAuth(uc.sessions, s.Token, err, "token rechazado al analizar PDF")
			}
			msg := fmt.Sprintf("Error al analizar %s: %s", f.Name, domain.UserMessage(err, "Error desconocido"))
			out.Files = append(out.Files, dto.FileAnalysis{File: f.Name, Productos: []dto.ProductLineDTO{}, Error: msg})
			out.Error = msg
			return out, fmt.Errorf("analizar %s: %w", f.Name, err)
		}
		out.Files = append(out.Files, dto.FileAnalysis{File: f.Name, Productos: toProductLineDTOs(lines)})
		out.Processed++
	}
	return out, nil
}

func (uc *DocumentUseCase) analyzeOne(ctx context.Context, token string, f dto.UploadedFile, notes string) ([]entity.ProductLine, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.analyzer.AnalyzePDF(ctx, token, f, notes)
}

// Report genera la descarga de un análisis. Sin nombre de archivo es el reporte completo.
func (uc *DocumentUseCase) Report(ctx context.Context, in dto.ReportRequest, format string) (*dto.ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	ct, ok := reportContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
	source := strings.TrimSpace(in.File)
	base := source
	if base == "" {
		base = "completo"
	}
	filename := fmt.Sprintf("analisis-%s-%s.%s", base, calendar.Today(uc.now(), uc.loc), format)

	var (
		data []byte
		err  error
	)
	if format == ReportJSON {
		productos := in.Productos
		if productos == nil {
			productos = []dto.ProductLineDTO{}
		}
		data, err = json.MarshalIndent(productos, "", "  ")
	} else {
		r, found := uc.renderers[format]
		if !found {
			return nil, fmt.Errorf("%w: formato %q no disponible", domain.ErrInvalidInput, format)
		}
		if source == "" {
			source = "Todos los archivos"
		}
		data, err = r.RenderProductReport(ctx, ReportTitle, source, fromProductLineDTOs(in.Productos))
	}
	if err != nil {
		return nil, fmt.Errorf("generar reporte %s: %w", format, err)
	}
	return &dto.ExportFile{Filename: filename, ContentType: ct, Data: data}, nil
}

func toProductLineDTOs(lines []entity.ProductLine) []dto.ProductLineDTO {
	out := make([]dto.ProductLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ProductLineDTO{
			Nombre:      l.Name,
			SKU:         l.SKU,
			Cantidad:    l.Quantity,
			Color:       l.Color,
			Talle:       l.Size,
			ColorYTalle: l.ColorAndSize,
		})
	}
	return out
}

func fromProductLineDTOs(in []dto.ProductLineDTO) []entity.ProductLine {
	out := make([]entity.ProductLine, 0, len(in))
	for _, l := range in {
		out = append(out, entity.ProductLine{
			Name:         l.Nombre,
			SKU:          l.SKU,
			Quantity:     l.Cantidad,
			Color:        l.Color,
			Size:         l.Talle,
			ColorAndSize: l.ColorYTalle,
		})
	}
	return out
}
