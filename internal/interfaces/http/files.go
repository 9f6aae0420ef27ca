package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/usecase"
)

// sendFile responde una descarga con su nombre sugerido.
func sendFile(c *fiber.Ctx, f *dto.ExportFile, inline bool) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, f.Filename))
	return c.Send(f.Data)
}

// readUpload lee un archivo del multipart en memoria. Lee un byte de más para que el caso de
// uso detecte los archivos que superan el tope.
func readUpload(fh *multipart.FileHeader) (dto.UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return dto.UploadedFile{}, fmt.Errorf("abrir %s: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxUploadSize+1))
	if err != nil {
		return dto.UploadedFile{}, fmt.Errorf("leer %s: %w", fh.Filename, err)
	}
	return dto.UploadedFile{Name: fh.Filename, ContentType: fh.Header.Get(fiber.HeaderContentType), Data: data}, nil
}
