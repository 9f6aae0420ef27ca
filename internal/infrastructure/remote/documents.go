package remote

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strings"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

var (
	_ ports.DocumentAnalyzer = (*Client)(nil)
	_ ports.MediaGateway     = (*Client)(nil)
)

// multipartBody arma un formulario con un archivo y campos de texto.
func multipartBody(field string, file dto.UploadedFile, fields map[string]string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, path.Base(file.Name)))
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// AnalyzePDF POST /analyze-pdf con un único archivo. La respuesta tiene que ser un arreglo de renglones.
func (c *Client) AnalyzePDF(ctx context.Context, token string, file dto.UploadedFile, notes string) ([]entity.ProductLine, error) {
	body, ct, err := multipartBody("files", file, map[string]string{"notes": notes})
	if err != nil {
		return nil, fmt.Errorf("armar formulario: %w", err)
	}
	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/analyze-pdf",
		route:       "/analyze-pdf",
		token:       token,
		body:        body,
		contentType: ct,
	})
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(resp.body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &RemoteError{Status: resp.status, Kind: domain.ErrUnavailable, Message: "La respuesta del servidor no es un array válido"}
	}
	var wire []wireProductLine
	if err := decode(trimmed, &wire); err != nil {
		return nil, err
	}
	out := make([]entity.ProductLine, 0, len(wire))
	for _, w := range wire {
		out = append(out, entity.ProductLine{
			Name:         w.Nombre,
			SKU:          string(w.SKU),
			Quantity:     int(w.Cantidad),
			Color:        w.Color,
			Size:         string(w.Talle),
			ColorAndSize: w.ColorYTalle,
		})
	}
	return out, nil
}

type uploadResponse struct {
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
	Path     string `json:"path"`
}

// UploadImage POST /api/volume/upload; devuelve la ruta o URL de la imagen guardada.
func (c *Client) UploadImage(ctx context.Context, token string, file dto.UploadedFile) (string, error) {
	body, ct, err := multipartBody("file", file, nil)
	if err != nil {
		return "", fmt.Errorf("armar formulario: %w", err)
	}
	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/volume/upload",
		route:       "/api/volume/upload",
		token:       token,
		body:        body,
		contentType: ct,
	})
	if err != nil {
		return "", err
	}
	trimmed := bytes.TrimSpace(resp.body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var out uploadResponse
		if err := decode(trimmed, &out); err != nil {
			return "", err
		}
		if u := firstNonEmpty(out.URL, out.ImageURL, out.Path); u != "" {
			return u, nil
		}
	} else if s := strings.Trim(string(trimmed), `"`); s != "" {
		return s, nil
	}
	return "", &RemoteError{Status: resp.status, Kind: domain.ErrUnavailable, Message: "la API no devolvió la URL de la imagen"}
}

// FetchImage descarga una imagen protegida con el token de la sesión.
func (c *Client) FetchImage(ctx context.Context, token, imagePath string) (*dto.ExportFile, error) {
	p := "/" + strings.TrimLeft(strings.TrimSpace(imagePath), "/")
	if strings.Contains(p, "..") || strings.Contains(p, "://") {
		return nil, fmt.Errorf("%w: ruta de imagen", domain.ErrInvalidInput)
	}
	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   p,
		route:  "/images",
		token:  token,
		limit:  maxBinaryBody,
	})
	if err != nil {
		return nil, err
	}
	ct := resp.header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(resp.body)
	}
	return &dto.ExportFile{Filename: path.Base(p), ContentType: ct, Data: resp.body}, nil
}
