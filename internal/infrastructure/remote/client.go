// Package remote implementa los puertos de salida contra la API REST de pedidos, métricas y usuarios.
// Usa net/http de la librería estándar; cada llamada lleva timeout, X-Request-ID y queda observada.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/pkg/logger"
	"github.com/deporar/sdt-pedidos/pkg/reqid"
)

const (
	// Límite de lectura para respuestas JSON.
	maxJSONBody = 4 << 20
	// Exportaciones e imágenes pueden ser más grandes.
	maxBinaryBody = 64 << 20
)

// Observer recibe una observación por llamada (Prometheus en producción).
type Observer interface {
	ObserveRemote(endpoint, method string, code int, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveRemote(string, string, int, time.Duration) {}

// Client cliente HTTP de la API remota.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	loc        *time.Location
	log        *logger.Logger
	obs        Observer
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests con httptest).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver registra cada llamada en el observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.obs = o
		}
	}
}

// WithLocation zona horaria para fechas sin offset que envía la API.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// New construye el cliente. timeout aplica a cada llamada individual.
func New(baseURL string, timeout time.Duration, log *logger.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// El timeout real lo impone el contexto de cada llamada; este es solo un tope de red.
		httpClient: &http.Client{Timeout: timeout + 5*time.Second},
		timeout:    timeout,
		loc:        time.UTC,
		log:        log,
		obs:        nopObserver{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// RemoteError error HTTP de la API remota ya clasificado. Kind es uno de los sentinels de domain.
type RemoteError struct {
	Status  int
	Code    string
	Message string
	Kind    error
	cause   error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString("api remota")
	if e.Status > 0 {
		fmt.Fprintf(&b, " HTTP %d", e.Status)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, " (%v)", e.cause)
	}
	return b.String()
}

// Unwrap permite errors.Is contra el sentinel y contra la causa (ej: context.DeadlineExceeded).
func (e *RemoteError) Unwrap() []error {
	out := []error{e.Kind}
	if e.cause != nil {
		out = append(out, e.cause)
	}
	return out
}

// PublicMessage mensaje enviado por la API (error, message, detail o description).
func (e *RemoteError) PublicMessage() string { return e.Message }

var _ domain.PublicError = (*RemoteError)(nil)

type request struct {
	method      string
	path        string // ya con ids escapados
	route       string // plantilla para métricas, ej: /orders/{id}/status
	token       string
	query       url.Values
	body        io.Reader
	contentType string
	limit       int64
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializar request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// do ejecuta la llamada y devuelve la respuesta 2xx; cualquier otra cosa vuelve como *RemoteError.
func (c *Client) do(ctx context.Context, r request) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, &RemoteError{Kind: domain.ErrUnavailable, Message: "request inválido", cause: err}
	}
	id := reqid.FromContext(ctx)
	req.Header.Set(reqid.Header, id)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.obs.ObserveRemote(r.route, r.method, 0, time.Since(start))
		c.log.Warn().Err(err).Str("request_id", id).Str("endpoint", r.route).Msg("api remota inaccesible")
		msg := "no se pudo contactar la API"
		if ctx.Err() != nil {
			msg = "la API tardó demasiado en responder"
		}
		return nil, &RemoteError{Kind: domain.ErrUnavailable, Message: msg, cause: err}
	}
	defer resp.Body.Close()

	limit := r.limit
	if limit <= 0 {
		limit = maxJSONBody
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	c.obs.ObserveRemote(r.route, r.method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &RemoteError{Status: resp.StatusCode, Kind: domain.ErrUnavailable, Message: "respuesta incompleta", cause: err}
	}

	ev := c.log.Debug()
	if resp.StatusCode >= 400 {
		ev = c.log.Warn()
	}
	ev.Str("request_id", id).Str("method", r.method).Str("endpoint", r.route).
		Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("api remota")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(resp.StatusCode, body, r.token != "")
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

// decode interpreta un cuerpo 2xx; un cuerpo que no corresponde es error de servicio.
func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &RemoteError{Kind: domain.ErrUnavailable, Message: "respuesta con formato inesperado", cause: err}
	}
	return nil
}

func escape(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}
