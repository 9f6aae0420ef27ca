package remote

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/deporar/sdt-pedidos/internal/domain"
)

// envelope cuerpo de error de la API. Convive el formato de Spring (status, error, message)
// con el de problem+json (title, detail) y el código estructurado (code).
type envelope struct {
	Status      flexInt `json:"status"`
	Code        string  `json:"code"`
	Error       string  `json:"error"`
	Message     string  `json:"message"`
	Detail      string  `json:"detail"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

// Marcadores de token vencido que la API envía hoy en texto libre.
const (
	markerJWTExpired      = "JWT expired"
	markerTokenHasExpired = "The JWT token has expired"
)

var authExpiredCodes = map[string]bool{
	"TOKEN_EXPIRED": true,
	"UNAUTHORIZED":  true,
	"INVALID_TOKEN": true,
}

// classify convierte una respuesta no 2xx en *RemoteError. authenticated indica si la llamada
// llevaba token: solo entonces un 401/403 puede significar sesión vencida.
func classify(status int, body []byte, authenticated bool) *RemoteError {
	var env envelope
	isJSON := json.Unmarshal(body, &env) == nil

	re := &RemoteError{
		Status:  status,
		Code:    strings.ToUpper(strings.TrimSpace(env.Code)),
		Message: firstNonEmpty(env.Error, env.Message, env.Detail, env.Description),
	}

	authStatus := status == http.StatusUnauthorized || status == http.StatusForbidden ||
		int(env.Status) == http.StatusUnauthorized || int(env.Status) == http.StatusForbidden

	switch {
	case authStatus && authenticated && (!isJSON || expiryMarked(env)):
		re.Kind = domain.ErrAuthExpired
	case status == http.StatusUnauthorized:
		re.Kind = domain.ErrUnauthorized
	case status == http.StatusForbidden:
		re.Kind = domain.ErrForbidden
	case status == http.StatusNotFound:
		re.Kind = domain.ErrNotFound
	case status >= 400 && status < 500:
		re.Kind = domain.ErrValidation
	default:
		re.Kind = domain.ErrUnavailable
	}
	if !isJSON && re.Kind != domain.ErrAuthExpired {
		re.Message = ""
	}
	return re
}

func expiryMarked(env envelope) bool {
	if authExpiredCodes[strings.ToUpper(strings.TrimSpace(env.Code))] {
		return true
	}
	if strings.Contains(env.Detail, markerJWTExpired) || strings.Contains(env.Message, markerJWTExpired) ||
		strings.Contains(env.Error, markerJWTExpired) {
		return true
	}
	if strings.TrimSpace(env.Description) == markerTokenHasExpired || strings.TrimSpace(env.Detail) == markerTokenHasExpired {
		return true
	}
	switch strings.TrimSpace(env.Title) {
	case "Forbidden", "Unauthorized":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
