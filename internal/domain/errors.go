package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrValidation    = errors.New("la API rechazó la operación")
	ErrUnavailable   = errors.New("API remota no disponible")
	ErrAuthExpired   = errors.New("sesión expirada o token inválido")
	ErrNoSession     = errors.New("no hay sesión activa")
	ErrInvalidStatus = errors.New("estado de pedido desconocido")

	ErrInvalidLoginResponse = errors.New("respuesta de login sin token o sin usuario")

	// Flujo de actualización de estado.
	ErrNoOrder            = errors.New("no hay pedido cargado")
	ErrNoStatusSelected   = errors.New("seleccioná un estado")
	ErrStatusNotAllowed   = errors.New("tu rol no tiene permisos para ese estado")
	ErrSubmitInFlight     = errors.New("ya hay una actualización en curso")
	ErrAlreadyCompleted   = errors.New("el pedido ya fue actualizado para este escaneo")
	ErrStaleResponse      = errors.New("respuesta descartada por un escaneo más reciente")
	ErrScannerUnavailable = errors.New("escáner no disponible")
)

// PublicError error que trae un mensaje apto para mostrarle al usuario (ej: el de la API remota).
type PublicError interface {
	error
	PublicMessage() string
}

// UserMessage devuelve el mensaje público de err o fallback si no hay ninguno.
func UserMessage(err error, fallback string) string {
	var pe PublicError
	if errors.As(err, &pe) {
		if m := pe.PublicMessage(); m != "" {
			return m
		}
	}
	return fallback
}
