package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/deporar/sdt-pedidos/internal/application/auth"
	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/session"
	"github.com/deporar/sdt-pedidos/internal/application/usecase"
	"github.com/deporar/sdt-pedidos/internal/domain"
)

// MsgSessionExpired mensaje al volver al login por token vencido.
const MsgSessionExpired = "Tu sesión expiró. Iniciá sesión nuevamente"

// errorMapping código HTTP y código de error del sobre para un error de la aplicación.
type errorMapping struct {
	status int
	code   string
}

var sentinelMappings = []struct {
	err error
	m   errorMapping
}{
	{domain.ErrAuthExpired, errorMapping{fiber.StatusUnauthorized, "SESSION_EXPIRED"}},
	{domain.ErrNoSession, errorMapping{fiber.StatusUnauthorized, "NO_SESSION"}},
	{domain.ErrStaleResponse, errorMapping{fiber.StatusConflict, "STALE"}},
	{domain.ErrSubmitInFlight, errorMapping{fiber.StatusConflict, "IN_FLIGHT"}},
	{domain.ErrAlreadyCompleted, errorMapping{fiber.StatusConflict, "ALREADY_COMPLETED"}},
	{domain.ErrNoOrder, errorMapping{fiber.StatusConflict, "NO_ORDER"}},
	{domain.ErrNoStatusSelected, errorMapping{fiber.StatusBadRequest, "NO_STATUS_SELECTED"}},
	{domain.ErrStatusNotAllowed, errorMapping{fiber.StatusForbidden, "STATUS_NOT_ALLOWED"}},
	{domain.ErrInvalidStatus, errorMapping{fiber.StatusBadRequest, "INVALID_STATUS"}},
	{domain.ErrScannerUnavailable, errorMapping{fiber.StatusServiceUnavailable, "SCANNER_UNAVAILABLE"}},
	{domain.ErrInvalidInput, errorMapping{fiber.StatusBadRequest, "VALIDATION"}},
	{domain.ErrNotFound, errorMapping{fiber.StatusNotFound, "NOT_FOUND"}},
	{domain.ErrForbidden, errorMapping{fiber.StatusForbidden, "FORBIDDEN"}},
	{domain.ErrUnauthorized, errorMapping{fiber.StatusUnauthorized, "UNAUTHORIZED"}},
	{domain.ErrValidation, errorMapping{fiber.StatusUnprocessableEntity, "REMOTE_REJECTED"}},
	{domain.ErrInvalidLoginResponse, errorMapping{fiber.StatusBadGateway, "INVALID_LOGIN_RESPONSE"}},
	{domain.ErrUnavailable, errorMapping{fiber.StatusBadGateway, "REMOTE_UNAVAILABLE"}},
}

func mapError(err error) errorMapping {
	var le *auth.LoginError
	if errors.As(err, &le) && !errors.Is(err, domain.ErrAuthExpired) {
		return errorMapping{fiber.StatusUnauthorized, "INVALID_CREDENTIALS"}
	}
	for _, s := range sentinelMappings {
		if errors.Is(err, s.err) {
			return s.m
		}
	}
	return errorMapping{fiber.StatusInternalServerError, "INTERNAL"}
}

// publicText mensaje mostrable: el de la API si lo hay; si no, el del sentinel. En errores de
// validación local se muestra el detalle que sigue al sentinel.
func publicText(err error) string {
	fallback := err.Error()
	for _, s := range sentinelMappings {
		if !errors.Is(err, s.err) {
			continue
		}
		fallback = s.err.Error()
		if s.err == domain.ErrInvalidInput {
			prefix := domain.ErrInvalidInput.Error() + ": "
			if i := strings.Index(err.Error(), prefix); i >= 0 {
				fallback = err.Error()[i+len(prefix):]
			}
		}
		break
	}
	return domain.UserMessage(err, fallback)
}

// respondError escribe el sobre de error. Una sesión vencida siempre lleva a /login.
func respondError(c *fiber.Ctx, err error) error {
	m := mapError(err)
	out := dto.ErrorResponse{Code: m.code, Message: publicText(err)}
	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		out.Fields = ve.Fields
	}
	if errors.Is(err, domain.ErrAuthExpired) {
		out.Message = MsgSessionExpired
		out.Redirect = session.LoginPath
	}
	if m.status >= fiber.StatusInternalServerError {
		logFromCtx(c).Error().Err(err).Str("code", m.code).Msg("error en la petición")
	}
	return c.Status(m.status).JSON(out)
}

// respondView respuestas de la pantalla de escaneo: siempre devuelven la vista, con el
// código HTTP del error si lo hubo.
func respondView(c *fiber.Ctx, v dto.ScanViewResponse, err error) error {
	if err == nil {
		return c.JSON(v)
	}
	m := mapError(err)
	v.Code = m.code
	if errors.Is(err, domain.ErrAuthExpired) {
		v.Redirect = session.LoginPath
		v.Error = ""
	} else if v.Error == "" {
		v.Error = publicText(err)
	}
	return c.Status(m.status).JSON(v)
}
