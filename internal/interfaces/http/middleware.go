package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/policy"
	"github.com/deporar/sdt-pedidos/internal/application/session"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	"github.com/deporar/sdt-pedidos/pkg/logger"
	"github.com/deporar/sdt-pedidos/pkg/reqid"
)

// Locals keys en Fiber.
const (
	LocalSession = "session"
	LocalLogger  = "logger"
)

// sessionReader lo que los middlewares necesitan del dueño de la sesión.
// Lo implementa *session.Manager.
type sessionReader interface {
	Current() (*entity.Session, error)
	Redirect() (string, bool)
}

// RequestID toma X-Request-ID del cliente o genera uno, lo devuelve en la respuesta y lo
// deja en el contexto para que viaje a la API remota.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(reqid.Header)
		if id == "" {
			id = reqid.FromContext(c.UserContext())
		}
		c.Set(reqid.Header, id)
		c.SetUserContext(reqid.WithID(c.UserContext(), id))
		return c.Next()
	}
}

// RequestLogger registra cada petición con zerolog. Va después de RequestID.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		l := log.WithField("request_id", reqid.FromContext(c.UserContext()))
		c.Locals(LocalLogger, l)

		err := c.Next()
		if err != nil {
			// el ErrorHandler de Fiber escribe la respuesta; acá solo se registra el código final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return nil
	}
}

func logFromCtx(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(LocalLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}

// RequireSession exige una sesión activa y la deja en Locals. Sin sesión responde 401
// NO_SESSION; si la última terminó por token vencido, 401 SESSION_EXPIRED con redirect.
func RequireSession(sessions sessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := sessions.Current()
		if err != nil {
			if _, expired := sessions.Redirect(); expired || errors.Is(err, domain.ErrAuthExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code: "SESSION_EXPIRED", Message: MsgSessionExpired, Redirect: session.LoginPath,
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "NO_SESSION", Message: "Iniciá sesión para continuar", Redirect: session.LoginPath,
			})
		}
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// RequireRole restringe la ruta a los roles indicados (comparación sin mayúsculas ni acentos).
// Debe usarse después de RequireSession.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[policy.FoldRole(r)] = true
	}
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if s == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "Iniciá sesión para continuar"})
		}
		if s.Role.Name == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "La sesión no tiene rol asignado"})
		}
		if !allowed[policy.FoldRole(s.Role.Name)] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "No tenés permisos para esta sección"})
		}
		return c.Next()
	}
}

// GetSession sesión cargada por RequireSession; nil fuera de rutas protegidas.
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}
