package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/deporar/sdt-pedidos/internal/application/analytics"
	"github.com/deporar/sdt-pedidos/internal/application/auth"
	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/metrics"
	"github.com/deporar/sdt-pedidos/internal/application/scan"
	"github.com/deporar/sdt-pedidos/internal/application/usecase"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	"github.com/deporar/sdt-pedidos/internal/infrastructure/telemetry"
	"github.com/deporar/sdt-pedidos/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions    sessionReader
	AuthUC      *auth.AuthUseCase
	Flow        *scan.Flow
	Guard       *scan.Guard
	Metrics     *metrics.State
	DashboardUC *analytics.DashboardUseCase
	UserUC      *usecase.UserUseCase
	OrderUC     *usecase.OrderUseCase
	DocumentUC  *usecase.DocumentUseCase
	Telemetry   *telemetry.Registry
}

// ErrorHandler sobre de error común también para errores de Fiber (ruta inexistente, body grande).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(fe.Code), " ", "_"))
		if code == "" {
			code = "ERROR"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}

// Middlewares comunes: recover, request id, log de peticiones y CORS para la UI.
func Middlewares(app *fiber.App, log *logger.Logger, corsOrigins string) {
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  corsOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: "Content-Disposition, X-Request-ID",
	}))
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Telemetry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Telemetry.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)

	// Rutas con sesión activa
	protected := api.Group("", RequireSession(deps.Sessions))

	scanHandler := NewScanHandler(deps.Flow, deps.Guard)
	protected.Get("/statuses", scanHandler.Statuses)
	protected.Post("/scanner/acquire", scanHandler.Acquire)
	protected.Post("/scanner/release", scanHandler.Release)
	protected.Post("/scan", scanHandler.Load)
	protected.Get("/scan", scanHandler.View)
	protected.Post("/scan/select", scanHandler.Select)
	protected.Post("/scan/submit", scanHandler.Submit)
	protected.Post("/scan/reset", scanHandler.Reset)

	orderHandler := NewOrderHandler(deps.OrderUC)
	protected.Post("/orders/manual", orderHandler.CreateManual)
	protected.Post("/orders/labels", orderHandler.LabelFromForm)
	protected.Get("/orders/:id/label", orderHandler.Label)
	protected.Post("/volume/upload", orderHandler.UploadImage)
	protected.Get("/images/*", orderHandler.Image)

	documentHandler := NewDocumentHandler(deps.DocumentUC)
	protected.Post("/pdf/analyze", documentHandler.Analyze)
	protected.Post("/pdf/report", documentHandler.Report)

	// Solo administradores
	adminOnly := RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin)

	metricsHandler := NewMetricsHandler(deps.Metrics, deps.DashboardUC)
	m := protected.Group("/metrics", adminOnly)
	m.Get("", metricsHandler.Get)
	m.Put("/filters", metricsHandler.SetFilters)
	m.Put("/page", metricsHandler.SetPage)
	m.Post("/reset", metricsHandler.Reset)
	m.Get("/export", metricsHandler.Export)
	m.Get("/summary", metricsHandler.Summary)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", adminOnly)
	users.Get("", userHandler.List)
	users.Post("", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
