package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	_ "github.com/deporar/sdt-pedidos/docs"
	"github.com/deporar/sdt-pedidos/internal/application/analytics"
	"github.com/deporar/sdt-pedidos/internal/application/auth"
	"github.com/deporar/sdt-pedidos/internal/application/metrics"
	"github.com/deporar/sdt-pedidos/internal/application/policy"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/application/scan"
	"github.com/deporar/sdt-pedidos/internal/application/session"
	"github.com/deporar/sdt-pedidos/internal/application/usecase"
	"github.com/deporar/sdt-pedidos/internal/infrastructure/events"
	infrapdf "github.com/deporar/sdt-pedidos/internal/infrastructure/pdf"
	"github.com/deporar/sdt-pedidos/internal/infrastructure/remote"
	"github.com/deporar/sdt-pedidos/internal/infrastructure/sessionfile"
	"github.com/deporar/sdt-pedidos/internal/infrastructure/telemetry"
	"github.com/deporar/sdt-pedidos/internal/infrastructure/xlsx"
	httpRouter "github.com/deporar/sdt-pedidos/internal/interfaces/http"
	"github.com/deporar/sdt-pedidos/pkg/config"
	"github.com/deporar/sdt-pedidos/pkg/logger"
)

// @title        SDT Pedidos - estación de escaneo
// @version      1.0
// @description  API local de la estación: sesión, escaneo de QR, cambio de estado de pedidos y métricas.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Station: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("remote", cfg.Remote.BaseURL).
		Msg("iniciando estación")

	loc, err := cfg.Metrics.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	table, err := policy.Load(cfg.Policy.File, cfg.Policy.Active)
	if err != nil {
		log.Fatal().Err(err).Msg("política de roles")
	}
	log.Info().Str("policy", table.Name()).Strs("roles", table.Roles()).Msg("política de roles cargada")

	reg := telemetry.New()
	client := remote.New(cfg.Remote.BaseURL, cfg.Remote.Timeout(), log.Component("remote"),
		remote.WithObserver(reg),
		remote.WithLocation(loc),
	)

	store := sessionfile.New(cfg.Session.FilePath, cfg.Session.Secret)
	sessions := session.NewManager(client, store, log.Component("session"), session.WithTimeout(cfg.Remote.Timeout()))
	if err := sessions.Restore(); err != nil {
		log.Warn().Err(err).Msg("no se pudo restaurar la sesión guardada")
	}

	// Eventos: RabbitMQ si está configurado; si no, se descartan.
	var publisher ports.EventPublisher = events.Nop{}
	if cfg.Events.Enabled() {
		p, err := events.Dial(cfg.Events.AMQPURL, cfg.Events.Exchange, log.Component("events"))
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, los eventos de estado no se publicarán")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	guard := scan.NewGuard(scan.NoDevice{}, log.Component("scanner"))
	flow := scan.NewFlow(sessions, table, client, log.Component("scan"),
		scan.WithEvents(publisher),
		scan.WithGuard(guard),
		scan.WithRecorder(reg),
		scan.WithTimeout(cfg.Remote.Timeout()),
	)

	metricsState := metrics.NewState(sessions, client, client, log.Component("metrics"),
		metrics.WithPageSize(cfg.Metrics.PageSize),
		metrics.WithTimeout(cfg.Remote.Timeout()),
	)
	dashboardUC := analytics.NewDashboardUseCase(metricsState, loc)

	pdfGenerator := infrapdf.NewGenerator(loc)
	renderers := map[string]ports.ProductReportRenderer{
		usecase.ReportPDF:  pdfGenerator,
		usecase.ReportXLSX: xlsx.NewRenderer(),
	}

	authUC := auth.NewAuthUseCase(sessions)
	userUC := usecase.NewUserUseCase(client, sessions, cfg.Remote.Timeout())
	orderUC := usecase.NewOrderUseCase(client, client, pdfGenerator, sessions, cfg.Remote.Timeout(), loc)
	// El análisis de PDF es lento del lado remoto: un minuto por archivo.
	documentUC := usecase.NewDocumentUseCase(client, renderers, sessions, time.Minute, loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 90,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    50 << 20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	httpRouter.Middlewares(app, log.Component("http"), strings.Join(cfg.HTTP.CORSOriginList(), ","))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.HTTP.SwaggerFile,
		Path:     "docs",
		Title:    "SDT Pedidos",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:    sessions,
		AuthUC:      authUC,
		Flow:        flow,
		Guard:       guard,
		Metrics:     metricsState,
		DashboardUC: dashboardUC,
		UserUC:      userUC,
		OrderUC:     orderUC,
		DocumentUC:  documentUC,
		Telemetry:   reg,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if err := guard.Release(); err != nil {
		log.Warn().Err(err).Msg("liberar lector")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("estación detenida")
}
