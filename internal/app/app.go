package app

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"salespulse/internal/config"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/exporter"
	"salespulse/internal/infrastructure"
	customMiddleware "salespulse/internal/middleware"
	"salespulse/internal/services"
	"salespulse/internal/source"
	handlers "salespulse/internal/transport/http"
)

var (
	// BuildTime is set at compile time
	BuildTime = time.Now().Format(time.RFC3339)
	// BuildID is a unique identifier for this build
	BuildID = generateBuildID()
)

func generateBuildID() string {
	h := sha256.New()
	h.Write([]byte(config.AppVersion))
	h.Write([]byte(time.Now().Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Reports       *services.ReportService
	HealthService *services.HealthService
	ErrorHandler  *apierrors.ErrorHandler
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.PipelineMetrics

	wg sync.WaitGroup
}

// Pipeline bundles what the CLI needs to build a dashboard without serving it
type Pipeline struct {
	Reports       *services.ReportService
	OTelProviders *infrastructure.OTelProviders
}

// NewPipeline creates the configured source and a report service reading
// from it, with telemetry initialized from cfg
func NewPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	providers, metrics, err := initTelemetry(cfg, logger)
	if err != nil {
		return nil, err
	}

	src, err := source.New(ctx, cfg.Source, logger)
	if err != nil {
		providers.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create data source: %w", err)
	}

	return &Pipeline{
		Reports:       services.NewReportService(src, cfg, providers.Tracer, metrics, logger),
		OTelProviders: providers,
	}, nil
}

// NewApplication creates a new application instance reading from the source
// configured in cfg
func NewApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	src, err := source.New(ctx, cfg.Source, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create data source: %w", err)
	}
	return newApplication(cfg, src, logger)
}

func newApplication(cfg *config.Config, src source.Source, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("source", src.Name()))

	providers, metrics, err := initTelemetry(cfg, logger)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Level == "debug"),
	}

	app.initializeServices(src)
	app.setupRouter()
	app.createServer()

	return app, nil
}

func initTelemetry(cfg *config.Config, logger *slog.Logger) (*infrastructure.OTelProviders, *infrastructure.PipelineMetrics, error) {
	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewPipelineMetrics(providers.Meter)
	if err != nil {
		providers.Shutdown(context.Background())
		return nil, nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	return providers, metrics, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices(src source.Source) {
	a.Reports = services.NewReportService(src, a.Config, a.OTelProviders.Tracer, a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(config.AppVersion, BuildTime, BuildID, a.Reports, a.Logger)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	// Scraped outside the instrumented group so scrapes do not count as traffic
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		// RequestID → RealIP → OTel → Logger/Recoverer → headers → limits → Timeout
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
		r.Use(apierrors.NewErrorMiddleware(a.ErrorHandler, a.Logger).Handler)
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.getCORSConfig()))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.ErrorHandler,
				a.Logger,
			).Handler)
		}

		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))

		a.setupAPIRoutes(r)
		a.setupHTMLRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		reportHandler := handlers.NewReportHandler(a.Reports, a.Config.Render.CSVWithBOM, a.Logger, a.ErrorHandler)
		r.Mount("/report", reportHandler.Routes())

		chartHandler := handlers.NewChartHandler(a.Reports, exporter.NewSVGRenderer(a.Logger), a.Logger, a.ErrorHandler)
		r.Mount("/charts", chartHandler.Routes())
	})
}

func (a *Application) setupHTMLRoutes(r chi.Router) {
	page := handlers.NewDashboardHandler(a.Reports, exporter.NewHTMLRenderer(a.Config.Render.PageTitle), a.Logger, a.ErrorHandler)
	r.With(middleware.Compress(5)).Get("/", page.ServeDashboard)
}

func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		MaxAge: 300,
		Logger: a.Logger,
	}
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Address(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start serves HTTP in the background, warms the dashboard cache and keeps it
// fresh. Server failures call cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.refreshLoop(ctx)
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://%s", a.Server.Addr)))
	return nil
}

// refreshLoop builds the first dashboard right away, then rebuilds it every
// cache period until ctx is done
func (a *Application) refreshLoop(ctx context.Context) {
	if _, err := a.Reports.Dashboard(infrastructure.EnsureTraceID(ctx)); err != nil && ctx.Err() == nil {
		a.Logger.WarnContext(ctx, "Initial dashboard build failed", slog.String("error", err.Error()))
	}

	period := a.Config.Source.CacheTTL
	if period <= 0 {
		return
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.Reports.Refresh(infrastructure.EnsureTraceID(ctx)); err != nil && ctx.Err() == nil {
				a.Logger.WarnContext(ctx, "Scheduled dashboard refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Stop shuts the server down and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.wg.Wait()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run starts the application and blocks until an interrupt or a server
// failure, then shuts down gracefully
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Start(runCtx, cancel); err != nil {
		return err
	}

	<-runCtx.Done()
	a.Logger.Info("Received shutdown signal")
	cancel()

	return a.Stop(context.Background())
}
