package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/ethanbaker/til/internal/observability"
	"github.com/ethanbaker/til/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	facts_module "github.com/ethanbaker/til/internal/api/modules/facts"
	health_module "github.com/ethanbaker/til/internal/api/modules/health"
	web_module "github.com/ethanbaker/til/internal/api/modules/web"
)

const shutdownTimeout = 10 * time.Second

// Deps are the shared pieces the engine is built from
type Deps struct {
	Logger   *logrus.Logger
	Gatherer prometheus.Gatherer
	Metrics  *observability.FactMetrics
}

// NewEngine builds the gin engine with every module registered. The facts
// service must be initialized first
func NewEngine(cfg *utils.Config, deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = utils.NewNopLogger()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	// Add app level settings/routes
	engine := gin.New()
	engine.NoRoute(api_utils.NoRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	engine.Use(
		gin.Recovery(),
		RequestIDHandler(),
		otelgin.Middleware("til-api"),
		RequestLogger(deps.Logger.WithField("module", "API")),
		MetricsHandler(deps.Metrics),
	)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.GetList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-API-KEY", "apikey", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	// Server-rendered page at the root
	web_module.RegisterRoutes(&engine.RouterGroup)

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup, func() error {
		if facts_module.GetService() == nil {
			return errors.New("fact store not initialized")
		}
		return nil
	})

	facts_module.RegisterRoutes(baseGroup)

	return engine
}

// Start initializes the fact service and serves the API until ctx is cancelled
func Start(ctx context.Context, cfg *utils.Config, logger *logrus.Logger) error {
	log := logger.WithField("module", "API-MAIN")

	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	shutdownTracing, err := observability.InitTracing(cfg.Get("OTEL_TRACES_EXPORTER"), logger.Out)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.WithError(err).Warn("failed to flush traces")
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewFactMetrics(registry)

	if err := facts_module.Init(cfg, logger, metrics); err != nil {
		return fmt.Errorf("failed to initialize facts module: %w", err)
	}
	defer func() {
		if err := facts_module.GetService().Close(); err != nil {
			log.WithError(err).Warn("failed to close fact store")
		}
	}()

	engine := NewEngine(cfg, Deps{Logger: logger, Gatherer: registry, Metrics: metrics})

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("port", port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
