package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"social-media-agent/internal/ai"
	"social-media-agent/internal/config"
	"social-media-agent/internal/logger"
	"social-media-agent/internal/store"
	"social-media-agent/internal/telemetry"
	"social-media-agent/middleware"
	"social-media-agent/routes"
	"social-media-agent/services"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "social-media-agent"

func main() {
	// Load configuration; a missing API key stops here
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	logger.InitLogger(cfg)

	shutdownTracer, err := telemetry.InitTracer(serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("Failed to initialize tracer: ", err)
	}
	defer shutdownTracer()

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Fatal("Failed to initialize metrics: ", err)
	}

	location, err := time.LoadLocation(cfg.ScheduleTimezone)
	if err != nil {
		log.Fatal("Invalid SCHEDULE_TIMEZONE: ", err)
	}

	st, err := store.New(cfg)
	if err != nil {
		log.Fatal("Failed to open store: ", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		st.Close(ctx)
	}()

	completer, closeCompleter, err := newCompleter(cfg)
	if err != nil {
		log.Fatal("Failed to initialize generation client: ", err)
	}
	defer closeCompleter()

	runner := services.NewJobRunner(
		ai.NewGenerator(completer, metrics),
		services.NewRenderer(location, cfg.RenderEscapeHTML),
		services.NewSMTPEmailSender(cfg),
		st,
		metrics,
	)

	scheduler := services.NewScheduler(location, cfg.ScheduleAt, runner)
	defer scheduler.Stop()

	// Re-install the daily trigger for a previously saved config
	if saved, err := st.LoadConfig(context.Background()); err != nil {
		logger.Warn("Could not load saved config", "error", err)
	} else if saved != nil {
		if err := scheduler.Reconfigure(*saved); err != nil {
			logger.Error("Failed to restore schedule", "error", err)
		}
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.RequestSizeLimit(64 << 10))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	handler := routes.NewAgentHandler(st, scheduler, runner)
	routes.SetupAgentRoutes(router, handler, middleware.NewRunLimiter(cfg.RunRatePerMinute).Middleware())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port, "provider", cfg.GenerationProvider, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

func newCompleter(cfg *config.Config) (ai.Completer, func(), error) {
	switch cfg.GenerationProvider {
	case config.ProviderGemini:
		client, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GenerationModel)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	default:
		return ai.NewOpenRouterClient(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.GenerationModel), func() {}, nil
	}
}
