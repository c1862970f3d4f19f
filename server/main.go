package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boothreserve/api/routes"
	"boothreserve/internal/catalog"
	"boothreserve/internal/notifications"
	"boothreserve/internal/promos"
	"boothreserve/internal/reservations"
	"boothreserve/internal/shared/config"
	"boothreserve/internal/shared/database"
	"boothreserve/pkg/clock"
	"boothreserve/pkg/logger"
	"boothreserve/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title Booth Reservation API
// @version 1.0
// @description Booth holds, promo pricing and reservation lifecycle for vendor events.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	booths, err := loadCatalog(cfg)
	if err != nil {
		appLogger.Error("failed to load booth catalog", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.InitDB(cfg, promos.Migrate, reservations.Migrate)
	if err != nil {
		appLogger.Error("failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	clk := clock.NewSystem()

	notifier, closeNotifier := newNotifier(cfg, clk, appLogger)
	defer closeNotifier()

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedis(), &ratelimit.Config{
			Enabled:             cfg.RateLimit.Enabled,
			WindowDuration:      cfg.RateLimit.WindowDuration,
			DefaultRequests:     cfg.RateLimit.DefaultRequests,
			PublicRequests:      cfg.RateLimit.PublicRequests,
			ReservationRequests: cfg.RateLimit.ReservationRequests,
			AdminRequests:       cfg.RateLimit.AdminRequests,
			HealthRequests:      cfg.RateLimit.HealthRequests,
			WhitelistedIPs:      cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Bool("redis", db.GetRedis() != nil),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("reservation_requests", cfg.RateLimit.ReservationRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	appRouter := routes.NewRouter(cfg, db, booths, notifier, clk)

	// Expiry sweeper
	sweeperCtx, sweeperCancel := context.WithCancel(context.Background())
	defer sweeperCancel()
	if err := appRouter.Sweeper().Start(sweeperCtx); err != nil {
		appLogger.Error("Failed to start expiry sweeper", slog.Any("error", err))
	}
	defer appRouter.Sweeper().Stop()

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        setupEngine(appRouter, rateLimiter),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
			slog.String("store_driver", cfg.Reservation.StoreDriver),
			slog.Int("booths", booths.Len()),
			slog.Bool("redis", db.GetRedis() != nil),
			slog.Bool("kafka", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Reservation.CatalogFile == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.Reservation.CatalogFile)
}

// newNotifier publishes to Kafka when enabled and reachable, and logs otherwise
func newNotifier(cfg *config.Config, clk clock.Clock, appLogger *logger.Logger) (reservations.Notifier, func()) {
	if !cfg.Kafka.Enabled {
		return notifications.NewLogNotifier(clk), func() {}
	}

	producerCfg := notifications.DefaultKafkaProducerConfig()
	producerCfg.Brokers = cfg.Kafka.Brokers
	producerCfg.Topic = cfg.Kafka.Topic

	producer, err := notifications.NewKafkaProducer(producerCfg)
	if err != nil {
		appLogger.Error("Kafka unavailable, falling back to log notifications", slog.Any("error", err))
		return notifications.NewLogNotifier(clk), func() {}
	}

	notifier := notifications.NewKafkaNotifier(producer, clk)
	return notifier, func() {
		if err := notifier.Close(); err != nil {
			appLogger.Error("Error closing Kafka producer", slog.Any("error", err))
		}
	}
}

func setupEngine(appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter.SetupRoutes(engine)
	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
