package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatelink/gatelink/internal/config"
	"github.com/gatelink/gatelink/internal/enrichment/geo"
	"github.com/gatelink/gatelink/internal/infrastructure/db"
	"github.com/gatelink/gatelink/internal/infrastructure/logger"
	"github.com/gatelink/gatelink/internal/infrastructure/telemetry"
	"github.com/gatelink/gatelink/internal/processing/admin"
	"github.com/gatelink/gatelink/internal/processing/redirect"
	"github.com/gatelink/gatelink/internal/recording"
	"github.com/gatelink/gatelink/internal/storage/postgres"
	kafkaStream "github.com/gatelink/gatelink/internal/stream/kafka"
	httpTransport "github.com/gatelink/gatelink/internal/transport/http"
	"github.com/gatelink/gatelink/internal/transport/http/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// clickStore joins the two repositories the recorder writes through.
type clickStore struct {
	*postgres.EventsRepository
	*postgres.LinksRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.App.Env, cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
	)

	var shutdownTracer func(context.Context) error
	if cfg.OTel.Enabled {
		var err error
		shutdownTracer, err = telemetry.InitTracer(cfg.OTel.Endpoint, cfg.App.Name, cfg.App.Version)
		if err != nil {
			logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else {
			logger.Info("OpenTelemetry tracer initialized", zap.String("endpoint", cfg.OTel.Endpoint))
		}
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	pg, err := db.ConnectPostgres(connectCtx, cfg.Postgres.DSN)
	cancelConnect()
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pg.Close()

	linksRepo, err := postgres.NewLinksRepository(pg)
	if err != nil {
		logger.Fatal("Failed to initialize links repository", zap.Error(err))
	}
	partnersRepo, err := postgres.NewPartnersRepository(pg)
	if err != nil {
		logger.Fatal("Failed to initialize partners repository", zap.Error(err))
	}
	eventsRepo, err := postgres.NewEventsRepository(pg)
	if err != nil {
		logger.Fatal("Failed to initialize events repository", zap.Error(err))
	}

	var publisher recording.ClickPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := kafkaStream.NewClickPublisher(cfg.Kafka.Brokers, cfg.Kafka.ClickTopic)
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
		logger.Info("Kafka click publisher enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.ClickTopic),
		)
	}

	recorder := recording.NewRecorder(clickStore{eventsRepo, linksRepo}, publisher)
	geoResolver := geo.NewResolver(geo.Options{
		Endpoint:    cfg.Geo.Endpoint,
		Timeout:     cfg.Geo.Timeout,
		MaxFailures: cfg.Geo.MaxFailures,
		OpenTimeout: cfg.Geo.OpenTimeout,
	})
	pipeline := redirect.NewPipeline(linksRepo, eventsRepo, geoResolver, recorder)

	adminSvc := admin.NewService(linksRepo, partnersRepo, admin.NewCryptoCodeGenerator(), cfg.Links.CodeLength)

	pages, err := httpTransport.NewPages(cfg.Links.RedirectDelay)
	if err != nil {
		logger.Fatal("Failed to load page templates", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()

	routerOpts := httpTransport.DefaultRouterOptions()
	routerOpts.RateLimiter = middleware.NewRedisFixedWindowLimiter(redisClient, cfg.Admin.RequestsPerMinute)
	router := httpTransport.NewRouterWithOptions(cfg, pipeline, adminSvc, pages, routerOpts)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if shutdownTracer != nil {
			_ = shutdownTracer(shutdownCtx)
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
		}
	}()

	logger.Info("Server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("env", cfg.App.Env),
		zap.String("address", fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)),
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("Server error", zap.Error(err))
	}

	// Accepted clicks may still be enriching; drain them before exit.
	pipeline.Wait()

	logger.Info("Server stopped gracefully")
}
