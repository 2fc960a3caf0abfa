// API server entry point for VendorIQ.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/VendorIQ/internal/application/extract"
	"github.com/turtacn/VendorIQ/internal/application/ingest"
	appmatch "github.com/turtacn/VendorIQ/internal/application/match"
	"github.com/turtacn/VendorIQ/internal/config"
	"github.com/turtacn/VendorIQ/internal/infrastructure/database/neo4j"
	"github.com/turtacn/VendorIQ/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/VendorIQ/internal/infrastructure/database/redis"
	"github.com/turtacn/VendorIQ/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/VendorIQ/internal/interfaces/http"
	"github.com/turtacn/VendorIQ/internal/interfaces/http/handlers"
	"github.com/turtacn/VendorIQ/internal/interfaces/http/middleware"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	ensureSchema := flag.Bool("ensure-schema", false, "bootstrap graph constraints and indexes before serving")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath != defaultConfigPath {
			fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		// No config file at the default location: environment and defaults.
		fmt.Fprintf(os.Stderr, "warning: %v, using environment and defaults\n", err)
		if cfg, err = config.Load(""); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
			os.Exit(1)
		}
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *ensureSchema); err != nil {
		logger.Error("server exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger, ensureSchema bool) error {
	metrics := prometheus.NewMetrics()

	driver, err := neo4j.NewDriver(cfg.Neo4j, logger.Named("neo4j"))
	if err != nil {
		return fmt.Errorf("connecting to neo4j: %w", err)
	}
	defer driver.Close()

	healthChecks := map[string]handlers.HealthChecker{
		"neo4j": driver.HealthCheck,
	}

	var rateLimit *middleware.RateLimitMiddleware
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg.Redis, logger.Named("redis"))
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer redisClient.Close()
		healthChecks["redis"] = redisClient.HealthCheck

		if cfg.RateLimit.Enabled {
			limiter := redis.NewRateLimiter(redisClient,
				cfg.RateLimit.RequestsPerMinute, time.Minute)
			rateLimit = middleware.NewRateLimitMiddleware(limiter, logger.Named("ratelimit"))
		}
	}

	publisher := kafka.NewPublisher(cfg.Kafka, logger.Named("kafka"))
	defer publisher.Close()

	vendorRepo := repositories.NewNeo4jVendorRepo(driver, logger.Named("catalog"))
	schemaManager := repositories.NewNeo4jSchemaManager(driver, logger.Named("schema"))
	candidateRepo := repositories.NewNeo4jCandidateRepo(driver, logger.Named("retrieval"))

	extractor, err := extract.New(cfg.Matching, logger.Named("extract"))
	if err != nil {
		return fmt.Errorf("initializing extractor: %w", err)
	}

	matchService := appmatch.NewService(extractor, candidateRepo, cfg.Matching,
		logger.Named("match"), metrics)
	ingestService := ingest.NewService(vendorRepo, schemaManager, publisher,
		logger.Named("ingest"), metrics)

	if ensureSchema {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := ingestService.EnsureSchema(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
		logger.Info("graph schema ensured")
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Match:     handlers.NewMatchHandler(matchService),
		Vendor:    handlers.NewVendorHandler(ingestService),
		Admin:     handlers.NewAdminHandler(ingestService),
		Health:    handlers.NewHealthHandler(healthChecks),
		Logging:   middleware.NewLoggingMiddleware(logger.Named("http"), metrics),
		CORS:      middleware.NewCORSMiddleware(),
		RateLimit: rateLimit,
		Metrics:   metrics,
	})
	server := httpserver.NewServer(cfg.Server, router, logger.Named("http"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	if err := server.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}
