package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"hotelier/internal/api"
	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/export"
	"hotelier/internal/logging"
	"hotelier/internal/metrics"
	"hotelier/internal/repository"
	"hotelier/internal/service"
	"hotelier/internal/sheets"
	"hotelier/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка инициализации базы данных")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Seed(ctx); err != nil {
		logger.Error().Err(err).Msg("Ошибка заполнения стартовых данных")
		return err
	}

	redisClient, cache := initCache(ctx, cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	eventBus := events.NewBus()
	subscribeEvents(eventBus, &logger)

	var syncWorker *worker.SyncWorker
	if cfg.Sync.Enabled {
		mirror, err := initSheets(ctx, cfg, &logger)
		if err != nil {
			return err
		}
		retryPolicy := worker.DefaultRetryPolicy(cfg.Sync.MaxRetries)
		syncWorker = worker.NewSyncWorker(db, mirror, redisClient, retryPolicy, cfg.SyncPollInterval(), &logger)
		go syncWorker.Start(ctx)
	}

	var syncer domain.ReservationSyncer
	if syncWorker != nil {
		syncer = syncWorker
	}

	reservationService := service.NewReservationService(db, cache, eventBus, syncer, &logger)
	clientService := service.NewClientService(db, eventBus, &logger)
	catalogService := service.NewCatalogService(db, &logger)
	exporter := export.NewExporter(db, cfg.Exports, &logger)

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	if !cfg.API.Enabled {
		logger.Info().Msg("HTTP API disabled, running background services only")
		<-ctx.Done()
		return nil
	}

	apiServer := api.NewHTTPServer(cfg.API, reservationService, clientService, catalogService, exporter, &logger)
	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error().Err(err).Msg("API server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return apiServer.Shutdown(shutdownCtx)
}

// subscribeEvents keeps an audit trail of domain events in the log.
func subscribeEvents(bus *events.Bus, logger *zerolog.Logger) {
	for _, eventType := range []string{
		events.EventReservationCreated,
		events.EventClientCreated,
		events.EventEvaluationCreated,
		events.EventServiceAttached,
	} {
		et := eventType
		bus.Subscribe(et, func(event *events.Event) error {
			logger.Info().Str("event", et).RawJSON("payload", event.Payload).Msg("Domain event")
			return nil
		})
	}
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для базы данных")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для экспорта")
		return err
	}
	return nil
}

// initCache wires Redis with the in-memory cache as failover. Without a
// configured Redis address the process-local cache is used alone.
func initCache(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, domain.AvailabilityCache) {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	memory := repository.NewMemoryAvailabilityCache(ttl)

	if cfg.Redis.Address == "" {
		logger.Info().Msg("Redis not configured, using in-memory availability cache")
		return nil, memory
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable at startup, failover cache will retry")
	}

	primary := repository.NewRedisAvailabilityCache(client, ttl)
	return client, repository.NewFailoverAvailabilityCache(primary, memory, logger)
}

func initSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*sheets.Service, error) {
	svc, err := sheets.NewService(cfg.Google.CredentialsFile, cfg.Google.ReservationsSpreadsheetID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize Google Sheets service")
		return nil, err
	}

	if err := svc.TestConnection(ctx); err != nil {
		logger.Error().Err(err).Msg("Google Sheets connection test failed")
		return nil, err
	}

	logger.Info().Msg("Google Sheets service initialized successfully")
	return svc, nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("Metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
