package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LuckyFay12/shareit/internal/api"
	"github.com/LuckyFay12/shareit/internal/cache"
	"github.com/LuckyFay12/shareit/internal/config"
	"github.com/LuckyFay12/shareit/internal/database"
	"github.com/LuckyFay12/shareit/internal/domain"
	"github.com/LuckyFay12/shareit/internal/events"
	"github.com/LuckyFay12/shareit/internal/logging"
	"github.com/LuckyFay12/shareit/internal/metrics"
	"github.com/LuckyFay12/shareit/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	metrics.Register()

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	viewCache := buildViewCache(cfg, logger)

	eventBus := events.NewEventBus()
	subscribeBookingEvents(eventBus, logger)

	cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	users := service.NewUserService(db, logger)
	items := service.NewItemService(db, viewCache, eventBus, cacheTTL, logger)
	bookings := service.NewBookingService(db, eventBus, logger)
	requests := service.NewRequestService(db, logger)

	server := api.NewHTTPServer(cfg.Server, users, items, bookings, requests, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() { errCh <- server.Start() }()

	if cfg.Monitoring.PrometheusEnabled {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort)
			logger.Info().Str("addr", addr).Msg("metrics listening")
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func buildViewCache(cfg *config.Config, logger *zerolog.Logger) domain.ViewCache {
	memory := cache.NewMemoryCache()
	if !cfg.Redis.Enabled {
		return memory
	}
	redisCache := cache.NewRedisCache(cache.NewRedisClient(cfg.Redis), logger)
	checkInterval := time.Duration(cfg.Cache.CheckIntervalSeconds) * time.Second
	return cache.NewFailoverCache(redisCache, memory, checkInterval, logger)
}

// subscribeBookingEvents wires the lifecycle events into metrics and the log.
func subscribeBookingEvents(bus *events.EventBus, logger *zerolog.Logger) {
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingApproved,
		events.EventBookingRejected,
		events.EventBookingCanceled,
		events.EventCommentAdded,
	} {
		eventType := eventType
		bus.Subscribe(eventType, func(event *events.Event) error {
			metrics.IncBookingEvent(eventType)
			logger.Debug().Str("event_type", eventType).RawJSON("payload", event.Payload).Msg("domain event")
			return nil
		})
	}
}
