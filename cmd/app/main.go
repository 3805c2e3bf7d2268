package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/GridClash_Go/internal/config"
	"github.com/osse101/GridClash_Go/internal/encounter"
	"github.com/osse101/GridClash_Go/internal/event"
	"github.com/osse101/GridClash_Go/internal/item"
	"github.com/osse101/GridClash_Go/internal/metrics"
	"github.com/osse101/GridClash_Go/internal/naming"
	"github.com/osse101/GridClash_Go/internal/server"
	"github.com/osse101/GridClash_Go/internal/stats"
)

// ShutdownTimeout is how long in-flight requests get to finish on exit
const ShutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	// Event bus with dead-letter guard: sink failures never reach combat
	// resolution
	deadLetter, err := event.NewDeadLetterWriter(cfg.DeadLetterPath)
	if err != nil {
		slog.Warn("Dead-letter file unavailable, handler failures will only be logged",
			"path", cfg.DeadLetterPath, "error", err)
	}
	bus := event.NewGuardedBus(event.NewMemoryBus(), deadLetter)
	bus.OnHandlerFailure(func(eventType event.Type) {
		metrics.EventHandlerErrors.WithLabelValues(string(eventType)).Inc()
	})

	// Event sinks
	statsService := stats.NewService()
	stats.NewEventHandler(statsService).Register(bus)

	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		slog.Error("Failed to register metrics collector", "error", err)
		os.Exit(1)
	}

	// Item definitions
	itemLoader := item.NewLoader(config.ConfigPathItemsSchema)
	itemRegistry, err := item.NewRegistry(itemLoader, cfg.ItemsConfigPath, time.Duration(cfg.EncounterTTL)*time.Second)
	if err != nil {
		slog.Error("Failed to load item definitions", "error", err, "path", cfg.ItemsConfigPath)
		os.Exit(1)
	}

	namingResolver := naming.NewResolver()

	encounterService := encounter.NewService(cfg, bus, itemRegistry, namingResolver)
	defer encounterService.Stop()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies,
		encounterService, statsService, itemRegistry, namingResolver)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}

	if deadLetter != nil {
		if err := deadLetter.Close(); err != nil {
			slog.Warn("Failed to close dead-letter file", "error", err)
		}
	}
}
