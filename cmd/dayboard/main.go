package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dayboard/internal/amqp"
	"dayboard/internal/appstate"
	"dayboard/internal/config"
	apphttp "dayboard/internal/http"
	"dayboard/internal/log"
	"dayboard/internal/rollover"
	"dayboard/internal/services"
	"dayboard/internal/sink"
	"dayboard/internal/snapshot"
	"dayboard/internal/storage"
	"dayboard/internal/trigger"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting dayboard")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	snapshots := sink.NewFallbackStore(repo.DB())

	bridge, err := sink.NewBridge(sink.BridgeConfig{
		Kind:          cfg.Bridge,
		Dir:           cfg.BridgeDir,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("Failed to initialize widget bridge", "error", err, "bridge", cfg.Bridge)
		os.Exit(1)
	}
	logger.Info("Widget bridge initialized", "bridge", bridge.Name())

	flags, err := appstate.Load(cfg.AppStatePath)
	if err != nil {
		logger.Error("Failed to load app state", "error", err, "path", cfg.AppStatePath)
		os.Exit(1)
	}

	resolver := rollover.NewResolver(repo)
	aggregator := snapshot.NewAggregator(repo, resolver)
	broadcaster := sink.NewBroadcaster(snapshots, bridge)
	trig := trigger.New(aggregator, snapshot.NewSerializer(), broadcaster, flags)

	// AMQP is optional: without it widget syncs still run in-process.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	dispatcher := services.NewDispatcher(trig, amqpClient)

	srv := apphttp.NewServer(
		apphttp.Config{
			Addr:             ":" + cfg.Port,
			SnapshotCacheTTL: cfg.SnapshotCacheTTL,
			Logger:           logger,
		},
		services.NewHabitService(repo, resolver, dispatcher),
		services.NewExpenseService(repo, dispatcher),
		services.NewPlannerService(repo, dispatcher),
		snapshots,
		trig,
	)
	defer srv.Stop()

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Publish fresh snapshots on startup so widgets never show stale data
	// after a restart.
	trig.SyncAll(context.Background())

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting dayboard server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
