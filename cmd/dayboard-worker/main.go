package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"dayboard/internal/amqp"
	"dayboard/internal/appstate"
	"dayboard/internal/config"
	"dayboard/internal/log"
	"dayboard/internal/rollover"
	"dayboard/internal/sink"
	"dayboard/internal/snapshot"
	"dayboard/internal/storage"
	"dayboard/internal/trigger"
	"dayboard/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("Starting dayboard-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
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

	flags, err := appstate.Load(cfg.AppStatePath)
	if err != nil {
		logger.Error("Failed to load app state", "error", err, "path", cfg.AppStatePath)
		os.Exit(1)
	}

	resolver := rollover.NewResolver(repo)
	aggregator := snapshot.NewAggregator(repo, resolver)
	broadcaster := sink.NewBroadcaster(snapshots, bridge)
	trig := trigger.New(aggregator, snapshot.NewSerializer(), broadcaster, flags)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Consuming widget sync messages", "queue", cfg.AMQPQueue)
	if err := worker.NewWidgetWorker(trig).Run(ctx, amqpClient); err != nil && ctx.Err() == nil {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
