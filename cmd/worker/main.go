package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/internal/logger"
	"github.com/jwebster45206/adventure-engine/internal/queue"
	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Adventure Engine Worker",
		"environment", cfg.Environment,
		"redis_url", cfg.RedisURL,
		"forced_delay", cfg.ForcedDelay)

	store, err := storage.NewRedisStore(cfg.RedisURL, cfg.DataDir, log)
	if err != nil {
		log.Error("Failed to initialize Redis storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing storage connection", "error", err)
		}
	}()

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	forcedQueue := queue.NewForcedQueue(store.Client(), log)

	w := worker.New(forcedQueue, store, cfg.ForcedDelay, log, "")

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutdown signal received")
		w.Stop()
	}()

	if err := w.Start(); err != nil {
		log.Error("Worker exited with error", "error", err)
		os.Exit(1)
	}

	log.Info("Worker exited")
}
