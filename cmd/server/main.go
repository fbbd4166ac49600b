package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/framelab/pillarbox/internal/amqp"
	"github.com/framelab/pillarbox/internal/config"
	"github.com/framelab/pillarbox/internal/handlers"
	"github.com/framelab/pillarbox/internal/letterbox"
	"github.com/framelab/pillarbox/internal/redis"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the normalize worker pool
	processor := letterbox.NewProcessor(logger)
	pool := letterbox.NewWorkerPool(cfg.Workers, processor, cfg.JobTimeout, logger)
	pool.Start()

	// Optional Redis: job status store and stream ingestion
	var store handlers.StatusStore
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.NewClient(cfg.Redis, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		store = redisClient
	} else {
		logger.Info("Redis not configured, job status tracking disabled")
	}

	jobHandler := handlers.NewJobHandler(pool, store, logger)

	// Redis stream consumer
	var redisConsumer *redis.Consumer
	if redisClient != nil {
		redisConsumer = redis.NewConsumer(redisClient, jobHandler, logger)
		go func() {
			if err := redisConsumer.Start(); err != nil {
				logger.Error("Redis consumer stopped with error", zap.Error(err))
			}
		}()
	}

	// AMQP ingestion
	amqpConn, err := amqp.NewConnection(cfg.AMQP, logger)
	if err != nil {
		logger.Error("Failed to connect to AMQP, queue ingestion disabled", zap.Error(err))
	} else {
		defer amqpConn.Close()
		amqpConsumer := amqp.NewConsumer(amqpConn, jobHandler, logger)
		go func() {
			if err := amqpConsumer.Start(ctx, cfg.AMQP.QueueName); err != nil && err != context.Canceled {
				logger.Error("AMQP consumer stopped with error", zap.Error(err))
			}
		}()
	}

	// HTTP API for job submission and status lookup
	mux := http.NewServeMux()
	jobAPI := handlers.NewJobAPI(jobHandler, store, logger)
	jobAPI.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", zap.Error(err))
			cancel()
		}
	}()

	logger.Info("Server started",
		zap.Int("port", cfg.Server.Port),
		zap.Int("workers", cfg.Workers))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	if redisConsumer != nil {
		redisConsumer.Stop()
	}

	// Cancel ingestion and drain workers
	cancel()
	pool.Stop()

	logger.Info("Server shutdown complete")
}
