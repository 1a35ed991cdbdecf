package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/adapters/kafka"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/adapters/storage"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/config"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/database"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	slog.Info("Starting chat server")

	db, err := database.NewMySQLConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to MySQL", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := database.NewRedisConnection(&cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	var publisher *kafka.MessagePublisher
	if cfg.Kafka.Enabled() {
		publisher, err = kafka.NewMessagePublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			slog.Error("Failed to connect to Kafka", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
	}

	var media *storage.MediaStore
	if cfg.Minio.Enabled() {
		media, err = storage.NewMediaStore(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
		if err != nil {
			slog.Error("Failed to connect to MinIO", "error", err)
			os.Exit(1)
		}
	}

	app := router.NewApp(router.Deps{
		DB:     db,
		Redis:  redisClient,
		Kafka:  publisher,
		Media:  media,
		Config: cfg,
		Logger: logger,
	})
	defer app.Close()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      app.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server stopped")
}
