package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/codetime-dev/codetime/internal/api"
	"github.com/codetime-dev/codetime/internal/cache"
	"github.com/codetime-dev/codetime/internal/config"
	"github.com/codetime-dev/codetime/internal/github"
	"github.com/codetime-dev/codetime/internal/service"

	_ "github.com/codetime-dev/codetime/docs"
)

// @title codetime API
// @version 1.0
// @description Coding-session stats computed from repository commit history
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if cfg.GitHub.Token == "" {
		logger.Warn("GITHUB_TOKEN not set, using the anonymous rate limit")
	}

	client := github.NewClient(
		cfg.GitHub.Token,
		logger,
		github.WithBaseURL(cfg.GitHub.APIBaseURL),
		github.WithRetryConfig(cfg.GitHub.MaxRetries, cfg.GitHub.InitialBackoff, cfg.GitHub.MaxBackoff),
	)
	resultCache := cache.NewMemoryCache(cfg.CacheTTL)
	statsService := service.New(client, resultCache, logger)
	handler := api.NewHandler(statsService, resultCache, cfg.Stats, logger)
	router := api.SetupRouter(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
}
