package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bhola-kumar/content-snatcher/internal/api"
	"github.com/Bhola-kumar/content-snatcher/internal/api/handler"
	"github.com/Bhola-kumar/content-snatcher/internal/config"
	"github.com/Bhola-kumar/content-snatcher/internal/fetcher"
	"github.com/Bhola-kumar/content-snatcher/internal/publisher"
	"github.com/Bhola-kumar/content-snatcher/internal/service"
	"github.com/Bhola-kumar/content-snatcher/internal/telegram"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("content-snatcher %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting content-snatcher",
		"version", Version,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Info("settings loaded", "public_base_url", cfg.Telegram.ResolvedPublicURL())

	// Initialize dependencies
	fetch, err := fetcher.NewYtDlp(cfg.Download, logger)
	if err != nil {
		logger.Error("failed to initialize fetcher", "error", err)
		os.Exit(1)
	}
	pub := publisher.NewYouTube(cfg.YouTube, logger)
	if !pub.Configured() {
		logger.Warn("upload credentials incomplete, uploads will be rejected",
			"missing", pub.MissingCredentials(),
		)
	}

	// Messaging client: one shared process-lifetime handle
	tgClient, err := telegram.New(cfg.Telegram.BotToken, cfg.Telegram.WebhookSecret, logger)
	if err != nil {
		logger.Error("failed to initialize telegram client", "error", err)
		os.Exit(1)
	}

	// Initialize services and handlers
	mediaSvc := service.NewMediaService(fetch, pub, logger)

	router := api.NewRouter(
		handler.NewHealthHandler(),
		handler.NewProcessHandler(),
		handler.NewUploadHandler(mediaSvc, pub, logger),
		handler.NewWebhookHandler(mediaSvc, tgClient, logger),
		cfg.Telegram.WebhookSecret,
	)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Register the webhook once the server is up, when a public URL exists
	if publicURL := cfg.Telegram.ResolvedPublicURL(); publicURL != "" {
		if err := tgClient.RegisterWebhook(publicURL); err != nil {
			logger.Error("webhook registration failed", "error", err)
		}
	} else {
		logger.Info("no public base URL configured, skipping webhook registration")
	}

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Best effort: release failures never fail the process
	tgClient.Close()

	logger.Info("shutdown complete")
}
