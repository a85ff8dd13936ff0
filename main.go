package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xiaot623/stylist/internal/adapter/llm"
	"github.com/xiaot623/stylist/internal/adapter/vision"
	"github.com/xiaot623/stylist/internal/config"
	"github.com/xiaot623/stylist/internal/logging"
	"github.com/xiaot623/stylist/internal/policy"
	"github.com/xiaot623/stylist/internal/repository"
	"github.com/xiaot623/stylist/internal/service"
	handler "github.com/xiaot623/stylist/internal/transport/http"
	"github.com/xiaot623/stylist/internal/upload"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stylist: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	slog.Info("starting stylist gateway",
		"port", cfg.HTTPPort,
		"model", cfg.GenAIModel,
		"upload_dir", cfg.UploadDir,
		"event_log", cfg.EventDatabaseURL != "",
		"mode", cfg.Mode,
	)

	// Initialize event store (optional)
	var db store.Store
	if cfg.EventDatabaseURL != "" {
		sqliteStore, err := store.NewSQLiteStore(cfg.EventDatabaseURL)
		if err != nil {
			slog.Error("failed to initialize event store", "error", err)
			os.Exit(1)
		}
		defer sqliteStore.Close()
		db = sqliteStore
	}

	// Initialize collaborators
	visionClient := vision.NewVisionClient(cfg)
	llmClient := llm.NewLLMClient(cfg)

	// Initialize policy engine
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		slog.Error("failed to initialize policy engine", "error", err)
		os.Exit(1)
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		slog.Error("failed to initialize upload store", "error", err)
		os.Exit(1)
	}

	// Initialize service
	svc := service.New(db, visionClient, llmClient, uploads, policyEngine, cfg)
	go svc.RunUploadSweeper(ctx)

	server := handler.NewServer(svc, cfg)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("server listening", "port", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down stylist gateway")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server gracefully", "error", err)
	}

	slog.Info("stylist gateway stopped")
}
