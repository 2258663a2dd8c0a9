package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tweetboard/internal/config"
	"tweetboard/internal/database"
	"tweetboard/internal/handler"
	"tweetboard/internal/logging"
)

func main() {
	// .envファイルを読み込み
	envErr := godotenv.Load()

	// 環境変数を読み込み
	cfg := config.Load()
	logger := logging.New(cfg.LogFormat, cfg.LogLevel)
	if envErr != nil {
		logger.Warn("⚠️  .env file not found, using default values", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// データベース接続を初期化
	store, err := database.Init(ctx, cfg)
	if err != nil {
		logger.Error("❌ Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// ハンドラー初期化
	h := handler.New(store, cfg, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           h.HTTPHandler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	fmt.Println("========================================")
	fmt.Println("  Tweetboard API Server")
	fmt.Println("========================================")
	fmt.Printf("  Environment: %s\n", cfg.Env)
	fmt.Printf("  Server: http://localhost:%s/api/tweets\n", cfg.ServerPort)
	fmt.Printf("  Store: %s\n", cfg.DBDriver)
	if cfg.DBName != "" {
		fmt.Printf("  Database: %s@%s:%s/%s\n", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	fmt.Printf("  Allowed Origins: %v\n", cfg.AllowedOrigins)
	fmt.Println("========================================")

	go func() {
		logger.Info("🚀 Server started successfully", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("❌ Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// グレースフルシャットダウン
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
