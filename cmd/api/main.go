package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/handler"
	"github.com/vaultpass/passgen-go/internal/repository"
	"github.com/vaultpass/passgen-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	sealer, err := crypto.NewSealer(cfg.HistorySecret)
	if err != nil {
		slog.Error("history sealer setup failed", "error", err)
		os.Exit(1)
	}

	historyService := service.NewHistoryService(historyStore(cfg.DatabaseDSN), sealer)

	router := handler.NewRouter(handler.RouterConfig{
		Generator:      service.NewGeneratorService(),
		History:        historyService,
		Sessions:       service.NewSessionService(cfg.SessionSecret, cfg.SessionExpiry),
		SessionSecret:  cfg.SessionSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// historyStore returns the MySQL-backed store, or an in-memory one when the
// database is unreachable.
func historyStore(dsn string) service.HistoryStore {
	db, err := repository.NewDB(dsn)
	if err != nil {
		slog.Warn("database connection failed, history kept in memory", "error", err)
		return repository.NewMemoryHistoryRepository()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repository.Migrate(ctx, db); err != nil {
		slog.Warn("history migration failed, history kept in memory", "error", err)
		db.Close()
		return repository.NewMemoryHistoryRepository()
	}

	return repository.NewHistoryRepository(db)
}
