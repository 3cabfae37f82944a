package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/codraft/codraft/internal/server/handlers"
	"github.com/codraft/codraft/internal/server/hub"
	"github.com/codraft/codraft/internal/server/middleware"
	"github.com/codraft/codraft/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	defaultAddress      = ":8080"
	defaultDatabasePath = "codraft.db"

	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour

	// rate limit на IP для всего API
	rateLimitRequests = 100
	rateLimitWindow   = time.Minute

	shutdownTimeout = 10 * time.Second
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if err := run(logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// Конфигурация из окружения; .env подхватывается, если есть
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using OS environment")
	}

	address := envOr("CODRAFT_ADDRESS", defaultAddress)
	dbPath := envOr("CODRAFT_DATABASE", defaultDatabasePath)

	jwtSecret := os.Getenv("CODRAFT_JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("CODRAFT_JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(jwtSecret),
		AccessTokenTTL:  accessTokenTTL,
		RefreshTokenTTL: refreshTokenTTL,
	}

	// Presence hub: комнаты по документам, рассылка правок и событий аренды
	presenceHub := hub.NewHub(logger)
	go presenceHub.Run(ctx)

	authHandler := handlers.NewAuthHandler(logger, store, store, jwtConfig)
	syncHandler := handlers.NewSyncHandler(logger, store, presenceHub)
	documentHandler := handlers.NewDocumentHandler(logger, store)
	lockHandler := handlers.NewLockHandler(logger, store, presenceHub, handlers.DefaultLockTTL)
	healthHandler := handlers.NewHealthHandler(logger)

	auth := middleware.AuthMiddleware(logger, jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)

	mux.Handle("POST /api/v1/sync", auth(http.HandlerFunc(syncHandler.HandleSync)))
	mux.Handle("GET /api/v1/documents/{id}", auth(http.HandlerFunc(documentHandler.GetDocument)))
	mux.Handle("POST /api/v1/locks/acquire", auth(http.HandlerFunc(lockHandler.Acquire)))
	mux.Handle("POST /api/v1/locks/release", auth(http.HandlerFunc(lockHandler.Release)))
	mux.Handle("GET /api/v1/ws", auth(hub.ServeWs(presenceHub, logger)))

	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingMiddleware(logger)(
			middleware.RateLimitMiddleware(rateLimitRequests, rateLimitWindow, logger)(mux)))

	server := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", address, "version", Version)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printVersion() {
	fmt.Printf("Codraft Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
