package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/expense-notify/internal/application/cleanup"
	"github.com/expense-notify/internal/config"
	"github.com/expense-notify/internal/infrastructure/dynamo"
	jwtinfra "github.com/expense-notify/internal/infrastructure/jwt"
	"github.com/expense-notify/internal/infrastructure/sns"
	"github.com/expense-notify/internal/pkg/logging"
	transporthttp "github.com/expense-notify/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	logging.Setup()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	groupRepo := dynamo.NewGroupRepo(dynamoClient, cfg.DynamoTables.Groups)

	// JWT provider (optional — the test endpoint rejects all callers without it).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		slog.Warn("JWT provider not available", "err", err)
	}

	pusher, err := sns.NewPusher(cfg)
	if err != nil {
		slog.Error("SNS pusher not available", "err", err)
		os.Exit(1)
	}

	deps := &transporthttp.Deps{
		GroupRepo:   groupRepo,
		UserRepo:    userRepo,
		Pusher:      pusher,
		JWTProvider: jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	// Periodic stale-token sweep.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go cleanup.NewService(userRepo, slog.Default()).Start(sweepCtx, cfg.TokenCleanupInterval)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
