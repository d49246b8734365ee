package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/chirper/social-system/internal/backend/authsvc"
	"github.com/chirper/social-system/internal/infrastructure/db/postgres"
	"github.com/chirper/social-system/internal/pkg/config"
	"github.com/chirper/social-system/internal/rpc"
	"github.com/chirper/social-system/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "authsvc",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer postgres.Close(db)

	repo := authsvc.NewGormRepository(db)
	if err := repo.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	tokens := authsvc.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	svc := authsvc.NewService(repo, tokens, log)

	srv := rpc.NewServer(log)
	authsvc.RegisterHandlers(srv, svc)

	go func() {
		if err := srv.Start(":" + cfg.Auth.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Auth.Port).Msg("auth service listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
