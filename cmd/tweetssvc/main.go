package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/chirper/social-system/internal/backend/tweetssvc"
	mongodb "github.com/chirper/social-system/internal/infrastructure/db/mongo"
	"github.com/chirper/social-system/internal/pkg/config"
	"github.com/chirper/social-system/internal/rpc"
	"github.com/chirper/social-system/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "tweetssvc",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, disconnect, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = disconnect(disconnectCtx)
	}()

	repo := tweetssvc.NewMongoRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	svc := tweetssvc.NewService(repo, log)

	srv := rpc.NewServer(log)
	tweetssvc.RegisterHandlers(srv, svc)

	go func() {
		if err := srv.Start(":" + cfg.Tweets.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Tweets.Port).Msg("tweets service listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
