package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/chirper/social-system/internal/backend/userssvc"
	mongodb "github.com/chirper/social-system/internal/infrastructure/db/mongo"
	"github.com/chirper/social-system/internal/infrastructure/queue"
	"github.com/chirper/social-system/internal/pkg/config"
	"github.com/chirper/social-system/internal/rpc"
	"github.com/chirper/social-system/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "userssvc",
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

	repo := userssvc.NewMongoRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	svc := userssvc.NewService(repo, log)

	manager, err := queue.NewManager(cfg.AMQP.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("amqp connection failed")
	}
	defer manager.Close()

	bindings := map[string]string{cfg.AMQP.RevertQueue: rpc.PatternUserRevertCreate}
	if err := manager.DeclareEventTopology(cfg.AMQP.Exchange, bindings); err != nil {
		log.Fatal().Err(err).Msg("amqp topology failed")
	}

	consumer := userssvc.NewRevertConsumer(manager, cfg.AMQP.RevertQueue, svc, log)
	if err := consumer.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("revert consumer failed to start")
	}

	srv := rpc.NewServer(log)
	userssvc.RegisterHandlers(srv, svc)

	go func() {
		if err := srv.Start(":" + cfg.Users.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Users.Port).Msg("users service listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
