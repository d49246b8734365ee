package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/api"
	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/core/service"
	"github.com/chirper/social-system/internal/infrastructure/clients"
	redisdb "github.com/chirper/social-system/internal/infrastructure/db/redis"
	"github.com/chirper/social-system/internal/infrastructure/queue"
	"github.com/chirper/social-system/internal/pkg/config"
	"github.com/chirper/social-system/internal/rpc"
	"github.com/chirper/social-system/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "gateway",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	if len(os.Args) > 1 && os.Args[1] == "create-admin" {
		if err := createAdmin(cfg, log, os.Args[2:]); err != nil {
			log.Fatal().Err(err).Msg("create-admin failed")
		}
		return
	}

	serve(cfg, log)
}

// buildClients wires the backend-service ports used by both serve mode
// and the create-admin subcommand.
func buildClients(cfg *config.Config, log zerolog.Logger) (*clients.UsersClient, *clients.AuthClient, *clients.TweetsClient) {
	timeout := cfg.Gateway.CallTimeout
	usersCaller := rpc.NewCaller("users", cfg.Gateway.UsersURL, timeout, log)
	authCaller := rpc.NewCaller("auth", cfg.Gateway.AuthURL, timeout, log)
	tweetsCaller := rpc.NewCaller("tweets", cfg.Gateway.TweetsURL, timeout, log)

	return clients.NewUsersClient(usersCaller), clients.NewAuthClient(authCaller), clients.NewTweetsClient(tweetsCaller)
}

// buildReverter connects to AMQP, declares the revert topology and returns
// the emitter-backed reverter.
func buildReverter(cfg *config.Config, log zerolog.Logger) (*clients.Reverter, *queue.Manager, error) {
	manager, err := queue.NewManager(cfg.AMQP.URL)
	if err != nil {
		return nil, nil, err
	}
	bindings := map[string]string{cfg.AMQP.RevertQueue: rpc.PatternUserRevertCreate}
	if err := manager.DeclareEventTopology(cfg.AMQP.Exchange, bindings); err != nil {
		_ = manager.Close()
		return nil, nil, err
	}
	emitter, err := rpc.NewEmitter(manager.Connection(), cfg.AMQP.Exchange, log)
	if err != nil {
		_ = manager.Close()
		return nil, nil, err
	}
	return clients.NewReverter(emitter), manager, nil
}

func serve(cfg *config.Config, log zerolog.Logger) {
	ctx := context.Background()

	usersClient, authClient, tweetsClient := buildClients(cfg, log)

	reverter, manager, err := buildReverter(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("amqp setup failed")
	}
	defer manager.Close()

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	accountService := service.NewAccountService(usersClient, authClient, reverter, log)
	usersService := service.NewUsersService(usersClient, authClient, tweetsClient, log)
	tweetsService := service.NewTweetsService(tweetsClient, usersClient, log)

	e := api.NewRouter(api.RouterConfig{
		Account:    accountService,
		Users:      usersService,
		Tweets:     tweetsService,
		Auth:       authClient,
		Redis:      rdb,
		RateLimit:  cfg.Gateway.RateLimit,
		RateWindow: cfg.Gateway.RateWindow,
		Backends: map[string]string{
			"users":  cfg.Gateway.UsersURL,
			"auth":   cfg.Gateway.AuthURL,
			"tweets": cfg.Gateway.TweetsURL,
		},
		Log: log,
	})

	go func() {
		if err := e.Start(":" + cfg.Gateway.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Gateway.Port).Msg("gateway listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

// createAdmin seeds an admin account through the same orchestrated flow
// the public registration route uses. Admin roles are never accepted from
// the HTTP surface; this subcommand is the only way to mint one.
func createAdmin(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	username := fs.String("username", "", "admin username")
	password := fs.String("password", "", "admin password")
	firstName := fs.String("first-name", "Admin", "first name")
	lastName := fs.String("last-name", "User", "last name")
	dateOfBirth := fs.String("date-of-birth", "1970-01-01", "date of birth (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("username and password are required")
	}

	usersClient, authClient, _ := buildClients(cfg, log)
	reverter, manager, err := buildReverter(cfg, log)
	if err != nil {
		return fmt.Errorf("amqp setup: %w", err)
	}
	defer manager.Close()

	account := service.NewAccountService(usersClient, authClient, reverter, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := account.Register(ctx, ports.RegisterInput{
		Username:    *username,
		Password:    *password,
		FirstName:   *firstName,
		LastName:    *lastName,
		DateOfBirth: *dateOfBirth,
		Role:        domain.RoleAdmin,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("username", result.User.Username).
		Str("id_hash", result.User.IDHash).
		Msg("admin account created")
	return nil
}
