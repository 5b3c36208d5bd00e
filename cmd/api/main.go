package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestioplus/gestio-api/internal/api"
	"github.com/gestioplus/gestio-api/internal/core/service"
	"github.com/gestioplus/gestio-api/internal/infrastructure/config"
	mongodb "github.com/gestioplus/gestio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gestioplus/gestio-api/internal/infrastructure/db/redis"
	"github.com/gestioplus/gestio-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("loading configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("disconnecting mongodb")
		}
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("closing redis")
		}
	}()

	if err := api.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensuring indexes")
	}

	if cfg.BootstrapEmail != "" && cfg.BootstrapPassword != "" {
		limiter := redisdb.NewLoginLimiter(redisClient, 0, 0)
		accounts := mongodb.NewAccountRepository(db)
		authService := service.NewAuthService(accounts, limiter, cfg.JWTSecret, log)
		if err := authService.EnsureBootstrapAccount(ctx, cfg.BootstrapEmail, cfg.BootstrapPassword); err != nil {
			log.Fatal().Err(err).Msg("bootstrapping admin account")
		}
	}

	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     redisClient,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutting down server")
	}
}
