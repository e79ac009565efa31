// @title                       Cadmin API
// @version                     1.0
// @description                 Multi-tenant admin panel: users, resources and dashboard stats.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cadmin/cadmin-api/internal/api"
	"github.com/cadmin/cadmin-api/internal/api/handler"
	"github.com/cadmin/cadmin-api/internal/core/ports"
	"github.com/cadmin/cadmin-api/internal/core/service"
	"github.com/cadmin/cadmin-api/internal/infrastructure/db"
	"github.com/cadmin/cadmin-api/internal/infrastructure/db/redis"
	"github.com/cadmin/cadmin-api/internal/pkg/config"
	"github.com/cadmin/cadmin-api/internal/seed"
	"github.com/cadmin/cadmin-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "cadmin-api",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()
	pingers := []handler.Pinger{store.Pinger}

	var limiter ports.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, login throttling disabled")
		} else {
			defer func(c *goredis.Client) { _ = c.Close() }(rdb)
			limiter = redis.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockout)
			pingers = append(pingers, redis.NewPinger(rdb))
		}
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	if cfg.SeedOnStart {
		if _, err := seed.Run(ctx, store.Users, store.Resources, cfg.Auth.BcryptCost, log); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
	}

	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	router := api.NewRouter(api.Deps{
		Auth:        service.NewAuthService(store.Users, tokens, limiter, cfg.Auth.BcryptCost, logger.Component(log, "auth")),
		Users:       service.NewUserService(store.Users, store.Resources, cfg.Auth.BcryptCost, logger.Component(log, "users")),
		Resources:   service.NewResourceService(store.Resources, logger.Component(log, "resources")),
		Stats:       service.NewStatsService(store.Users, store.Resources),
		Pingers:     pingers,
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.Store.Driver).Msg("cadmin api listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
