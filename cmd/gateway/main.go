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

	"github.com/bourgeon/platform-gateway/internal/api"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
	"github.com/bourgeon/platform-gateway/internal/infrastructure/config"
	"github.com/bourgeon/platform-gateway/internal/infrastructure/db/memory"
	"github.com/bourgeon/platform-gateway/internal/infrastructure/db/redis"
	"github.com/bourgeon/platform-gateway/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "platform-gateway",
		Pretty:  cfg.Env == "development",
	})

	ctx := context.Background()

	// Redis backs the session and wizard stores; without REDIS_ADDR the
	// gateway falls back to in-memory stores for local development.
	var (
		rdb      *goredis.Client
		sessions ports.SessionStore
		wizards  ports.WizardStore
	)
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connection failed")
		}
		rdb = client
		sessions = redis.NewSessionStore(client, cfg.Session.TTL)
		wizards = redis.NewWizardStore(client, cfg.Session.WizardTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis stores")
	} else {
		sessions = memory.NewSessionStore(cfg.Session.TTL)
		wizards = memory.NewWizardStore(cfg.Session.WizardTTL)
		log.Warn().Msg("REDIS_ADDR not set, using in-memory stores")
	}

	e, err := api.NewRouter(cfg, rdb, sessions, wizards, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.Upstream.BaseURL).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
