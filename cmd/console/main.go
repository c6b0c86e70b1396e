// Package main is the entry point for the QMS console. It loads
// configuration, wires the credential store, the backend gateway and the
// session core together, runs the mount-time auth check, and serves the
// local web surface.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qmsagent/console/internal/api"
	"github.com/qmsagent/console/internal/api/navigation"
	"github.com/qmsagent/console/internal/core/ports"
	"github.com/qmsagent/console/internal/core/service"
	"github.com/qmsagent/console/internal/infrastructure/config"
	"github.com/qmsagent/console/internal/infrastructure/gateway"
	"github.com/qmsagent/console/internal/infrastructure/store"
	"github.com/qmsagent/console/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("backend", cfg.APIBaseURL).
		Msg("starting console")

	// --- Credential store ---
	var (
		credStore ports.CredentialStore
		rdb       *redis.Client
	)
	switch cfg.Store.Kind {
	case "redis":
		rdb, err = store.Connect(ctx, store.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("connect to redis")
		}
		defer rdb.Close()
		credStore = store.NewRedisStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis credential store")
	default:
		fileStore, err := store.NewFileStore(cfg.Store.StateDir, cfg.Store.Secret)
		if err != nil {
			log.Fatal().Err(err).Msg("open credential file store")
		}
		credStore = fileStore
	}

	// --- Session core ---
	nav := navigation.NewTracker(log)
	gw := gateway.New(cfg.APIBaseURL, time.Duration(cfg.GatewayTimeoutSeconds)*time.Second, credStore, nav, log)
	identity := service.NewIdentityService(gw, credStore, nav, log)
	sessions := service.NewSessionService(ctx, credStore, identity, log)

	// Mount-time validation: settle the session before the first page load.
	sessions.CheckAuth(ctx)

	e := api.NewRouter(api.Dependencies{
		Sessions: sessions,
		Identity: identity,
		Gateway:  gw,
		Nav:      nav,
		Redis:    rdb,
		Log:      log,
	})

	// --- Graceful shutdown ---
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
