// Command server runs the BeerList HTTP API.
//
//	@title			BeerList API
//	@version		1.0
//	@description	Beer list CRUD with session-gated writes.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/beerlist/beerlist/internal/api"
	"github.com/beerlist/beerlist/internal/api/handler"
	"github.com/beerlist/beerlist/internal/api/session"
	"github.com/beerlist/beerlist/internal/infrastructure/db/mongo"
	"github.com/beerlist/beerlist/internal/infrastructure/db/redis"
	"github.com/beerlist/beerlist/internal/pkg/config"
	"github.com/beerlist/beerlist/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	base := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "beerlist",
	})
	log := logger.Component("server")

	ctx := context.Background()

	store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to mongodb")
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = store.Close(closeCtx)
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Error().Err(err).Msg("failed to create indexes")
		return err
	}

	checks := map[string]handler.Check{"mongodb": store.Ping}

	var sessionStore sessions.Store
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Error().Err(err).Msg("failed to connect to redis")
			return err
		}
		defer rdb.Close()

		sessionStore = redis.NewSessionStore(rdb, []byte(cfg.Session.Secret), cfg.Session.TTL)
		checks["redis"] = pingRedis(rdb)
	default:
		sessionStore = session.NewCookieStore([]byte(cfg.Session.Secret), cfg.Session.TTL)
	}

	e := api.NewRouter(api.Deps{
		Beers:       mongo.NewBeerRepository(store.DB),
		Users:       mongo.NewUserRepository(store.DB),
		Sessions:    sessionStore,
		SessionName: cfg.Session.Name,
		Logger:      base,
		Checks:      checks,
		Registerer:  prometheus.DefaultRegisterer,
		Gatherer:    prometheus.DefaultGatherer,
		PublicDir:   cfg.PublicDir,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("session_backend", cfg.Session.Backend).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func pingRedis(rdb *goredis.Client) handler.Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
