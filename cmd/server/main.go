// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Command server runs the Spark personalization API.
//
// Startup order:
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. Snapshot store (memory, badger or redis)
//  4. Event bus (in-process channel or NATS JetStream)
//  5. Session tokens and registry
//  6. Candidate sources behind rate limit, circuit breaker and cache
//  7. Recommendation engine and feed service
//  8. HTTP router and the supervisor tree
//
// SIGINT and SIGTERM cancel the tree. The HTTP server drains, the session
// janitor flushes every live session, then the bus and the store close.
//
// Example:
//
//	export YOUTUBE_API_KEY=...
//	export JWT_SECRET=$(openssl rand -hex 32)
//	export STORE_BACKEND=badger BADGER_PATH=/data/spark
//	./spark
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/spark/internal/api"
	"github.com/tomtom215/spark/internal/cache"
	"github.com/tomtom215/spark/internal/config"
	"github.com/tomtom215/spark/internal/events"
	"github.com/tomtom215/spark/internal/feed"
	"github.com/tomtom215/spark/internal/logging"
	"github.com/tomtom215/spark/internal/recommend"
	"github.com/tomtom215/spark/internal/session"
	"github.com/tomtom215/spark/internal/source"
	"github.com/tomtom215/spark/internal/store"
	"github.com/tomtom215/spark/internal/supervisor"
	"github.com/tomtom215/spark/internal/supervisor/services"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Server stopped")
}

//nolint:gocyclo // sequential wiring
func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Logger()
	logger.Info().
		Str("version", version).
		Str("store", cfg.Store.Backend).
		Str("feed_source", cfg.Feed.Source).
		Bool("nats", cfg.NATS.Enabled).
		Msg("Starting Spark")

	sink, err := store.New(ctx, store.Options{
		Backend:       store.Backend(cfg.Store.Backend),
		BadgerPath:    cfg.Store.BadgerPath,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisPrefix:   cfg.Redis.Prefix,
		RedisTTL:      cfg.Redis.TTL,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close store")
		}
	}()

	bus, err := events.New(events.Config{
		NATSEnabled:    cfg.NATS.Enabled,
		NATSURL:        cfg.NATS.URL,
		QueueGroup:     cfg.NATS.QueueGroup,
		DurableName:    cfg.NATS.DurableName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		AckWaitTimeout: cfg.NATS.AckWaitTimeout,
		BufferSize:     cfg.NATS.BufferSize,
	}, logger)
	if err != nil {
		return fmt.Errorf("create event bus: %w", err)
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close event bus")
		}
	}()

	tokens, err := session.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	if err != nil {
		return fmt.Errorf("create token manager: %w", err)
	}
	if tokens.Generated() {
		logger.Warn().Msg("JWT_SECRET is not set; using a random secret, session tokens will not survive a restart")
	}

	sessions := session.NewRegistry(sink, session.Config{
		Capacity:       cfg.Sessions.Capacity,
		IdleTimeout:    cfg.Sessions.IdleTimeout,
		SweepInterval:  cfg.Feed.AutoRefreshInterval,
		PreferredRatio: cfg.Feed.PreferredRatio,
		Observer:       bus.Observer(),
	}, logger)

	engine, err := recommend.NewEngine(&cfg.Recommend, logger)
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}

	pageCache := cache.NewTTL[source.Page](cache.Options{
		Name: "page-cache",
		TTL:  cfg.Feed.CacheDuration,
	})
	srcs, err := buildSources(ctx, cfg, pageCache)
	if err != nil {
		return err
	}

	var feedSvc *feed.Service
	if primary := srcs.primary(cfg.Feed.Source); primary != nil {
		feedSvc = feed.NewService(primary, engine, cfg.Feed.DefaultRegion, logger)
	} else {
		logger.Warn().Str("source", cfg.Feed.Source).Msg("Feed source has no credentials; /api/feed will answer 503")
	}

	recorder := events.NewRecorder(bus, logger)
	handler := api.NewHandler(api.Deps{
		Sessions: sessions,
		Tokens:   tokens,
		Engine:   engine,
		Feed:     feedSvc,
		YouTube:  srcs.youtube,
		Twitch:   srcs.twitch,
		Events:   recorder,
		Version:  version,
	})

	router := api.NewRouter(handler, api.RouterConfig{
		CORSAllowedOrigins:   cfg.Security.CORSOrigins,
		CORSAllowCredentials: cfg.Security.CORSAllowCredentials,
		RateLimitRequests:    cfg.Security.RateLimitReqs,
		RateLimitWindow:      cfg.Security.RateLimitWindow,
		RateLimitDisabled:    cfg.Security.RateLimitDisabled,
		SessionRateLimit:     cfg.Security.SessionRateLimit,
		RequestTimeout:       cfg.Server.RequestTimeout,
		SlowRequest:          cfg.Server.SlowRequest,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if gc := store.NewGCService(sink, 0, logger); gc != nil {
		tree.AddDataService(gc)
	}
	tree.AddDataService(pageCache)
	tree.AddEventsService(recorder)
	tree.AddAPIService(sessions)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout, logger))

	err = tree.Serve(ctx)
	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, u := range report {
			logger.Warn().Str("service", u.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}
	return nil
}
