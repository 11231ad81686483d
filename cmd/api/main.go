// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

// Command api is the entry point for the Biblio HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to MongoDB.
//  4. Connect to Redis (optional, statistics cache).
//  5. Ensure collections and indexes exist (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/marcodallan/biblio/internal/api"
	"github.com/marcodallan/biblio/internal/catalog/author"
	"github.com/marcodallan/biblio/internal/catalog/book"
	"github.com/marcodallan/biblio/internal/catalog/category"
	"github.com/marcodallan/biblio/internal/loan"
	"github.com/marcodallan/biblio/internal/member"
	"github.com/marcodallan/biblio/internal/platform/bootstrap"
	"github.com/marcodallan/biblio/internal/platform/config"
	"github.com/marcodallan/biblio/internal/platform/constants"
	"github.com/marcodallan/biblio/internal/platform/mongodb"
	redisstore "github.com/marcodallan/biblio/internal/platform/redis"
	"github.com/marcodallan/biblio/internal/stats"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Biblio] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. MongoDB ────────────────────────────────────────────────────────
	client, err := mongodb.Connect(startupCtx, cfg.MongoURI, log)
	must(log, err, "connect to mongodb")
	defer mongodb.Disconnect(context.Background(), client, log)

	db := client.Database(cfg.MongoDatabase)

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.CacheEnabled() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	} else {
		log.Info("stats_cache_disabled")
	}

	// ── 5. Schema Bootstrap ───────────────────────────────────────────────
	must(log, bootstrap.EnsureSchema(startupCtx, db, log), "ensure schema")

	// ── 6. Health handlers (wired with real dependency checkers) ─────────
	// With caching disabled the readiness probe simply skips the Redis check.
	var checkCache func() error
	if rdb != nil {
		checkCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckStore: func() error {
			return mongodb.Ping(context.Background(), client)
		},
		CheckCache: checkCache,
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	authorRepository := author.NewMongoRepository(db)
	authorService := author.NewService(authorRepository, log)

	categoryRepository := category.NewMongoRepository(db)
	categoryService := category.NewService(categoryRepository, log)

	bookRepository := book.NewMongoRepository(db)
	bookService := book.NewService(bookRepository, categoryRepository, log)

	memberRepository := member.NewMongoRepository(db)
	memberService := member.NewService(memberRepository, log)

	loanRepository := loan.NewMongoRepository(db)
	loanService := loan.NewService(loanRepository, bookRepository, memberRepository, log,
		loan.WithDefaultPeriod(cfg.LoanPeriodDays),
	)

	statsRepository := stats.NewMongoRepository(db)
	statsOptions := []stats.Option{}
	if rdb != nil {
		statsOptions = append(statsOptions, stats.WithCache(stats.NewRedisCache(rdb), cfg.StatsCacheTTL))
	}
	statsService := stats.NewService(statsRepository, log, statsOptions...)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Author:    author.NewHandler(authorService),
		Category:  category.NewHandler(categoryService),
		Book:      book.NewHandler(bookService),
		Member:    member.NewHandler(memberService),
		Loan:      loan.NewHandler(loanService),
		Stats:     stats.NewHandler(statsService),
	}

	server := api.NewServer(context.Background(), cfg, log, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
