package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crosslink/internal/audit"
	httpapi "crosslink/internal/http"
	"crosslink/internal/linkage"
	linkagehandler "crosslink/internal/linkage/handler"
	"crosslink/internal/linkage/metrics"
	"crosslink/internal/platform/config"
	"crosslink/internal/platform/httpserver"
	"crosslink/internal/platform/logger"
	"crosslink/internal/platform/postgres"
	platformredis "crosslink/internal/platform/redis"
	"crosslink/internal/platform/sqlite"
	"crosslink/internal/profile"
	profilehandler "crosslink/internal/profile/handler"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(logger.ParseLevel(cfg.Log.Level))

	profileStore, linkageStore, err := openStores(cfg.Store)
	if err != nil {
		log.Error("store init failed", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditStore := audit.NewInMemoryStore(1000)
	auditPub := audit.NewPublisher(256, log)
	kafkaSink, err := audit.NewKafkaSink(cfg.Kafka)
	if err != nil {
		log.Error("kafka sink init failed", "error", err)
		os.Exit(1)
	}
	defer kafkaSink.Close()
	var sink audit.Sink
	if kafkaSink != nil {
		sink = kafkaSink
	}
	go func() {
		if err := audit.NewWorker(auditStore, sink, auditPub.Inbox(), log).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	var cache linkage.NetworkCache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		cache = linkage.NewRedisNetworkCache(redisClient, cfg.Redis.CacheTTL, log)
	}

	engine := linkage.NewService(profileStore, linkageStore, log, metrics.New(), auditPub, cache, linkage.Config{
		MaxProfiles: cfg.Scan.MaxProfiles,
		Shards:      cfg.Scan.Shards,
	})
	if err := engine.Restore(ctx); err != nil {
		log.Error("snapshot restore failed", "error", err)
		os.Exit(1)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Profiles:      profilehandler.New(profileStore, log),
		Linkages:      linkagehandler.New(engine, log),
		Audit:         audit.NewHandler(auditStore),
		JWTSigningKey: cfg.Auth.SigningKey,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting crosslink", "addr", cfg.Server.Addr, "store", cfg.Store.Driver)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// openStores selects the persistence backend from config.
func openStores(cfg config.Store) (profile.Store, linkage.Store, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, nil, err
		}
		return profile.NewPostgresStore(db), linkage.NewPostgresStore(db), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return profile.NewSQLiteStore(db), linkage.NewSQLiteStore(db), nil
	default:
		profiles := profile.NewInMemoryStore()
		return profiles, linkage.NewInMemoryStore(profiles), nil
	}
}
