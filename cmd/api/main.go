package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/point-ledger/internal/api"
	"github.com/baharkarakas/point-ledger/internal/auth"
	"github.com/baharkarakas/point-ledger/internal/config"
	"github.com/baharkarakas/point-ledger/internal/db"
	"github.com/baharkarakas/point-ledger/internal/ledger"
	"github.com/baharkarakas/point-ledger/internal/logger"
	"github.com/baharkarakas/point-ledger/internal/metrics"
	repo "github.com/baharkarakas/point-ledger/internal/repository"
	"github.com/baharkarakas/point-ledger/internal/repository/postgres"
	"github.com/baharkarakas/point-ledger/internal/services"
	"github.com/baharkarakas/point-ledger/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The in-memory ledger is the source of truth; Postgres is an
	// optional archive behind it.
	var archive repo.Archive = repo.NoopArchive{}
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if os.Getenv("APP_MIGRATE") == "true" {
			if err := db.RunMigrations(ctx, pool); err != nil {
				log.Error("migrations", "err", err)
				os.Exit(1)
			}
		}
		archive = postgres.NewArchive(pool)
	}

	metrics.Init()

	wp := worker.NewPool(cfg.WorkerCount)
	defer wp.Stop()

	balances := ledger.NewBalanceStore()
	history := ledger.NewHistoryStore()
	engine := ledger.NewEngine(balances, history)
	svc := services.NewPointService(engine, balances, history, archive, wp)

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTSecret+"-refresh", cfg.JWTIssuer, 15*time.Minute, 7*24*time.Hour)
	r := api.NewRouter(cfg, tm, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
