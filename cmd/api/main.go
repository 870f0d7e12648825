package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/georgemunganga/restaurant-pos/internal/app"
	"github.com/georgemunganga/restaurant-pos/internal/config"
	"github.com/georgemunganga/restaurant-pos/internal/jobs/tablesweep"
	"github.com/georgemunganga/restaurant-pos/internal/platform/database"
	"github.com/georgemunganga/restaurant-pos/internal/platform/logging"
	"github.com/georgemunganga/restaurant-pos/internal/platform/notify"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(os.Stdout, "restaurant-pos", cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "action", "shutdown", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Storage ─────────────────────────────────────────────
	db, err := database.Open(ctx, logger, cfg.DatabaseDriver, cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db, logger); err != nil {
			return err
		}
	}

	// ── Notifications ───────────────────────────────────────
	var publisher notify.Publisher = notify.NewLogPublisher(logger)
	if cfg.RabbitMQURL != "" {
		rabbit, err := notify.DialRabbit(cfg.RabbitMQURL, cfg.NotifyExchange)
		if err != nil {
			return err
		}
		defer rabbit.Close()
		publisher = rabbit
		logger.Info("publishing events to rabbitmq", "action", "notify", "exchange", cfg.NotifyExchange)
	}
	notifier := notify.NewNotifier(publisher, logger, cfg.NotifyTimeout)

	// ── Modules ─────────────────────────────────────────────
	services := app.NewServices(app.PostgresRepositories(db), notifier,
		app.AuthConfig{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL}, logger)
	if !cfg.AuthEnabled() {
		logger.Warn("JWT_SECRET not set, API routes are unauthenticated", "action", "startup")
	}

	// ── Background jobs ─────────────────────────────────────
	if cfg.TableSweepSchedule != "" {
		sweeps, err := tablesweep.New(services.Tables, logger).Start(cfg.TableSweepSchedule)
		if err != nil {
			return err
		}
		defer func() { <-sweeps.Stop().Done() }()
	}

	// ── Server ──────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           app.NewRouter(services, logger, cfg.RequestTimeout, cfg.AuthEnabled()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("restaurant POS API starting", "action", "startup", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "action", "shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
