package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ariafatah0711/ctfs-sub001/internal/app"
	"github.com/ariafatah0711/ctfs-sub001/internal/clock"
	"github.com/ariafatah0711/ctfs-sub001/internal/config"
	"github.com/ariafatah0711/ctfs-sub001/internal/logging"
	"github.com/ariafatah0711/ctfs-sub001/internal/maintenance"
	"github.com/ariafatah0711/ctfs-sub001/internal/observability/metrics"
	"github.com/ariafatah0711/ctfs-sub001/internal/storage/memory"
	"github.com/ariafatah0711/ctfs-sub001/internal/storage/postgres"
	redisstore "github.com/ariafatah0711/ctfs-sub001/internal/storage/redis"
	transporthttp "github.com/ariafatah0711/ctfs-sub001/internal/transport/http"
	"github.com/ariafatah0711/ctfs-sub001/migrations"
)

const serviceName = "ctf-api"

func main() {
	bootLogger, _ := zap.NewProduction()
	config.LoadEnvFile(bootLogger)

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Fatal("load config", zap.Error(err))
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		bootLogger.Fatal("build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	metrics.Init(nil)

	mode := maintenance.ParseMode(cfg.Maintenance.Mode)
	clk := clock.NewSystem()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	migrated := false
	if err := pool.Ping(startupCtx); err != nil {
		// In auto mode an unreachable database is what the gate reports.
		if mode != maintenance.ModeAuto {
			logger.Fatal("db ping", zap.Error(err))
		}
		logger.Warn("db unreachable at startup, migrations deferred until it answers", zap.Error(err))
	} else if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	} else {
		migrated = true
	}

	selectionStore, closeStore := newSelectionStore(startupCtx, cfg, logger)
	defer closeStore()

	gate, err := newGate(mode, cfg, pool, migrated, clk, logger)
	if err != nil {
		logger.Fatal("build maintenance gate", zap.Error(err))
	}
	logger.Info("maintenance gate ready", zap.String("mode", string(gate.Mode())))

	eventRepo := postgres.NewEventRepository(pool)
	eventSvc := app.NewEventService(eventRepo, clk)
	adminSvc := app.NewAdminService(eventRepo, clk)
	selectionSvc := app.NewSelectionService(selectionStore, eventRepo, clk)

	var adminGuard func(http.Handler) http.Handler = transporthttp.RequireAdmin
	if cfg.JWTSecret == "" {
		logger.Warn("AUTH_JWT_SECRET not set, admin endpoints are unauthenticated")
		adminGuard = func(next http.Handler) http.Handler { return next }
	}

	mux := http.NewServeMux()
	mux.Handle("/health", transporthttp.HandleHealth(gate))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle(cfg.Maintenance.PagePath, transporthttp.MaintenancePageHandler())
	mux.Handle("/api/events", transporthttp.HandleListEvents(eventSvc))
	mux.Handle("/api/events/selection", transporthttp.HandleSelection(selectionSvc))
	mux.Handle("/admin/events", adminGuard(transporthttp.HandleAdminEvents(adminSvc, clk)))
	mux.Handle("/admin/events/", adminGuard(transporthttp.HandleAdminEvent(adminSvc)))
	mux.Handle("/", transporthttp.NotFoundHandler())

	routes := transporthttp.MaintenanceRoutes{
		PagePath: cfg.Maintenance.PagePath,
		HomePath: cfg.Maintenance.HomePath,
		Exempt:   cfg.Maintenance.ExemptPaths,
	}
	var handler http.Handler = transporthttp.Identity([]byte(cfg.JWTSecret), logger, mux)
	handler = transporthttp.Maintenance(gate, routes, handler)
	handler = transporthttp.CORS(cfg.CORSOrigins, handler)
	handler = transporthttp.RequestLogger(handler, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("api listening", zap.String("addr", server.Addr))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newSelectionStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (app.SelectionStore, func()) {
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, keeping selections in memory")
		return memory.NewSelectionStore(), func() {}
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := redisstore.NewSelectionStore(client, redisstore.WithTTL(cfg.Redis.SelectionTTL))
	if err := store.Ping(ctx); err != nil {
		logger.Warn("redis ping failed", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	return store, func() { _ = client.Close() }
}

func newGate(mode maintenance.Mode, cfg config.Config, pool *pgxpool.Pool, migrated bool, clk clock.Clock, logger *zap.Logger) (*maintenance.Gate, error) {
	var prober maintenance.Prober
	if mode == maintenance.ModeAuto {
		switch cfg.Maintenance.Probe {
		case "rest":
			rest, err := maintenance.NewRESTProber(cfg.Backend.RESTURL, cfg.Backend.APIKey, cfg.Maintenance.ProbeTable, cfg.Maintenance.ProbeTimeout)
			if err != nil {
				return nil, err
			}
			prober = rest
		default:
			prober = maintenance.NewPostgresProber(pool, cfg.Maintenance.ProbeTable)
		}

		if !migrated {
			prober = maintenance.NewReachableHook(prober, nil,
				func(ctx context.Context) error {
					if err := migrations.Apply(ctx, pool); err != nil {
						return err
					}
					logger.Info("applied deferred migrations")
					return nil
				},
				func(err error) {
					logger.Warn("deferred migrations failed, retrying on next probe", zap.Error(err))
				},
			)
		}
	}

	return maintenance.NewGate(mode, prober,
		maintenance.WithClock(clk),
		maintenance.WithTTL(cfg.Maintenance.TTL),
		maintenance.WithProbeTimeout(cfg.Maintenance.ProbeTimeout),
		maintenance.WithLogger(logger.Named("maintenance")),
	)
}
