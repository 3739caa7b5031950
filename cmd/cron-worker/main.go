package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/districthealth/medavail-backend/api"
	"github.com/districthealth/medavail-backend/internal/cron"
	"github.com/districthealth/medavail-backend/internal/stats"
	"github.com/districthealth/medavail-backend/pkg/config"
	"github.com/districthealth/medavail-backend/pkg/db"
	"github.com/districthealth/medavail-backend/pkg/freshness"
	"github.com/districthealth/medavail-backend/pkg/logger"
	"github.com/districthealth/medavail-backend/pkg/metrics"
	"github.com/districthealth/medavail-backend/pkg/migrate"
	"github.com/districthealth/medavail-backend/pkg/redis"
)

func main() {
	once := flag.Bool("once", false, "run a single cycle and exit")
	jobName := flag.String("job", "", "with -once, run only the named job")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := api.CloseAll(redisClient, dbClient); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	statsService, err := stats.NewService(stats.ServiceParams{
		Repo:       stats.NewRepository(dbClient.DB()),
		Thresholds: freshness.FromConfig(cfg.Freshness),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	staleJob, err := cron.NewStaleHospitalsJob(cron.StaleHospitalsJobParams{
		Logger:  logg,
		Stats:   statsService,
		Metrics: metrics.NewInventoryMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stale hospitals job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker"), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(staleJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	if *once {
		var names []string
		if *jobName != "" {
			names = append(names, *jobName)
		}
		logg.Info(ctx, "running single cron cycle")
		if err := service.RunOnce(ctx, names...); err != nil {
			logg.Error(ctx, "cron cycle failed", err)
			os.Exit(1)
		}
		return
	}

	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		return
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}
