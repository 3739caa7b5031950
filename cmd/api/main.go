package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/districthealth/medavail-backend/api"
	"github.com/districthealth/medavail-backend/api/routes"
	"github.com/districthealth/medavail-backend/internal/audit"
	"github.com/districthealth/medavail-backend/internal/auth"
	"github.com/districthealth/medavail-backend/internal/bloodbanks"
	"github.com/districthealth/medavail-backend/internal/hospitals"
	"github.com/districthealth/medavail-backend/internal/inventory"
	"github.com/districthealth/medavail-backend/internal/stats"
	"github.com/districthealth/medavail-backend/internal/users"
	"github.com/districthealth/medavail-backend/pkg/auth/session"
	"github.com/districthealth/medavail-backend/pkg/config"
	"github.com/districthealth/medavail-backend/pkg/db"
	"github.com/districthealth/medavail-backend/pkg/freshness"
	"github.com/districthealth/medavail-backend/pkg/logger"
	"github.com/districthealth/medavail-backend/pkg/metrics"
	"github.com/districthealth/medavail-backend/pkg/migrate"
	"github.com/districthealth/medavail-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	thresholds := freshness.FromConfig(cfg.Freshness)
	inventoryMetrics := metrics.NewInventoryMetrics(prometheus.DefaultRegisterer)
	auditRepo := audit.NewRepository(dbClient.DB())

	services, err := buildServices(cfg, logg, dbClient, sessionManager, auditRepo, inventoryMetrics, thresholds)
	if err != nil {
		logg.Error(context.Background(), "failed to create services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	handler := routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, promhttp.Handler(), services)
	if err := api.Serve(ctx, api.NewServer(addr, handler), logg, api.ShutdownTimeout); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		return
	}

	logg.Info(ctx, "api server shut down gracefully")
}

func buildServices(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	sessionManager *session.Manager,
	auditRepo *audit.Repository,
	inventoryMetrics *metrics.InventoryMetrics,
	thresholds freshness.Thresholds,
) (routes.Services, error) {
	var out routes.Services
	var err error

	out.Auth, err = auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		return out, err
	}

	out.Inventory, err = inventory.NewService(inventory.ServiceParams{
		Repo:            inventory.NewRepository(),
		Audit:           auditRepo,
		DB:              dbClient,
		Logger:          logg,
		Metrics:         inventoryMetrics,
		EnforceCapacity: cfg.Inventory.EnforceCapacity,
	})
	if err != nil {
		return out, err
	}

	out.Audit, err = audit.NewService(auditRepo)
	if err != nil {
		return out, err
	}

	out.Stats, err = stats.NewService(stats.ServiceParams{
		Repo:       stats.NewRepository(dbClient.DB()),
		Thresholds: thresholds,
	})
	if err != nil {
		return out, err
	}

	out.Hospitals, err = hospitals.NewService(hospitals.ServiceParams{
		Repo:       hospitals.NewRepository(dbClient.DB()),
		DB:         dbClient,
		Logger:     logg,
		Thresholds: thresholds,
	})
	if err != nil {
		return out, err
	}

	out.BloodBanks, err = bloodbanks.NewService(bloodbanks.NewRepository(dbClient.DB()))
	return out, err
}
