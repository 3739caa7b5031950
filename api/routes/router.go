package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/districthealth/medavail-backend/api/controllers"
	"github.com/districthealth/medavail-backend/api/middleware"
	"github.com/districthealth/medavail-backend/internal/audit"
	"github.com/districthealth/medavail-backend/internal/auth"
	"github.com/districthealth/medavail-backend/internal/bloodbanks"
	"github.com/districthealth/medavail-backend/internal/hospitals"
	"github.com/districthealth/medavail-backend/internal/inventory"
	"github.com/districthealth/medavail-backend/internal/stats"
	"github.com/districthealth/medavail-backend/pkg/auth/session"
	"github.com/districthealth/medavail-backend/pkg/config"
	"github.com/districthealth/medavail-backend/pkg/db"
	"github.com/districthealth/medavail-backend/pkg/logger"
	"github.com/districthealth/medavail-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Services groups the domain services exposed over HTTP.
type Services struct {
	Auth       auth.Service
	Inventory  inventory.Service
	Audit      audit.Service
	Stats      stats.Service
	Hospitals  hospitals.Service
	BloodBanks bloodbanks.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager sessionManager,
	metricsHandler http.Handler,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	loginLimiter := func(next http.Handler) http.Handler { return next }
	var redisPinger controllers.Pinger
	if redisClient != nil {
		loginLimiter = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/hospitals", controllers.PublicHospitals(svc.Hospitals, logg))
		r.Post("/hospitals/register", controllers.PublicRegisterHospital(svc.Hospitals, logg))
		r.Get("/bloodbanks", controllers.PublicBloodBanks(svc.BloodBanks, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter).Post("/login", controllers.AuthLogin(svc.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
			r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

			r.Post("/hospitals/{hospitalId}/beds", controllers.UpdateBeds(svc.Inventory, logg))
			r.Post("/bloodbanks/{bloodBankId}/stock", controllers.UpdateBloodStock(svc.Inventory, logg))
			r.Get("/audit/{entityId}", controllers.AuditList(svc.Audit, logg))
			r.Get("/stats", controllers.DistrictStats(svc.Stats, logg))
		})
	})

	return r
}
