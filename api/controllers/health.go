package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/districthealth/medavail-backend/api/responses"
	"github.com/districthealth/medavail-backend/pkg/config"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/logger"
)

const (
	envHeader         = "X-MedAvail-Env"
	readyCheckTimeout = 2 * time.Second
)

// Pinger is any dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and redis. Either failing yields 503.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbPinger, redisPinger Pinger) http.HandlerFunc {
	checks := []struct {
		name   string
		pinger Pinger
	}{
		{"database", dbPinger},
		{"redis", redisPinger},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		status := map[string]string{}
		var failed []string
		for _, check := range checks {
			if check.pinger == nil {
				status[check.name] = "skipped"
				continue
			}
			if err := check.pinger.Ping(ctx); err != nil {
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", check.name), "readiness check failed", err)
				}
				status[check.name] = "down"
				failed = append(failed, check.name)
				continue
			}
			status[check.name] = "up"
		}

		if len(failed) > 0 {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").
				WithDetails(map[string]any{"failed": failed})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status["status"] = "ready"
		responses.WriteSuccess(w, status)
	}
}
