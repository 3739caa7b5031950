package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/districthealth/medavail-backend/pkg/config"
	"github.com/districthealth/medavail-backend/pkg/db/dbtest"
	"github.com/districthealth/medavail-backend/pkg/redis"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("unreachable") }

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	rec := httptest.NewRecorder()
	HealthLive(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev", rec.Header().Get(envHeader))
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	dbClient, _ := dbtest.Client(t)
	mr := miniredis.RunT(t)
	redisClient := redis.NewFromRaw(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = redisClient.Close() })

	t.Run("all up", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthReady(cfg, testLogger(), dbClient, redisClient).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		decodeData(t, rec, &body)
		assert.Equal(t, "up", body["database"])
		assert.Equal(t, "up", body["redis"])
	})

	t.Run("dependency down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthReady(cfg, testLogger(), dbClient, failingPinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "DEPENDENCY_ERROR", decodeErrorCode(t, rec))
	})
}
