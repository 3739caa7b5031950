package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/districthealth/medavail-backend/pkg/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second

	// ShutdownTimeout bounds how long in-flight requests may drain.
	ShutdownTimeout = 15 * time.Second
)

// NewServer returns an http.Server with the API's timeouts applied.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// Serve runs srv until ctx is cancelled, then drains it within the timeout.
func Serve(ctx context.Context, srv *http.Server, logg *logger.Logger, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	if logg != nil {
		logg.Info(ctx, "api server draining")
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// CloseAll closes every resource and joins the failures.
func CloseAll(closers ...io.Closer) error {
	var err error
	for _, c := range closers {
		if c == nil {
			continue
		}
		err = multierr.Append(err, c.Close())
	}
	return err
}
