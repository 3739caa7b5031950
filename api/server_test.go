package api

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseAllJoinsErrors(t *testing.T) {
	var closed int
	ok := closerFunc(func() error { closed++; return nil })
	errA := errors.New("db close")
	errB := errors.New("redis close")

	err := CloseAll(ok, closerFunc(func() error { return errA }), nil, closerFunc(func() error { return errB }))
	require.Error(t, err)
	assert.Equal(t, 1, closed)
	assert.ElementsMatch(t, []error{errA, errB}, multierr.Errors(err))

	assert.NoError(t, CloseAll(ok))
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv := NewServer(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, nil, time.Second) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeReturnsListenError(t *testing.T) {
	srv := NewServer("127.0.0.1:-1", http.NotFoundHandler())
	err := Serve(context.Background(), srv, nil, time.Second)
	assert.Error(t, err)
}
