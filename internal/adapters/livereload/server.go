package livereload

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"go.trai.ch/zerr"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the hub on an HTTP listener at /livereload.
type Server struct {
	hub    *Hub
	logger ports.Logger
	srv    *http.Server
}

// NewServer wraps the hub in an HTTP server. The listen address comes from
// configuration at Start time.
func NewServer(hub *Hub, logger ports.Logger) *Server {
	return &Server{hub: hub, logger: logger}
}

// Hub returns the underlying hub for broadcasting.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start begins serving the WebSocket endpoint. It returns once the listener
// is running; serve errors after startup are logged.
func (s *Server) Start(_ context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/livereload", s.hub)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	// Give ListenAndServe a moment to fail fast on a bad address.
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, domain.ErrServeFailed.Error())
		}
		return nil
	case <-time.After(100 * time.Millisecond):
		go func() {
			if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error(zerr.Wrap(err, domain.ErrServeFailed.Error()))
			}
		}()
		return nil
	}
}

// Shutdown closes every client connection and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
