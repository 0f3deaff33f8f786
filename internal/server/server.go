package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

// Server serves the demo route table on a single listener.
type Server struct {
	addr    string
	handler http.Handler
	logger  *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
}

// Option configures a Server built by New.
type Option func(*Server)

// WithHandler replaces the default mux. Useful for tests.
func WithHandler(h http.Handler) Option {
	return func(s *Server) { s.handler = h }
}

// New builds a server bound to cfg.Host:cfg.Port with the default route table.
func New(cfg domain.ServerConfig, logger *slog.Logger, opts ...Option) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	s := &Server{
		addr:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		logger: logger,
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.handler == nil {
		table, err := Table(DefaultHandlers(logger))
		if err != nil {
			return nil, err
		}
		s.handler = NewMux(table, logger)
	}
	return s, nil
}

// ListenAndServe binds the listener and serves until ctx is done or the
// listener fails. Cancelling ctx closes the server immediately; in-flight
// requests are not drained.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return &domain.OpError{
			Op:   "server.listen",
			Kind: domain.KindBind,
			Path: s.addr,
			Err:  err,
		}
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	close(s.ready)

	srv := &http.Server{
		Handler:  s.handler,
		ErrorLog: slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	stop := context.AfterFunc(ctx, func() { _ = srv.Close() })
	defer stop()

	s.logger.Info("server.listening", "addr", ln.Addr().String())

	err = srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		s.logger.Info("server.stopped", "addr", ln.Addr().String())
		return nil
	}
	return &domain.OpError{
		Op:   "server.serve",
		Kind: domain.KindExecution,
		Path: s.addr,
		Err:  err,
	}
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr reports the bound address, or the configured one before binding.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}
