package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/workload"
)

// Handlers holds the handler for each named route.
type Handlers map[string]http.Handler

// DefaultHandlers wires the greeting and the default stress workload.
func DefaultHandlers(logger *slog.Logger) Handlers {
	return Handlers{
		domain.RouteGreeting: Greeting(),
		domain.RouteStress:   Stress(workload.Default(), logger),
	}
}

// Entry binds a route of the fixed table to its handler.
type Entry struct {
	Route   domain.Route
	Handler http.Handler
}

// Table builds the route table once at startup. Every route needs a handler.
func Table(h Handlers) ([]Entry, error) {
	routes := domain.Routes()
	out := make([]Entry, 0, len(routes))
	for _, r := range routes {
		handler, ok := h[r.Name]
		if !ok || handler == nil {
			return nil, &domain.OpError{
				Op:   "server.table",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("no handler for route %q", r.Name),
			}
		}
		out = append(out, Entry{Route: r, Handler: handler})
	}
	return out, nil
}

// NewMux registers the table on a ServeMux. "/" only matches the root path;
// anything else falls through to the mux's 404, and non-GET/HEAD methods get 405.
func NewMux(table []Entry, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	for _, e := range table {
		mux.Handle(pattern(e.Route), withLogging(e.Route.Name, e.Handler, logger))
	}
	return mux
}

func pattern(r domain.Route) string {
	path := r.Path
	if path == "/" {
		path = "/{$}"
	}
	return string(r.Method) + " " + path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func withLogging(route string, next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("server.request",
			"route", route,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
