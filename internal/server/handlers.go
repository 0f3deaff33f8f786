package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/workload"
)

const contentType = "text/html; charset=utf-8"

// Greeting answers with the static greeting.
func Greeting() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, domain.GreetingBody)
	}
}

// Stress runs wl to completion on the request goroutine and then answers.
// Client disconnects do not interrupt the loop.
func Stress(wl workload.Workload, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := wl.Run()
		logger.Debug("stress.done",
			"evaluations", res.Evaluations,
			"sum", res.Sum,
			"elapsed_ms", res.Elapsed.Milliseconds(),
			"remote", r.RemoteAddr,
		)
		writeText(w, domain.StressBody)
	}
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}
