package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myspotontheweb/presentation-kubernetes/internal/workload"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestGreeting_Body(t *testing.T) {
	cases := []struct {
		name   string
		target string
		header map[string]string
	}{
		{"plain", "/", nil},
		{"query", "/?name=x&debug=1", nil},
		{"headers", "/", map[string]string{"Accept": "application/json", "X-Test": "1"}},
	}

	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.target, nil)
		for k, v := range c.header {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()

		Greeting().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", c.name, rec.Code)
		}
		if got := rec.Body.String(); got != "Hello World this is a demo" {
			t.Errorf("%s: unexpected body %q", c.name, got)
		}
	}
}

func TestGreeting_Idempotent(t *testing.T) {
	h := Greeting()
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Body.String() != "Hello World this is a demo" {
			t.Fatalf("call %d: unexpected body %q", i, rec.Body.String())
		}
	}
}

func TestStress_RunsFullWorkloadBeforeAnswering(t *testing.T) {
	calls := 0
	wl := workload.Default()
	wl.Sqrt = func(x float64) float64 {
		calls++
		return x
	}

	rec := httptest.NewRecorder()
	Stress(wl, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stress", nil))

	if calls != 1_000_000 {
		t.Fatalf("expected 1000000 sqrt evaluations, got %d", calls)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "Phew! Done" {
		t.Fatalf("unexpected body %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content-type %q", ct)
	}
}

func TestStress_NoStateAcrossCalls(t *testing.T) {
	calls := 0
	wl := workload.Workload{N: 10, Sqrt: func(x float64) float64 {
		calls++
		return x
	}}
	h := Stress(wl, testLogger())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stress", nil))
		if rec.Body.String() != "Phew! Done" {
			t.Fatalf("call %d: unexpected body %q", i, rec.Body.String())
		}
	}
	if calls != 30 {
		t.Fatalf("expected 10 evaluations per call, got %d total", calls)
	}
}
