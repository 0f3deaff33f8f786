package query

import (
	"strings"
	"testing"
	"time"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

func sampleRun() domain.ProbeRun {
	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	return domain.ProbeRun{
		ID:          "20260203T101112Z_smoke",
		Name:        "smoke",
		Target:      "http://localhost:8080",
		Requests:    2,
		Concurrency: 1,
		StartedAt:   start,
		EndedAt:     start.Add(time.Second),
		Routes: []domain.RouteReport{
			{Route: "greeting", Path: "/", Latency: domain.LatencyStats{Count: 2, P95MS: 3}},
			{Route: "stress", Path: "/stress", Failures: 1, Latency: domain.LatencyStats{Count: 2, P95MS: 42}},
		},
	}
}

func TestField(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"$.name", "smoke"},
		{"$.routes[1].latency.p95_ms", "42"},
		{"$.routes[0].path", "/"},
		{"$.concurrency", "1"},
	}
	for _, c := range cases {
		val, err := Field(sampleRun(), c.expr)
		if err != nil {
			t.Errorf("Field(%q): unexpected error %v", c.expr, err)
			continue
		}
		got, err := Format(val)
		if err != nil {
			t.Errorf("Format(%v): %v", val, err)
			continue
		}
		if got != c.want {
			t.Errorf("Field(%q) = %q, want %q", c.expr, got, c.want)
		}
	}
}

func TestField_Wildcard(t *testing.T) {
	val, err := Field(sampleRun(), "$.routes[*].route")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Format(val)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if !strings.Contains(got, "greeting") || !strings.Contains(got, "stress") {
		t.Fatalf("expected both route names, got %s", got)
	}
}

func TestField_Errors(t *testing.T) {
	if _, err := Field(sampleRun(), "  "); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config for empty expr, got %v", err)
	}
	if _, err := Field(sampleRun(), "$.nope"); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found for unknown key, got %v", err)
	}
}

func TestFormat_Scalars(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"x", "x"},
		{float64(1.5), "1.5"},
		{true, "true"},
		{nil, "null"},
	}
	for _, c := range cases {
		got, err := Format(c.in)
		if err != nil || got != c.want {
			t.Errorf("Format(%v) = %q, %v; want %q", c.in, got, err, c.want)
		}
	}
}
