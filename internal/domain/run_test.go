package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

func TestClassifyRunError_Timeout_ContextDeadline(t *testing.T) {
	if got := ClassifyRunError(context.DeadlineExceeded); got != RunErrorTimeout {
		t.Fatalf("expected timeout, got=%s", got)
	}
}

func TestClassifyRunError_DNS(t *testing.T) {
	err := &net.DNSError{Err: "no such host", Name: "example.invalid"}
	if got := ClassifyRunError(err); got != RunErrorDNS {
		t.Fatalf("expected dns, got=%s", got)
	}
}

func TestClassifyRunError_ConnRefused(t *testing.T) {
	err := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	if got := ClassifyRunError(err); got != RunErrorConn {
		t.Fatalf("expected conn, got=%s", got)
	}
}

func TestClassifyRunError_URLWraps(t *testing.T) {
	inner := &net.DNSError{Err: "no such host", Name: "x.invalid"}
	err := &url.Error{Op: "Get", URL: "http://x.invalid", Err: inner}

	if got := ClassifyRunError(err); got != RunErrorDNS {
		t.Fatalf("expected dns, got=%s", got)
	}
}

func TestClassifyRunError_Unknown(t *testing.T) {
	if got := ClassifyRunError(errors.New("boom")); got != RunErrorUnknown {
		t.Fatalf("expected unknown, got=%s", got)
	}
}

func TestNewRunError(t *testing.T) {
	if NewRunError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}

	re := NewRunError(fmt.Errorf("get: %w", context.DeadlineExceeded))
	if re.Kind != RunErrorTimeout {
		t.Fatalf("expected timeout, got=%s", re.Kind)
	}
	if re.Message == "" {
		t.Fatalf("expected message")
	}
}

func TestRequestResult_Failed(t *testing.T) {
	cases := []struct {
		name string
		in   RequestResult
		want bool
	}{
		{"empty", RequestResult{}, false},
		{"error", RequestResult{Error: &RunError{Kind: RunErrorConn}}, true},
		{"assert fail", RequestResult{Assertions: []AssertionResult{{Passed: true}, {Passed: false}}}, true},
		{"all pass", RequestResult{Assertions: []AssertionResult{{Passed: true}}}, false},
	}
	for _, c := range cases {
		if got := c.in.Failed(); got != c.want {
			t.Errorf("%s: Failed() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestProbeRun_FailuresAndSummary(t *testing.T) {
	run := ProbeRun{
		ID:     "r1",
		Name:   "smoke",
		Target: "http://localhost:8080",
		Routes: []RouteReport{{Failures: 2}, {Failures: 1}},
	}
	if run.Failures() != 3 {
		t.Fatalf("expected 3 failures, got %d", run.Failures())
	}

	s := run.Summary()
	if s.ID != "r1" || s.Failures != 3 || s.Name != "smoke" {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestComputeLatency(t *testing.T) {
	samples := []int64{50, 10, 40, 20, 30}
	got := ComputeLatency(samples)

	if got.Count != 5 || got.MinMS != 10 || got.MaxMS != 50 {
		t.Fatalf("unexpected bounds: %+v", got)
	}
	if got.MeanMS != 30 {
		t.Fatalf("expected mean 30, got %v", got.MeanMS)
	}
	if got.P50MS != 30 {
		t.Fatalf("expected p50 30, got %d", got.P50MS)
	}
	if got.P95MS != 50 {
		t.Fatalf("expected p95 50, got %d", got.P95MS)
	}
	if samples[0] != 50 {
		t.Fatalf("expected input not to be sorted in place")
	}
}

func TestComputeLatency_Empty(t *testing.T) {
	if got := ComputeLatency(nil); got != (LatencyStats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}
