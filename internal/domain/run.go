package domain

import (
	"context"
	"errors"
	"math"
	"net"
	"net/url"
	"sort"
	"syscall"
	"time"
)

// RunErrorKind is a high-level classification of runtime errors.
type RunErrorKind string

const (
	RunErrorUnknown RunErrorKind = "unknown"
	RunErrorTimeout RunErrorKind = "timeout"
	RunErrorDNS     RunErrorKind = "dns"
	RunErrorConn    RunErrorKind = "connection"
	RunErrorHTTP    RunErrorKind = "http"
)

// RunError represents a structured error produced by the probe runner.
type RunError struct {
	Kind    RunErrorKind `json:"kind"`
	Message string       `json:"message"`
}

// NewRunError classifies err and returns nil for a nil error.
func NewRunError(err error) *RunError {
	if err == nil {
		return nil
	}
	return &RunError{Kind: ClassifyRunError(err), Message: err.Error()}
}

// ClassifyRunError maps transport errors to a RunErrorKind.
func ClassifyRunError(err error) RunErrorKind {
	if err == nil {
		return RunErrorUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return RunErrorTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return RunErrorDNS
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return RunErrorTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return RunErrorTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return RunErrorConn
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return RunErrorConn
	}

	return RunErrorUnknown
}

// AssertionResult is the output of a single assertion.
type AssertionResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// ProbeSpec describes one probe run against a demo server.
type ProbeSpec struct {
	Name         string
	Target       string
	Routes       []Route
	Requests     int
	Concurrency  int
	MaxLatencyMS *int
}

// RequestResult represents the outcome of a single probe request.
type RequestResult struct {
	Seq        int               `json:"seq"`
	StatusCode int               `json:"status_code"`
	LatencyMS  int64             `json:"latency_ms"`
	BodyBytes  int               `json:"body_bytes"`
	Assertions []AssertionResult `json:"assertions,omitempty"`
	Error      *RunError         `json:"error,omitempty"`
}

// Failed reports whether the request errored or any assertion failed.
func (r RequestResult) Failed() bool {
	if r.Error != nil {
		return true
	}
	for _, a := range r.Assertions {
		if !a.Passed {
			return true
		}
	}
	return false
}

// LatencyStats summarizes latencies of completed round-trips.
type LatencyStats struct {
	Count  int     `json:"count"`
	MinMS  int64   `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	P50MS  int64   `json:"p50_ms"`
	P95MS  int64   `json:"p95_ms"`
	MaxMS  int64   `json:"max_ms"`
}

// RouteReport aggregates the results for one route.
type RouteReport struct {
	Route    string          `json:"route"`
	Path     string          `json:"path"`
	URL      string          `json:"url"`
	Failures int             `json:"failures"`
	Latency  LatencyStats    `json:"latency"`
	Results  []RequestResult `json:"results"`
}

// ProbeRun is the persisted artifact of a probe.
type ProbeRun struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	Target      string        `json:"target"`
	Requests    int           `json:"requests"`
	Concurrency int           `json:"concurrency"`
	StartedAt   time.Time     `json:"started_at"`
	EndedAt     time.Time     `json:"ended_at"`
	Routes      []RouteReport `json:"routes"`
}

// Failures counts failed requests across all routes.
func (r ProbeRun) Failures() int {
	n := 0
	for _, rr := range r.Routes {
		n += rr.Failures
	}
	return n
}

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Target    string    `json:"target"`
	StartedAt time.Time `json:"started_at"`
	Failures  int       `json:"failures"`
}

// Summary returns the listing view of the run.
func (r ProbeRun) Summary() RunSummary {
	return RunSummary{
		ID:        r.ID,
		Name:      r.Name,
		Target:    r.Target,
		StartedAt: r.StartedAt,
		Failures:  r.Failures(),
	}
}

// ComputeLatency uses nearest-rank percentiles. samples is not modified.
func ComputeLatency(samples []int64) LatencyStats {
	if len(samples) == 0 {
		return LatencyStats{}
	}

	sorted := make([]int64, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum int64
	for _, s := range sorted {
		sum += s
	}

	return LatencyStats{
		Count:  len(sorted),
		MinMS:  sorted[0],
		MeanMS: float64(sum) / float64(len(sorted)),
		P50MS:  percentile(sorted, 50),
		P95MS:  percentile(sorted, 95),
		MaxMS:  sorted[len(sorted)-1],
	}
}

func percentile(sorted []int64, p float64) int64 {
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// Observation is what a runner saw for one request, before assertions.
type Observation struct {
	StatusCode int
	LatencyMS  int64
	Body       []byte
	Truncated  bool
	Error      *RunError
}
