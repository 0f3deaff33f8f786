package assert

import (
	"fmt"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

func Status(expected int, got int) domain.AssertionResult {
	if got == expected {
		return domain.AssertionResult{
			Name:    "status",
			Passed:  true,
			Message: fmt.Sprintf("status %d", got),
		}
	}

	return domain.AssertionResult{
		Name:    "status",
		Passed:  false,
		Message: fmt.Sprintf("expected status %d, got %d", expected, got),
	}
}

// BodyEquals is a byte-for-byte comparison. A truncated body never passes.
func BodyEquals(expected string, body []byte, truncated bool) domain.AssertionResult {
	if truncated {
		return domain.AssertionResult{
			Name:    "body",
			Passed:  false,
			Message: fmt.Sprintf("expected body %q, got a truncated body", expected),
		}
	}
	if string(body) == expected {
		return domain.AssertionResult{
			Name:    "body",
			Passed:  true,
			Message: fmt.Sprintf("body %q", expected),
		}
	}

	return domain.AssertionResult{
		Name:    "body",
		Passed:  false,
		Message: fmt.Sprintf("expected body %q, got %q", expected, string(body)),
	}
}

func MaxLatency(maxMs int, latencyMs int64) domain.AssertionResult {
	if latencyMs <= int64(maxMs) {
		return domain.AssertionResult{
			Name:    "max_ms",
			Passed:  true,
			Message: fmt.Sprintf("latency %dms <= %dms", latencyMs, maxMs),
		}
	}

	return domain.AssertionResult{
		Name:    "max_ms",
		Passed:  false,
		Message: fmt.Sprintf("expected latency <= %dms, got %dms", maxMs, latencyMs),
	}
}

// Evaluate checks an observation against the route contract: 200 and the
// exact route body, plus the optional latency ceiling. Nothing is asserted
// when the request itself failed.
func Evaluate(route domain.Route, obs domain.Observation, maxLatencyMS *int) []domain.AssertionResult {
	if obs.Error != nil {
		return nil
	}

	out := []domain.AssertionResult{
		Status(200, obs.StatusCode),
		BodyEquals(route.Body, obs.Body, obs.Truncated),
	}
	if maxLatencyMS != nil {
		out = append(out, MaxLatency(*maxLatencyMS, obs.LatencyMS))
	}
	return out
}
