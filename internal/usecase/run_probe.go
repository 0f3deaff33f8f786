package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/ports"
	ucassert "github.com/myspotontheweb/presentation-kubernetes/internal/usecase/assert"
)

type RunProbe struct {
	runner ports.RequestRunner
	store  ports.ArtifactStore
	now    func() time.Time
}

type ProbeOption func(*RunProbe)

// WithClock is useful for tests.
func WithClock(now func() time.Time) ProbeOption {
	return func(uc *RunProbe) { uc.now = now }
}

// NewRunProbe wires a probe. store may be nil to skip saving.
func NewRunProbe(rr ports.RequestRunner, store ports.ArtifactStore, opts ...ProbeOption) *RunProbe {
	uc := &RunProbe{
		runner: rr,
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute probes each route in turn, keeping at most spec.Concurrency requests
// in flight. It returns the run, the stored run ID (empty when not saved) and
// the first error. On cancellation the partial run is returned with ctx.Err().
func (uc *RunProbe) Execute(ctx context.Context, spec domain.ProbeSpec) (domain.ProbeRun, string, error) {
	if err := validateSpec(spec); err != nil {
		return domain.ProbeRun{}, "", err
	}

	run := domain.ProbeRun{
		Name:        spec.Name,
		Target:      spec.Target,
		Requests:    spec.Requests,
		Concurrency: spec.Concurrency,
		StartedAt:   uc.now(),
		Routes:      make([]domain.RouteReport, 0, len(spec.Routes)),
	}
	if strings.TrimSpace(run.Name) == "" {
		run.Name = defaultRunName(spec.Routes)
	}

	for _, route := range spec.Routes {
		report, err := uc.probeRoute(ctx, spec, route)
		run.Routes = append(run.Routes, report)
		if err != nil {
			run.EndedAt = uc.now()
			return run, "", err
		}
	}
	run.EndedAt = uc.now()

	if uc.store == nil {
		return run, "", nil
	}

	id, err := uc.store.SaveRun(ctx, run)
	if err != nil {
		return run, "", err
	}
	run.ID = id
	return run, id, nil
}

func (uc *RunProbe) probeRoute(ctx context.Context, spec domain.ProbeSpec, route domain.Route) (domain.RouteReport, error) {
	report := domain.RouteReport{
		Route: route.Name,
		Path:  route.Path,
		URL:   strings.TrimSuffix(spec.Target, "/") + route.Path,
	}

	results := make([]domain.RequestResult, spec.Requests)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(spec.Concurrency)

	dispatched := 0
	for i := 0; i < spec.Requests; i++ {
		if gctx.Err() != nil {
			break
		}
		dispatched++
		g.Go(func() error {
			obs, err := uc.runner.Run(gctx, spec.Target, route)
			if err != nil {
				results[i] = domain.RequestResult{Seq: i, Error: domain.NewRunError(err)}
				return err
			}
			results[i] = domain.RequestResult{
				Seq:        i,
				StatusCode: obs.StatusCode,
				LatencyMS:  obs.LatencyMS,
				BodyBytes:  len(obs.Body),
				Assertions: ucassert.Evaluate(route, obs, spec.MaxLatencyMS),
				Error:      obs.Error,
			}
			return nil
		})
	}
	err := g.Wait()

	report.Results = results[:dispatched]
	samples := make([]int64, 0, dispatched)
	for _, r := range report.Results {
		if r.Failed() {
			report.Failures++
		}
		if r.Error == nil {
			samples = append(samples, r.LatencyMS)
		}
	}
	report.Latency = domain.ComputeLatency(samples)

	if err != nil {
		return report, err
	}
	if ctx.Err() != nil {
		return report, ctx.Err()
	}
	return report, nil
}

func validateSpec(spec domain.ProbeSpec) error {
	var problems []string
	if _, err := domain.ParseTarget(spec.Target); err != nil {
		problems = append(problems, err.Error())
	}
	if len(spec.Routes) == 0 {
		problems = append(problems, "at least one route is required")
	}
	if spec.Requests < 1 {
		problems = append(problems, "requests must be >= 1")
	}
	if spec.Concurrency < 1 {
		problems = append(problems, "concurrency must be >= 1")
	}
	if spec.MaxLatencyMS != nil && *spec.MaxLatencyMS < 0 {
		problems = append(problems, "max latency must be >= 0")
	}
	if len(problems) == 0 {
		return nil
	}
	return &domain.OpError{
		Op:   "probe.validate",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%s: %w", strings.Join(problems, "; "), domain.ErrInvalidProbe),
	}
}

func defaultRunName(routes []domain.Route) string {
	names := make([]string, 0, len(routes))
	for _, r := range routes {
		names = append(names, r.Name)
	}
	return "probe " + strings.Join(names, "+")
}
