package httprunner

import (
	"context"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/httpclient"
	"github.com/myspotontheweb/presentation-kubernetes/internal/ports"
)

type Runner struct {
	exec *httpclient.Executor
}

func New(exec *httpclient.Executor) *Runner {
	if exec == nil {
		exec = httpclient.NewExecutor()
	}
	return &Runner{exec: exec}
}

var _ ports.RequestRunner = (*Runner)(nil)

func (r *Runner) Run(ctx context.Context, target string, route domain.Route) (domain.Observation, error) {
	req, err := httpclient.BuildRequest(ctx, target, route)
	if err != nil {
		return domain.Observation{}, err
	}

	resp, err := r.exec.Do(ctx, req)
	obs := domain.Observation{
		StatusCode: resp.Status,
		LatencyMS:  resp.Duration.Milliseconds(),
		Body:       resp.BodyBytes,
		Truncated:  resp.Truncated,
	}
	if err != nil {
		obs.Error = domain.NewRunError(err)
	}
	return obs, nil
}
