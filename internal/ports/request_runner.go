package ports

import (
	"context"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

// RequestRunner sends one request for route to the server at target.
// Transport failures are reported in Observation.Error; a returned error
// means the request could not be built at all.
type RequestRunner interface {
	Run(ctx context.Context, target string, route domain.Route) (domain.Observation, error)
}
