package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

// RouteURL resolves route.Path against target (scheme://host[:port][/prefix]).
func RouteURL(target string, route domain.Route) (string, error) {
	u, err := domain.ParseTarget(target)
	if err != nil {
		return "", &domain.OpError{
			Op:   "httpclient.url",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidProbe),
		}
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + route.Path
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// BuildRequest builds the probe request for a route of the demo server.
func BuildRequest(ctx context.Context, target string, route domain.Route) (*http.Request, error) {
	u, err := RouteURL(target, route)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, string(route.Method), u, nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	req.Header.Set("User-Agent", "demo-probe")
	return req, nil
}
