package mongostore

import (
	"time"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

// runDocument is the stored shape. Failures is denormalized so listings can
// skip the routes array.
type runDocument struct {
	ID          string          `bson:"_id"`
	Name        string          `bson:"name"`
	Target      string          `bson:"target"`
	Requests    int             `bson:"requests"`
	Concurrency int             `bson:"concurrency"`
	StartedAt   time.Time       `bson:"started_at"`
	EndedAt     time.Time       `bson:"ended_at"`
	Failures    int             `bson:"failures"`
	Routes      []routeDocument `bson:"routes,omitempty"`
}

type routeDocument struct {
	Route    string              `bson:"route"`
	Path     string              `bson:"path"`
	URL      string              `bson:"url"`
	Failures int                 `bson:"failures"`
	Latency  domain.LatencyStats `bson:"latency"`
	Results  []resultDocument    `bson:"results"`
}

type resultDocument struct {
	Seq        int                      `bson:"seq"`
	StatusCode int                      `bson:"status_code"`
	LatencyMS  int64                    `bson:"latency_ms"`
	BodyBytes  int                      `bson:"body_bytes"`
	Assertions []domain.AssertionResult `bson:"assertions,omitempty"`
	Error      *domain.RunError         `bson:"error,omitempty"`
}

// toDocument masks credentials in the target and route URLs.
func toDocument(run domain.ProbeRun) runDocument {
	doc := runDocument{
		ID:          run.ID,
		Name:        run.Name,
		Target:      domain.MaskTarget(run.Target),
		Requests:    run.Requests,
		Concurrency: run.Concurrency,
		StartedAt:   run.StartedAt.UTC(),
		EndedAt:     run.EndedAt.UTC(),
		Failures:    run.Failures(),
		Routes:      make([]routeDocument, 0, len(run.Routes)),
	}
	for _, r := range run.Routes {
		rd := routeDocument{
			Route:    r.Route,
			Path:     r.Path,
			URL:      domain.MaskTarget(r.URL),
			Failures: r.Failures,
			Latency:  r.Latency,
			Results:  make([]resultDocument, 0, len(r.Results)),
		}
		for _, res := range r.Results {
			rd.Results = append(rd.Results, resultDocument(res))
		}
		doc.Routes = append(doc.Routes, rd)
	}
	return doc
}

func (d runDocument) run() domain.ProbeRun {
	run := domain.ProbeRun{
		ID:          d.ID,
		Name:        d.Name,
		Target:      d.Target,
		Requests:    d.Requests,
		Concurrency: d.Concurrency,
		StartedAt:   d.StartedAt,
		EndedAt:     d.EndedAt,
		Routes:      make([]domain.RouteReport, 0, len(d.Routes)),
	}
	for _, rd := range d.Routes {
		r := domain.RouteReport{
			Route:    rd.Route,
			Path:     rd.Path,
			URL:      rd.URL,
			Failures: rd.Failures,
			Latency:  rd.Latency,
			Results:  make([]domain.RequestResult, 0, len(rd.Results)),
		}
		for _, res := range rd.Results {
			r.Results = append(r.Results, domain.RequestResult(res))
		}
		run.Routes = append(run.Routes, r)
	}
	return run
}

func (d runDocument) summary() domain.RunSummary {
	return domain.RunSummary{
		ID:        d.ID,
		Name:      d.Name,
		Target:    d.Target,
		StartedAt: d.StartedAt,
		Failures:  d.Failures,
	}
}
