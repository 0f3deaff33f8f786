package ports

import (
	"context"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

// ArtifactStore persists probe runs for later comparison.
type ArtifactStore interface {
	SaveRun(ctx context.Context, run domain.ProbeRun) (id string, err error)
}

// RunReader reads stored probe runs back.
type RunReader interface {
	ListRuns(ctx context.Context) ([]domain.RunSummary, error)
	LoadRun(ctx context.Context, id string) (domain.ProbeRun, error)
}

// RunRepository is a store that can both save and read runs.
type RunRepository interface {
	ArtifactStore
	RunReader
}
