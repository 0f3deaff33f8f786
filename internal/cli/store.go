package cli

import (
	"context"
	"strings"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/mongostore"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/runstore"
	"github.com/myspotontheweb/presentation-kubernetes/internal/ports"
)

// openStore picks MongoDB when runs.mongo.uri is set, JSON files under rootDir
// otherwise. The returned close func is never nil.
func openStore(ctx context.Context, rootDir string, cfg domain.RunsConfig) (ports.RunRepository, func(), error) {
	if strings.TrimSpace(cfg.MongoURI) != "" {
		s, err := mongostore.Connect(ctx, cfg)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() { _ = s.Close(context.Background()) }, nil
	}

	if rootDir == "" {
		rootDir = "."
	}
	return runstore.NewJSONStore(rootDir, cfg), func() {}, nil
}
