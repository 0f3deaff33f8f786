package config

import (
	"fmt"
	"strings"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

// MapConfig overlays dto on domain.DefaultConfig and validates the result.
func MapConfig(path string, dto YAMLConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if h := strings.TrimSpace(dto.Server.Host); h != "" {
		cfg.Server.Host = h
	}
	if dto.Server.Port != nil {
		if !validPort(*dto.Server.Port) {
			return domain.Config{}, invalidField(path, "server.port", fmt.Sprintf("port %d out of range 0..65535", *dto.Server.Port))
		}
		cfg.Server.Port = *dto.Server.Port
	}

	if dto.Log.Debug != nil {
		cfg.Log.Debug = *dto.Log.Debug
	}
	if f := strings.ToLower(strings.TrimSpace(dto.Log.Format)); f != "" {
		if f != domain.LogFormatJSON && f != domain.LogFormatText {
			return domain.Config{}, invalidField(path, "log.format", fmt.Sprintf("unsupported format %q (expected json|text)", dto.Log.Format))
		}
		cfg.Log.Format = f
	}

	if t := strings.TrimSpace(dto.Probe.Target); t != "" {
		cfg.Probe.Target = t
	}
	if dto.Probe.Requests != nil {
		if *dto.Probe.Requests < 1 {
			return domain.Config{}, invalidField(path, "probe.requests", "must be >= 1")
		}
		cfg.Probe.Requests = *dto.Probe.Requests
	}
	if dto.Probe.Concurrency != nil {
		if *dto.Probe.Concurrency < 1 {
			return domain.Config{}, invalidField(path, "probe.concurrency", "must be >= 1")
		}
		cfg.Probe.Concurrency = *dto.Probe.Concurrency
	}

	if d := strings.TrimSpace(dto.Runs.Dir); d != "" {
		cfg.Runs.Dir = d
	}
	if dto.Runs.Index != nil {
		cfg.Runs.Index = *dto.Runs.Index
	}
	cfg.Runs.MongoURI = strings.TrimSpace(dto.Runs.Mongo.URI)
	if db := strings.TrimSpace(dto.Runs.Mongo.Database); db != "" {
		cfg.Runs.MongoDB = db
	}
	if c := strings.TrimSpace(dto.Runs.Mongo.Collection); c != "" {
		cfg.Runs.Collection = c
	}

	return cfg, nil
}

func validPort(p int) bool {
	return p >= 0 && p <= 65535
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
