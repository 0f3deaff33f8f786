package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	EnvHost = "DEMO_HOST"
	EnvPort = "DEMO_PORT"
)

// LoadConfig reads demo.yaml on top of the defaults. An empty path yields the defaults.
func LoadConfig(path string) (domain.Config, error) {
	if strings.TrimSpace(path) == "" {
		return domain.DefaultConfig(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.Config{}, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, dto)
}

// ApplyEnv overrides the bind address from DEMO_HOST / DEMO_PORT.
// lookup is usually os.LookupEnv.
func ApplyEnv(cfg domain.Config, lookup func(string) (string, bool)) (domain.Config, error) {
	if v, ok := lookup(EnvHost); ok && strings.TrimSpace(v) != "" {
		cfg.Server.Host = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvPort); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || !validPort(port) {
			return domain.Config{}, &domain.OpError{
				Op:   "config.env",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("%s=%q: expected a port in 0..65535: %w", EnvPort, v, domain.ErrInvalidConfig),
			}
		}
		cfg.Server.Port = port
	}

	return cfg, nil
}
