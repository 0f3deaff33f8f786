package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/logger"
	"github.com/myspotontheweb/presentation-kubernetes/internal/server"
)

type serveOptions struct {
	host string
	port int
}

func (s *serveOptions) bind(c *cobra.Command) {
	c.Flags().StringVar(&s.host, "host", "", "Bind host (default 0.0.0.0)")
	c.Flags().IntVar(&s.port, "port", 0, "Bind port (default 8080)")
}

func serveCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve / and /stress (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, root, opts)
		},
	}
	opts.bind(c)
	return c
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions) error {
	cfg := root.cfg.Server
	if cmd.Flags().Changed("host") {
		cfg.Host = opts.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = opts.port
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return &domain.OpError{
			Op:   "cli.serve",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("port %d out of range 0..65535: %w", cfg.Port, domain.ErrInvalidConfig),
		}
	}

	srv, err := server.New(cfg, logger.L())
	if err != nil {
		return err
	}
	return srv.ListenAndServe(cmd.Context())
}
