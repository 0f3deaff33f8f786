package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/fsworkspace"
)

func initCmd() *cobra.Command {
	var force bool
	cfg := domain.DefaultConfig()

	c := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write a demo.yaml and a runs directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
				return &domain.OpError{
					Op:   "cli.init",
					Kind: domain.KindInvalidConfig,
					Err:  fmt.Errorf("port %d out of range 0..65535: %w", cfg.Server.Port, domain.ErrInvalidConfig),
				}
			}

			if err := fsworkspace.NewInitializer().Init(domain.ProjectSpec{Root: abs, Config: cfg}, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", filepath.Join(abs, fsworkspace.ConfigFile))
			return nil
		},
	}

	c.Flags().StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "Bind host written to demo.yaml")
	c.Flags().IntVar(&cfg.Server.Port, "port", cfg.Server.Port, "Bind port written to demo.yaml")
	c.Flags().StringVar(&cfg.Probe.Target, "target", cfg.Probe.Target, "Probe target written to demo.yaml")
	c.Flags().StringVar(&cfg.Runs.Dir, "runs-dir", cfg.Runs.Dir, "Run artifact directory")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing demo.yaml")
	return c
}
