package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/config"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/logger"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/workspacefinder"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	debug      bool
	logFormat  string

	// rootDir anchors relative paths such as runs.dir: the directory of
	// demo.yaml when one is used, the working directory otherwise.
	rootDir string
	cfg     domain.Config
	cleanup func() error
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	serve := &serveOptions{}

	cmd := &cobra.Command{
		Use:          "demo",
		Short:        "Demo web server with a CPU-stress endpoint, plus a probe to load it",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.teardown()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts, serve)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to demo.yaml (optional)")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: json|text (default from config, json)")

	serve.bind(cmd)

	cmd.AddCommand(
		serveCmd(opts),
		probeCmd(opts),
		runsCmd(opts),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

// setup resolves the configuration (defaults < demo.yaml < DEMO_* env < flags)
// and installs the process logger. Without --config, demo.yaml is looked up
// from the working directory upward.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if err := o.locateConfig(); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	cfg, err = config.ApplyEnv(cfg, os.LookupEnv)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug = o.debug
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}

	cleanup, err := logger.Setup(logger.Config{
		Output: cmd.ErrOrStderr(),
		Debug:  cfg.Log.Debug,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.cleanup = cleanup
	return nil
}

func (o *rootOptions) locateConfig() error {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	if o.configPath != "" {
		abs, err := filepath.Abs(o.configPath)
		if err != nil {
			return &domain.OpError{Op: "cli.config", Kind: domain.KindInvalidConfig, Path: o.configPath, Err: err}
		}
		o.configPath = abs
		o.rootDir = filepath.Dir(abs)
		return nil
	}

	loc, err := workspacefinder.NewFinder().Find(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			o.rootDir = wd
			return nil
		}
		return err
	}
	o.configPath = loc.ConfigPath
	o.rootDir = loc.Root
	return nil
}

func (o *rootOptions) teardown() error {
	if o.cleanup == nil {
		return nil
	}
	err := o.cleanup()
	o.cleanup = nil
	return err
}
