package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/httpclient"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/httprunner"
	"github.com/myspotontheweb/presentation-kubernetes/internal/infra/logger"
	"github.com/myspotontheweb/presentation-kubernetes/internal/ports"
	"github.com/myspotontheweb/presentation-kubernetes/internal/usecase"
)

// maxFailuresShown bounds how many failing requests the pretty report lists per route.
const maxFailuresShown = 5

func probeCmd(root *rootOptions) *cobra.Command {
	var target string
	var route string
	var name string
	var requests int
	var concurrency int
	var maxMS int
	var timeout time.Duration
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "probe",
		Short: "Send load to a running demo server and check its answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			cfg := root.cfg.Probe
			spec := domain.ProbeSpec{
				Name:        name,
				Target:      cfg.Target,
				Requests:    cfg.Requests,
				Concurrency: cfg.Concurrency,
			}
			if cmd.Flags().Changed("target") {
				spec.Target = target
			}
			if cmd.Flags().Changed("requests") {
				spec.Requests = requests
			}
			if cmd.Flags().Changed("concurrency") {
				spec.Concurrency = concurrency
			}
			if cmd.Flags().Changed("max-ms") {
				spec.MaxLatencyMS = &maxMS
			}

			routes, err := selectRoutes(route)
			if err != nil {
				return err
			}
			spec.Routes = routes

			clientCfg := httpclient.DefaultConfig()
			clientCfg.Timeout = timeout
			clientCfg.ResponseHeader = timeout
			if spec.Concurrency > clientCfg.MaxIdleConnsPerHost {
				clientCfg.MaxIdleConnsPerHost = spec.Concurrency
			}
			runner := httprunner.New(httpclient.NewExecutor(
				httpclient.WithClient(httpclient.New(clientCfg)),
				httpclient.WithTimeout(timeout),
			))

			var store ports.ArtifactStore
			if !noSave {
				repo, closeStore, err := openStore(cmd.Context(), root.rootDir, root.cfg.Runs)
				if err != nil {
					return err
				}
				defer closeStore()
				store = repo
			}

			log := logger.L()
			log.Info("probe.start",
				"target", spec.Target,
				"routes", len(spec.Routes),
				"requests", spec.Requests,
				"concurrency", spec.Concurrency,
			)

			uc := usecase.NewRunProbe(runner, store)
			run, runID, err := uc.Execute(cmd.Context(), spec)
			if err != nil {
				log.Error("probe.failed", "err", err)
				if len(run.Routes) > 0 {
					_ = printProbe(cmd.OutOrStdout(), run, runID, format)
				}
				return err
			}
			log.Info("probe.done", "run_id", runID, "failures", run.Failures())

			if err := printProbe(cmd.OutOrStdout(), run, runID, format); err != nil {
				return err
			}

			if fails := run.Failures(); fails > 0 {
				return fmt.Errorf("probe failed (%d failed request(s))", fails)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&target, "target", "t", "", "Base URL of the demo server (default from config, http://localhost:8080)")
	c.Flags().StringVarP(&route, "route", "r", "all", "Route to probe: greeting|stress|all")
	c.Flags().StringVar(&name, "name", "", "Run name (used in the artifact id)")
	c.Flags().IntVarP(&requests, "requests", "n", 0, "Requests per route (default from config, 10)")
	c.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Requests in flight per route (default from config, 2)")
	c.Flags().IntVar(&maxMS, "max-ms", 0, "Fail requests slower than this many milliseconds")
	c.Flags().DurationVar(&timeout, "timeout", httpclient.DefaultConfig().Timeout, "Per-request timeout")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not store the run artifact")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func selectRoutes(name string) ([]domain.Route, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "all" {
		return domain.Routes(), nil
	}
	r, ok := domain.RouteByName(n)
	if !ok {
		return nil, &domain.OpError{
			Op:   "cli.probe",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unknown route %q (expected greeting|stress|all): %w", name, domain.ErrInvalidProbe),
		}
	}
	return []domain.Route{r}, nil
}

func checkFormat(format string) error {
	switch format {
	case "pretty", "json", "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printProbe(w io.Writer, run domain.ProbeRun, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"run_id": runID,
			"run":    run,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyProbe(w, run, runID, defaultTheme())
		return nil
	default:
		return checkFormat(format)
	}
}

func printPrettyProbe(w io.Writer, run domain.ProbeRun, runID string, th theme) {
	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintln(w, th.Title.Render(run.Name))
	fmt.Fprintf(w, "%s %s\n", th.Label.Render("Target:"), run.Target)
	fmt.Fprintf(w, "%s %d per route, %d in flight\n", th.Label.Render("Requests:"), run.Requests, run.Concurrency)
	fmt.Fprintf(w, "%s %s\n", th.Label.Render("Started:"), run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "%s %s\n", th.Label.Render("Duration:"), total)
	if runID != "" {
		fmt.Fprintf(w, "%s %s\n", th.Label.Render("Run ID:"), runID)
	}
	fmt.Fprintln(w)

	for _, rr := range run.Routes {
		status := th.OK.Render("OK")
		if rr.Failures > 0 {
			status = th.Fail.Render("FAIL")
		}
		ok := len(rr.Results) - rr.Failures
		fmt.Fprintf(w, "- [%s] %s %s  %d/%d ok\n", status, rr.Route, rr.Path, ok, len(rr.Results))

		l := rr.Latency
		if l.Count > 0 {
			fmt.Fprintf(w, "  latency: min %dms  p50 %dms  p95 %dms  max %dms  mean %.1fms\n",
				l.MinMS, l.P50MS, l.P95MS, l.MaxMS, l.MeanMS)
		}

		shown := 0
		for _, res := range rr.Results {
			if !res.Failed() {
				continue
			}
			if shown == maxFailuresShown {
				fmt.Fprintln(w, th.Faint.Render(fmt.Sprintf("    ... %d more", rr.Failures-shown)))
				break
			}
			shown++
			fmt.Fprintf(w, "    %s #%d %s\n", th.Fail.Render("✗"), res.Seq, failureReason(res))
		}
		fmt.Fprintln(w)
	}
}

func failureReason(res domain.RequestResult) string {
	if res.Error != nil {
		return fmt.Sprintf("error: %s (%s)", res.Error.Message, res.Error.Kind)
	}
	var msgs []string
	for _, a := range res.Assertions {
		if !a.Passed {
			msgs = append(msgs, a.Message)
		}
	}
	return strings.Join(msgs, "; ")
}
