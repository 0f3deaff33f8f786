package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/usecase/query"
)

func runsCmd(root *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored probe runs",
	}
	c.AddCommand(runsListCmd(root), runsShowCmd(root))
	return c
}

func runsListCmd(root *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "list",
		Short: "List stored probe runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			store, closeStore, err := openStore(cmd.Context(), root.rootDir, root.cfg.Runs)
			if err != nil {
				return err
			}
			defer closeStore()

			runs, err := store.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			return printRunList(cmd.OutOrStdout(), runs, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func runsShowCmd(root *rootOptions) *cobra.Command {
	var field string
	var format string

	c := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show a stored probe run, or one field of it selected with JSONPath",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			store, closeStore, err := openStore(cmd.Context(), root.rootDir, root.cfg.Runs)
			if err != nil {
				return err
			}
			defer closeStore()

			run, err := store.LoadRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if strings.TrimSpace(field) != "" {
				return printField(cmd.OutOrStdout(), run, field)
			}
			return printProbe(cmd.OutOrStdout(), run, run.ID, format)
		},
	}

	c.Flags().StringVar(&field, "field", "", "JSONPath into the run, e.g. $.routes[1].latency.p95_ms")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printField(w io.Writer, run domain.ProbeRun, expr string) error {
	val, err := query.Field(run, expr)
	if err != nil {
		return err
	}
	s, err := query.Format(val)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

func printRunList(w io.Writer, runs []domain.RunSummary, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs stored.")
		return err
	}

	th := defaultTheme()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(th.Faint).
		Headers("ID", "STARTED", "FAILURES", "TARGET")
	for _, r := range runs {
		t.Row(r.ID, r.StartedAt.UTC().Format(time.RFC3339), strconv.Itoa(r.Failures), r.Target)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
