package fsworkspace

import (
	"embed"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/myspotontheweb/presentation-kubernetes/internal/app/template"
	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

// ConfigFile is the file Init writes and the finder looks for.
const ConfigFile = "demo.yaml"

//go:embed templates/demo.yaml
var templatesFS embed.FS

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

// Init scaffolds demo.yaml and the runs directory under spec.Root.
// An existing demo.yaml is kept unless force is set.
func (i *Initializer) Init(spec domain.ProjectSpec, force bool) error {
	root := filepath.Clean(spec.Root)
	cfg := spec.Config

	runsDir := cfg.Runs.Dir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = domain.DefaultConfig().Runs.Dir
	}
	runsPath := runsDir
	if !filepath.IsAbs(runsPath) {
		runsPath = filepath.Join(root, runsDir)
	}
	if err := os.MkdirAll(runsPath, 0o755); err != nil {
		return &domain.OpError{Op: "fsworkspace.mkdir", Kind: domain.KindExecution, Path: runsPath, Err: err}
	}

	if err := ensureGitignore(root, runsDir); err != nil {
		return &domain.OpError{Op: "fsworkspace.gitignore", Kind: domain.KindExecution, Path: root, Err: err}
	}

	dst := filepath.Join(root, ConfigFile)
	if !force {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}

	tpl, err := templatesFS.ReadFile("templates/" + ConfigFile)
	if err != nil {
		return &domain.OpError{Op: "fsworkspace.template", Kind: domain.KindExecution, Err: err}
	}

	out, err := template.RenderString(string(tpl), map[string]string{
		"host":        cfg.Server.Host,
		"port":        strconv.Itoa(cfg.Server.Port),
		"log_format":  cfg.Log.Format,
		"target":      cfg.Probe.Target,
		"requests":    strconv.Itoa(cfg.Probe.Requests),
		"concurrency": strconv.Itoa(cfg.Probe.Concurrency),
		"runs_dir":    runsDir,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, []byte(out), 0o644); err != nil {
		return &domain.OpError{Op: "fsworkspace.write", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	return nil
}

func ensureGitignore(root, runsDir string) error {
	const header = "# demo"
	if filepath.IsAbs(runsDir) {
		return nil
	}
	entries := []string{
		strings.TrimSuffix(filepath.ToSlash(runsDir), "/") + "/",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
