package runstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/ports"
)

const defaultRunsDir = "runs"

type JSONStore struct {
	rootDir        string
	runsDirName    string
	maskingEnabled bool
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithMasking controls redaction of credentials embedded in the target URL.
func WithMasking(enabled bool) Option {
	return func(s *JSONStore) { s.maskingEnabled = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.RunsConfig, opts ...Option) *JSONStore {
	runsDir := cfg.Dir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:        root,
		runsDirName:    runsDir,
		maskingEnabled: true,
		writeIndex:     cfg.Index,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.RunRepository = (*JSONStore)(nil)

func (s *JSONStore) dir() string {
	if filepath.IsAbs(s.runsDirName) {
		return s.runsDirName
	}
	return filepath.Join(s.rootDir, s.runsDirName)
}

func (s *JSONStore) SaveRun(_ context.Context, run domain.ProbeRun) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := run.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := run
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}
	slug := slugify(run.Name)
	if slug == "" {
		slug = "run"
	}

	base := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug)
	id, path, err := uniquePath(dir, base)
	if err != nil {
		return "", err
	}
	toSave.ID = id

	if s.maskingEnabled {
		toSave.Target = domain.MaskTarget(toSave.Target)
		toSave.Routes = make([]domain.RouteReport, len(run.Routes))
		for i, rr := range run.Routes {
			rr.URL = domain.MaskTarget(rr.URL)
			toSave.Routes[i] = rr
		}
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, filepath.Base(path), toSave)
	}

	return id, nil
}

// ListRuns returns stored runs, newest first.
func (s *JSONStore) ListRuns(ctx context.Context) ([]domain.RunSummary, error) {
	dir := s.dir()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.RunSummary{}, nil
	}
	if err != nil {
		return nil, &domain.OpError{
			Op:   "runstore.list",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	out := make([]domain.RunSummary, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		run, err := s.LoadRun(ctx, strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		out = append(out, run.Summary())
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}

func (s *JSONStore) LoadRun(_ context.Context, id string) (domain.ProbeRun, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return domain.ProbeRun{}, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("invalid run id %q: %w", id, domain.ErrNotFound),
		}
	}

	path := filepath.Join(s.dir(), id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.ProbeRun{}, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var run domain.ProbeRun
	if err := json.Unmarshal(b, &run); err != nil {
		return domain.ProbeRun{}, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	if run.ID == "" {
		run.ID = id
	}
	return run, nil
}

func uniquePath(dir, base string) (string, string, error) {
	id := base
	for n := 2; ; n++ {
		path := filepath.Join(dir, id+".json")
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return id, path, nil
		}
		if err != nil {
			return "", "", &domain.OpError{
				Op:   "runstore.stat",
				Kind: domain.KindExecution,
				Path: path,
				Err:  err,
			}
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func (s *JSONStore) appendIndex(dir, filename string, run domain.ProbeRun) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Name      string    `json:"name"`
		Target    string    `json:"target"`
		Failures  int       `json:"failures"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        run.ID,
		File:      filename,
		Name:      run.Name,
		Target:    run.Target,
		Failures:  run.Failures(),
		StartedAt: run.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
