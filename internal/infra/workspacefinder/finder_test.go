package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

func mkdirs(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return p
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFind_FromNestedDir(t *testing.T) {
	root := mkdirs(t, t.TempDir(), "proj")
	nested := mkdirs(t, root, "a", "b", "c")
	touch(t, filepath.Join(root, "demo.yaml"))

	loc, err := NewFinder().Find(nested)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if loc.Root != root || loc.ConfigPath != filepath.Join(root, "demo.yaml") {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestFind_NearestWins(t *testing.T) {
	outer := mkdirs(t, t.TempDir(), "outer")
	inner := mkdirs(t, outer, "inner")
	touch(t, filepath.Join(outer, "demo.yaml"))
	touch(t, filepath.Join(inner, "demo.yml"))

	loc, err := NewFinder().Find(inner)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if loc.ConfigPath != filepath.Join(inner, "demo.yml") {
		t.Fatalf("expected nearest demo.yml, got %+v", loc)
	}
}

func TestFind_PrefersFirstName(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "demo.yaml"))
	touch(t, filepath.Join(root, "demo.yml"))

	loc, err := NewFinder().Find(root)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if filepath.Base(loc.ConfigPath) != "demo.yaml" {
		t.Fatalf("expected demo.yaml preferred, got %s", loc.ConfigPath)
	}
}

func TestFind_StopsAtBoundary(t *testing.T) {
	home := t.TempDir()
	touch(t, filepath.Join(home, "demo.yaml"))
	repo := mkdirs(t, home, "repo")
	mkdirs(t, repo, ".git")
	nested := mkdirs(t, repo, "cmd")

	_, err := NewFinder().Find(nested)
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected search to stop at the repository root, got %v", err)
	}
}

func TestFind_BoundaryDirItselfIsSearched(t *testing.T) {
	repo := t.TempDir()
	mkdirs(t, repo, ".git")
	touch(t, filepath.Join(repo, "demo.yaml"))

	loc, err := NewFinder().Find(mkdirs(t, repo, "sub"))
	if err != nil || loc.Root != repo {
		t.Fatalf("expected config at repo root, got %+v err=%v", loc, err)
	}
}

func TestFind_FromFilePath(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "demo.yaml"))
	file := filepath.Join(root, "notes.txt")
	touch(t, file)

	loc, err := NewFinder().Find(file)
	if err != nil || loc.Root != root {
		t.Fatalf("expected root=%s, got %+v err=%v", root, loc, err)
	}
}

func TestFind_IgnoresDirectoryNamedLikeConfig(t *testing.T) {
	tmp := t.TempDir()
	mkdirs(t, tmp, "demo.yaml")

	f := &Finder{Names: []string{"demo.yaml"}, Boundary: ".git"}
	mkdirs(t, tmp, ".git")

	_, err := f.Find(tmp)
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected directory named demo.yaml ignored, got %v", err)
	}
}

func TestFind_EmptyStartDir(t *testing.T) {
	_, err := NewFinder().Find("")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got: %v", err)
	}
}
