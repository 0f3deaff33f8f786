package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureGitignore_CreatesFile(t *testing.T) {
	tmp := t.TempDir()

	if err := ensureGitignore(tmp, "runs"); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}

	s := string(b)
	for _, w := range []string{"# demo", "runs/"} {
		if !strings.Contains(s, w) {
			t.Fatalf("expected .gitignore to contain %q, got:\n%s", w, s)
		}
	}
}

func TestEnsureGitignore_AppendsMissingEntries(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ".gitignore")

	existing := "node_modules/"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}

	if err := ensureGitignore(tmp, "artifacts/"); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	s := string(b)

	if !strings.HasPrefix(s, "node_modules/\n") {
		t.Fatalf("expected existing content preserved, got:\n%s", s)
	}
	if strings.Count(s, "# demo") != 1 || strings.Count(s, "artifacts/") != 1 {
		t.Fatalf("expected header and entry once, got:\n%s", s)
	}
}

func TestEnsureGitignore_Idempotent(t *testing.T) {
	tmp := t.TempDir()

	for i := 0; i < 2; i++ {
		if err := ensureGitignore(tmp, "runs"); err != nil {
			t.Fatalf("ensureGitignore error: %v", err)
		}
	}

	b, err := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if strings.Count(string(b), "runs/") != 1 {
		t.Fatalf("expected single runs/ entry, got:\n%s", b)
	}
}

func TestEnsureGitignore_AbsoluteRunsDirSkipped(t *testing.T) {
	tmp := t.TempDir()

	if err := ensureGitignore(tmp, filepath.Join(tmp, "elsewhere")); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, ".gitignore")); !os.IsNotExist(err) {
		t.Fatalf("expected no .gitignore for an absolute runs dir, stat err=%v", err)
	}
}
