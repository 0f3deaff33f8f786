// Package workspacefinder discovers the demo.yaml that applies to a directory.
package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

// Location is a discovered configuration file and the directory that holds it.
// Relative paths in the file resolve against Root.
type Location struct {
	Root       string
	ConfigPath string
}

// Finder walks upward from a start directory looking for one of Names.
// The search ends at the first directory containing Boundary (a repository
// root, by default), after checking that directory itself.
type Finder struct {
	Names    []string
	Boundary string
}

func NewFinder() *Finder {
	return &Finder{
		Names:    []string{"demo.yaml", "demo.yml"},
		Boundary: ".git",
	}
}

func (f *Finder) Find(startDir string) (Location, error) {
	if startDir == "" {
		return Location{}, &domain.OpError{
			Op:   "workspacefinder.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("start directory is empty"),
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Location{}, &domain.OpError{Op: "workspacefinder.find", Kind: domain.KindExecution, Err: err}
	}
	if st, err := os.Stat(dir); err == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	start := dir

	for {
		if path, ok := f.configIn(dir); ok {
			return Location{Root: dir, ConfigPath: path}, nil
		}
		if f.isBoundary(dir) {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return Location{}, &domain.OpError{
		Op:   "workspacefinder.find",
		Kind: domain.KindNotFound,
		Path: start,
		Err:  domain.ErrNotFound,
	}
}

func (f *Finder) configIn(dir string) (string, bool) {
	for _, name := range f.Names {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

func (f *Finder) isBoundary(dir string) bool {
	if f.Boundary == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, f.Boundary))
	return err == nil
}
