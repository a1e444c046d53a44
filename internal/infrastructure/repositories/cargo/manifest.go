package cargo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	manifestFile = "Cargo.toml"
	lockFile     = "Cargo.lock"
)

// manifest represents the parts of Cargo.toml that declare dependencies.
type manifest struct {
	Package           *packageTable            `toml:"package"`
	Workspace         *workspaceTable          `toml:"workspace"`
	Dependencies      map[string]any           `toml:"dependencies"`
	DevDependencies   map[string]any           `toml:"dev-dependencies"`
	BuildDependencies map[string]any           `toml:"build-dependencies"`
	Target            map[string]dependencySet `toml:"target"`
}

type packageTable struct {
	Name string `toml:"name"`
}

type workspaceTable struct {
	Members      []string       `toml:"members"`
	Exclude      []string       `toml:"exclude"`
	Dependencies map[string]any `toml:"dependencies"`
}

type dependencySet struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// lockfile represents Cargo.lock.
type lockfile struct {
	Packages []lockedPackage `toml:"package"`
}

type lockedPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  string `toml:"source"`
}

// dependencyTables returns every dependency table of the manifest, target
// specific ones included, in a stable order.
func (m *manifest) dependencyTables() []map[string]any {
	tables := []map[string]any{m.Dependencies, m.DevDependencies, m.BuildDependencies}

	targets := make([]string, 0, len(m.Target))
	for cfg := range m.Target {
		targets = append(targets, cfg)
	}
	sort.Strings(targets)

	for _, cfg := range targets {
		t := m.Target[cfg]
		tables = append(tables, t.Dependencies, t.DevDependencies, t.BuildDependencies)
	}
	return tables
}

func readManifest(path string) (*manifest, error) {
	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &m, nil
}

// readLockfile returns the registry versions recorded in Cargo.lock keyed by
// crate name. A missing lockfile yields an empty map.
func readLockfile(dir string) (map[string][]string, error) {
	path := filepath.Join(dir, lockFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return map[string][]string{}, nil
	}

	var lock lockfile
	if _, err := toml.DecodeFile(path, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	versions := make(map[string][]string)
	for _, pkg := range lock.Packages {
		if !strings.HasPrefix(pkg.Source, "registry+") && !strings.HasPrefix(pkg.Source, "sparse+") {
			continue
		}
		versions[pkg.Name] = append(versions[pkg.Name], pkg.Version)
	}
	return versions, nil
}

// findNearestManifest walks up from dir until a Cargo.toml is found.
func findNearestManifest(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, manifestFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// expandMembers resolves workspace member globs relative to rootDir, skipping
// excluded paths and directories without a manifest.
func expandMembers(rootDir string, ws *workspaceTable) ([]string, error) {
	excluded := make(map[string]bool, len(ws.Exclude))
	for _, e := range ws.Exclude {
		excluded[filepath.Clean(filepath.Join(rootDir, e))] = true
	}

	seen := make(map[string]bool)
	var members []string
	for _, pattern := range ws.Members {
		matches, err := filepath.Glob(filepath.Join(rootDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace member pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			dir := filepath.Clean(match)
			if excluded[dir] || seen[dir] {
				continue
			}
			if _, statErr := os.Stat(filepath.Join(dir, manifestFile)); statErr != nil {
				continue
			}
			seen[dir] = true
			members = append(members, dir)
		}
	}
	sort.Strings(members)
	return members, nil
}
