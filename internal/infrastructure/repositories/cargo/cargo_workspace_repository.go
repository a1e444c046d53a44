package cargo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/Masterminds/semver/v3"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
)

// WorkspaceRepository implements repositories.WorkspaceRepository for Cargo projects.
type WorkspaceRepository struct{}

// NewWorkspaceRepository creates a Cargo workspace reader.
func NewWorkspaceRepository() repositories.WorkspaceRepository {
	return &WorkspaceRepository{}
}

// Load finds the project root and collects the direct dependencies of every
// member package. A plain package yields a single entry.
func (r *WorkspaceRepository) Load(
	ctx context.Context,
	manifestPath string,
) (entities.PackageDependencySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start, err := locateManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	rootPath, root, err := findWorkspaceRoot(start)
	if err != nil {
		return nil, err
	}
	rootDir := filepath.Dir(rootPath)
	logger.Debugf("[cargo] Using root manifest %s", rootPath)

	locked, err := readLockfile(rootDir)
	if err != nil {
		return nil, &entities.SetupError{Op: "read lockfile", Path: rootDir, Err: err}
	}

	set := entities.PackageDependencySet{}
	if root.Workspace == nil {
		if addErr := addPackage(set, rootPath, root, nil, locked); addErr != nil {
			return nil, addErr
		}
		return set, nil
	}

	if root.Package != nil {
		if addErr := addPackage(set, rootPath, root, root.Workspace.Dependencies, locked); addErr != nil {
			return nil, addErr
		}
	}

	members, err := expandMembers(rootDir, root.Workspace)
	if err != nil {
		return nil, &entities.SetupError{Op: "resolve workspace members", Path: rootPath, Err: err}
	}
	for _, dir := range members {
		memberPath := filepath.Join(dir, manifestFile)
		if memberPath == rootPath {
			continue
		}
		member, readErr := readManifest(memberPath)
		if readErr != nil {
			return nil, &entities.SetupError{Op: "read manifest", Path: memberPath, Err: readErr}
		}
		if addErr := addPackage(set, memberPath, member, root.Workspace.Dependencies, locked); addErr != nil {
			return nil, addErr
		}
	}

	logger.Debugf("[cargo] Found %d packages with %d dependencies", len(set), set.DependencyCount())
	return set, nil
}

// locateManifest resolves the user-supplied path (file, directory or empty)
// to the nearest Cargo.toml.
func locateManifest(manifestPath string) (string, error) {
	if manifestPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", &entities.SetupError{Op: "determine working directory", Err: err}
		}
		manifestPath = wd
	}

	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		return "", &entities.SetupError{Op: "resolve path", Path: manifestPath, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &entities.SetupError{Op: "locate manifest", Path: abs, Err: err}
	}
	if !info.IsDir() {
		return abs, nil
	}

	found, ok := findNearestManifest(abs)
	if !ok {
		return "", &entities.SetupError{Op: "locate manifest", Path: abs, Err: entities.ErrNoManifest}
	}
	return found, nil
}

// findWorkspaceRoot returns the manifest of the workspace that owns start, or
// start itself when no enclosing workspace lists it as a member.
func findWorkspaceRoot(start string) (string, *manifest, error) {
	startManifest, err := readManifest(start)
	if err != nil {
		return "", nil, &entities.SetupError{Op: "read manifest", Path: start, Err: err}
	}
	if startManifest.Workspace != nil {
		return start, startManifest, nil
	}

	startDir := filepath.Dir(start)
	dir := filepath.Dir(startDir)
	for {
		candidate := filepath.Join(dir, manifestFile)
		if m, readErr := readManifest(candidate); readErr == nil && m.Workspace != nil {
			members, _ := expandMembers(dir, m.Workspace)
			if slices.Contains(members, startDir) {
				return candidate, m, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, startManifest, nil
		}
		dir = parent
	}
}

func addPackage(
	set entities.PackageDependencySet,
	path string,
	m *manifest,
	inherited map[string]any,
	locked map[string][]string,
) error {
	if m.Package == nil || m.Package.Name == "" {
		return &entities.SetupError{Op: "read package name", Path: path, Err: fmt.Errorf("missing [package] name")}
	}
	name := m.Package.Name
	set.Ensure(name)

	for _, table := range m.dependencyTables() {
		keys := make([]string, 0, len(table))
		for key := range table {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			decl, err := declare(key, table[key], inherited, locked)
			if err != nil {
				return &entities.SetupError{Op: "read dependency " + key, Path: path, Err: err}
			}
			set.Add(name, decl)
		}
	}
	return nil
}

// declare converts one manifest entry into a dependency declaration.
func declare(
	key string,
	raw any,
	inherited map[string]any,
	locked map[string][]string,
) (entities.DependencyDeclaration, error) {
	name := key
	version := ""
	source := entities.SourceRegistry

	switch value := raw.(type) {
	case string:
		version = value
	case map[string]any:
		if ws, ok := value["workspace"].(bool); ok && ws {
			base, found := inherited[key]
			if !found {
				return entities.DependencyDeclaration{}, fmt.Errorf(
					"inherits from the workspace but is not declared in [workspace.dependencies]")
			}
			return declare(key, base, nil, locked)
		}
		if pkg, ok := value["package"].(string); ok && pkg != "" {
			name = pkg
		}
		version, _ = value["version"].(string)
		switch {
		case value["path"] != nil:
			source = entities.SourceLocalPath
		case value["git"] != nil, value["registry"] != nil:
			source = entities.SourceOther
		}
	default:
		return entities.DependencyDeclaration{}, fmt.Errorf("unsupported declaration of type %T", raw)
	}

	decl := entities.DependencyDeclaration{Name: name, Source: source, Kind: entities.RequirementAny}
	if version == "" {
		return decl, nil
	}

	req, err := entities.ParseVersionRequirement(version)
	if err != nil {
		return entities.DependencyDeclaration{}, err
	}
	decl.Requirement = req
	decl.Kind = entities.RequirementExplicit

	if source == entities.SourceRegistry {
		if lockedVersion, ok := lockedMatch(locked[name], req); ok {
			decl.Kind = entities.RequirementLocked
			decl.LockedVersion = lockedVersion
			logger.Debugf("[cargo] %s %s is locked at %s", name, req, lockedVersion)
		}
	}
	return decl, nil
}

func lockedMatch(versions []string, req entities.VersionRequirement) (string, bool) {
	for _, raw := range versions {
		v, err := semver.StrictNewVersion(raw)
		if err == nil && req.Matches(v) {
			return raw, true
		}
	}
	return "", false
}
