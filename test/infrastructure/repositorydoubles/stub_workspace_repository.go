//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
)

// StubWorkspaceRepository implements repositories.WorkspaceRepository with a canned result.
type StubWorkspaceRepository struct {
	Packages entities.PackageDependencySet
	LoadErr  error
	// spy: manifest paths requested
	LoadedPaths []string
}

var _ repositories.WorkspaceRepository = (*StubWorkspaceRepository)(nil)

func (s *StubWorkspaceRepository) Load(
	_ context.Context,
	manifestPath string,
) (entities.PackageDependencySet, error) {
	s.LoadedPaths = append(s.LoadedPaths, manifestPath)
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.Packages, nil
}
