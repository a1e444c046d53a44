package repositories

import (
	"context"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
)

// WorkspaceRepository reads a project's manifest and yields the declared
// dependencies of every member package.
type WorkspaceRepository interface {
	// Load locates the project from manifestPath (a manifest file, a directory,
	// or empty for the working directory). Failures are *entities.SetupError.
	Load(ctx context.Context, manifestPath string) (entities.PackageDependencySet, error)
}
