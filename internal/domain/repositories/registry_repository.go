package repositories

import (
	"context"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
)

// RegistryRepository abstracts a package registry that knows every published
// version of a crate.
type RegistryRepository interface {
	// FetchLatest returns the newest non-withdrawn release of the crate. A crate
	// with no eligible release yields entities.EmptyRegistryVersionInfo().
	// Failures are reported as *entities.FetchError.
	FetchLatest(
		ctx context.Context,
		name string,
		opts entities.SelectionOptions,
	) (entities.RegistryVersionInfo, error)
}
