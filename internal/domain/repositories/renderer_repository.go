package repositories

import "github.com/rios0rios0/cargo-outdated/internal/domain/entities"

// RendererRepository turns an outdated report into its textual representation.
type RendererRepository interface {
	// Name returns the output format identifier (e.g. "text", "json").
	Name() string

	// Render produces the output without a trailing newline.
	Render(report *entities.OutdatedReport) ([]byte, error)
}
