package repositories

import (
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
)

// RendererRegistry manages all registered output formats.
type RendererRegistry struct {
	renderers map[string]domainRepos.RendererRepository
}

// NewRendererRegistry creates an empty renderer registry.
func NewRendererRegistry() *RendererRegistry {
	return &RendererRegistry{
		renderers: make(map[string]domainRepos.RendererRepository),
	}
}

// Register adds a renderer under its name.
func (r *RendererRegistry) Register(renderer domainRepos.RendererRepository) {
	r.renderers[renderer.Name()] = renderer
}

// Get returns the renderer for the given format.
func (r *RendererRegistry) Get(format string) (domainRepos.RendererRepository, error) {
	renderer, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %v)", format, r.Names())
	}
	return renderer, nil
}

// Names returns the registered format names in lexical order.
func (r *RendererRegistry) Names() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
