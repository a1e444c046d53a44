package renderers

import (
	"encoding/json"

	"github.com/iancoleman/orderedmap"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
)

// JSONRenderer outputs the report as a JSON document with packages in lexical order.
type JSONRenderer struct{}

// NewJSONRenderer creates the JSON renderer.
func NewJSONRenderer() repositories.RendererRepository {
	return &JSONRenderer{}
}

type jsonFinding struct {
	Dependency string `json:"dependency"`
	Declared   string `json:"declared"`
	Latest     string `json:"latest"`
}

func (r *JSONRenderer) Name() string { return "json" }

// Render produces {"outdated": {<package>: [...]}, "total": n, "skipped": n}.
func (r *JSONRenderer) Render(report *entities.OutdatedReport) ([]byte, error) {
	packages := orderedmap.New()
	for _, pkg := range report.Packages() {
		findings := report.Findings(pkg)
		items := make([]jsonFinding, 0, len(findings))
		for _, f := range findings {
			items = append(items, jsonFinding{
				Dependency: f.DependencyName,
				Declared:   f.DeclaredRequirement,
				Latest:     f.LatestVersion,
			})
		}
		packages.Set(pkg, items)
	}

	output := orderedmap.New()
	output.Set("outdated", packages)
	output.Set("total", report.Len())
	output.Set("skipped", report.Skipped)

	return json.MarshalIndent(output, "", "  ")
}
