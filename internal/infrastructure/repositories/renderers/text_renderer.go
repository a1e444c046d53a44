package renderers

import (
	"fmt"
	"strings"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
)

const (
	branchMiddle = "├──"
	branchLast   = "└──"
)

// TextRenderer prints one tree per package with outdated dependencies.
type TextRenderer struct{}

// NewTextRenderer creates the default tree renderer.
func NewTextRenderer() repositories.RendererRepository {
	return &TextRenderer{}
}

func (r *TextRenderer) Name() string { return "text" }

// Render writes the package name followed by one branch per finding, e.g.
//
//	app
//		├── regex: ^0.1 -> 1.3.0
//		└── rand: ^0.7 -> 0.8.5
func (r *TextRenderer) Render(report *entities.OutdatedReport) ([]byte, error) {
	if report.IsEmpty() {
		return []byte(entities.UpToDateMessage), nil
	}

	var sb strings.Builder
	for _, pkg := range report.Packages() {
		sb.WriteString(pkg + "\n")

		findings := report.Findings(pkg)
		for i, f := range findings {
			branch := branchMiddle
			if i == len(findings)-1 {
				branch = branchLast
			}
			fmt.Fprintf(&sb, "\t%s %s: %s -> %s\n",
				branch, f.DependencyName, f.DeclaredRequirement, f.LatestVersion)
		}
	}

	return []byte(strings.TrimRight(sb.String(), "\n")), nil
}
