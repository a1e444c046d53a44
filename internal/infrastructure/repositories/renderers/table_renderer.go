package renderers

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
)

const columnGap = "  "

// TableRenderer prints findings as aligned columns.
type TableRenderer struct{}

// NewTableRenderer creates the table renderer.
func NewTableRenderer() repositories.RendererRepository {
	return &TableRenderer{}
}

func (r *TableRenderer) Name() string { return "table" }

// Render writes a header row followed by one row per finding.
func (r *TableRenderer) Render(report *entities.OutdatedReport) ([]byte, error) {
	if report.IsEmpty() {
		return []byte(entities.UpToDateMessage), nil
	}

	rows := [][]string{{"PACKAGE", "DEPENDENCY", "DECLARED", "LATEST"}}
	for _, pkg := range report.Packages() {
		for _, f := range report.Findings(pkg) {
			rows = append(rows, []string{pkg, f.DependencyName, f.DeclaredRequirement, f.LatestVersion})
		}
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		lines = append(lines, strings.Join(cells, columnGap))
	}

	return []byte(strings.Join(lines, "\n")), nil
}
