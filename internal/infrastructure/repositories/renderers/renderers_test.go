//go:build unit

package renderers_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/infrastructure/repositories/renderers"
)

func twoFindingReport() *entities.OutdatedReport {
	report := entities.NewOutdatedReport()
	report.Merge(
		entities.OutdatedFinding{
			OwningPackage: "app", DependencyName: "regex", DeclaredRequirement: "^0.1", LatestVersion: "1.3.0",
		},
		entities.OutdatedFinding{
			OwningPackage: "app", DependencyName: "rand", DeclaredRequirement: "^0.7", LatestVersion: "0.8.5",
		},
	)
	return report
}

func TestTextRenderer(t *testing.T) {
	t.Parallel()

	t.Run("should render the up-to-date message for an empty report", func(t *testing.T) {
		t.Parallel()

		// given
		renderer := renderers.NewTextRenderer()

		// when
		output, err := renderer.Render(entities.NewOutdatedReport())

		// then
		require.NoError(t, err)
		assert.Equal(t, "All dependencies are up-to-date!", string(output))
	})

	t.Run("should mark the last finding of a package with the closing branch", func(t *testing.T) {
		t.Parallel()

		// given
		renderer := renderers.NewTextRenderer()

		// when
		output, err := renderer.Render(twoFindingReport())

		// then
		require.NoError(t, err)
		assert.Equal(t, "app\n\t├── regex: ^0.1 -> 1.3.0\n\t└── rand: ^0.7 -> 0.8.5", string(output))
	})

	t.Run("should render packages in lexical order", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewOutdatedReport()
		report.Merge(
			entities.OutdatedFinding{OwningPackage: "web", DependencyName: "axum", DeclaredRequirement: "^0.6", LatestVersion: "0.7.4"},
			entities.OutdatedFinding{OwningPackage: "core", DependencyName: "log", DeclaredRequirement: "^0.3", LatestVersion: "0.4.20"},
		)
		renderer := renderers.NewTextRenderer()

		// when
		output, err := renderer.Render(report)

		// then
		require.NoError(t, err)
		lines := strings.Split(string(output), "\n")
		assert.Equal(t, []string{
			"core",
			"\t└── log: ^0.3 -> 0.4.20",
			"web",
			"\t└── axum: ^0.6 -> 0.7.4",
		}, lines)
	})
}

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	t.Run("should keep the document keys in a fixed order", func(t *testing.T) {
		t.Parallel()

		// given
		report := twoFindingReport()
		report.Skipped = 1
		renderer := renderers.NewJSONRenderer()

		// when
		output, err := renderer.Render(report)

		// then
		require.NoError(t, err)
		text := string(output)
		assert.Less(t, strings.Index(text, `"outdated"`), strings.Index(text, `"total"`))
		assert.Less(t, strings.Index(text, `"total"`), strings.Index(text, `"skipped"`))

		var decoded struct {
			Outdated map[string][]map[string]string `json:"outdated"`
			Total    int                            `json:"total"`
			Skipped  int                            `json:"skipped"`
		}
		require.NoError(t, json.Unmarshal(output, &decoded))
		assert.Equal(t, 2, decoded.Total)
		assert.Equal(t, 1, decoded.Skipped)
		assert.Equal(t, "regex", decoded.Outdated["app"][0]["dependency"])
		assert.Equal(t, "^0.1", decoded.Outdated["app"][0]["declared"])
		assert.Equal(t, "1.3.0", decoded.Outdated["app"][0]["latest"])
	})

	t.Run("should render an empty object for an empty report", func(t *testing.T) {
		t.Parallel()

		// given
		renderer := renderers.NewJSONRenderer()

		// when
		output, err := renderer.Render(entities.NewOutdatedReport())

		// then
		require.NoError(t, err)
		assert.JSONEq(t, `{"outdated": {}, "total": 0, "skipped": 0}`, string(output))
	})
}

func TestTableRenderer(t *testing.T) {
	t.Parallel()

	t.Run("should align every column", func(t *testing.T) {
		t.Parallel()

		// given
		renderer := renderers.NewTableRenderer()

		// when
		output, err := renderer.Render(twoFindingReport())

		// then
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			"PACKAGE  DEPENDENCY  DECLARED  LATEST",
			"app      regex       ^0.1      1.3.0",
			"app      rand        ^0.7      0.8.5",
		}, "\n"), string(output))
	})

	t.Run("should render the up-to-date message for an empty report", func(t *testing.T) {
		t.Parallel()

		// given
		renderer := renderers.NewTableRenderer()

		// when
		output, err := renderer.Render(entities.NewOutdatedReport())

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.UpToDateMessage, string(output))
	})
}
