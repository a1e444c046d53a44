//go:build unit

package entities_test

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/test/domain/entitybuilders"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("should report a dependency whose latest release is outside the requirement", func(t *testing.T) {
		t.Parallel()

		// given
		dep := entitybuilders.NewDependencyBuilder().WithName("regex").WithRequirement("0.1").BuildDependency()
		info := entities.RegistryVersionInfo{CrateName: "regex", Version: semver.MustParse("1.3.0")}

		// when
		finding, outdated := entities.Evaluate("app", dep, info)

		// then
		assert.True(t, outdated)
		assert.Equal(t, entities.OutdatedFinding{
			OwningPackage:       "app",
			DependencyName:      "regex",
			DeclaredRequirement: "^0.1",
			LatestVersion:       "1.3.0",
		}, finding)
	})

	t.Run("should not report a dependency whose requirement accepts the latest release", func(t *testing.T) {
		t.Parallel()

		// given
		dep := entitybuilders.NewDependencyBuilder().WithName("serde").WithRequirement("1.0").BuildDependency()
		info := entities.RegistryVersionInfo{CrateName: "serde", Version: semver.MustParse("1.0.200")}

		// when
		_, outdated := entities.Evaluate("app", dep, info)

		// then
		assert.False(t, outdated)
	})

	t.Run("should never report a wildcard requirement", func(t *testing.T) {
		t.Parallel()

		// given
		dep := entitybuilders.NewDependencyBuilder().WithName("rand").WithAnyVersion().BuildDependency()
		info := entities.RegistryVersionInfo{CrateName: "rand", Version: semver.MustParse("0.8.5")}

		// when
		_, outdated := entities.Evaluate("app", dep, info)

		// then
		assert.False(t, outdated)
	})

	t.Run("should not report when the registry returned no version", func(t *testing.T) {
		t.Parallel()

		// given
		dep := entitybuilders.NewDependencyBuilder().BuildDependency()

		// when
		_, outdated := entities.Evaluate("app", dep, entities.RegistryVersionInfo{})

		// then
		assert.False(t, outdated)
	})
}

func TestIsUpToDate(t *testing.T) {
	t.Parallel()

	t.Run("should be the requirement match of the latest version", func(t *testing.T) {
		t.Parallel()

		// given
		req := entities.MustParseVersionRequirement("~0.7")

		// when
		upToDate := entities.IsUpToDate(req, semver.MustParse("0.7.3"))
		stale := entities.IsUpToDate(req, semver.MustParse("0.8.5"))

		// then
		assert.True(t, upToDate)
		assert.False(t, stale)
	})
}

func TestOutdatedReport(t *testing.T) {
	t.Parallel()

	t.Run("should be empty when created", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewOutdatedReport()

		// when
		empty := report.IsEmpty()

		// then
		assert.True(t, empty)
		assert.Zero(t, report.Len())
		assert.Empty(t, report.Packages())
	})

	t.Run("should group findings by owning package in arrival order", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewOutdatedReport()

		// when
		report.Merge(
			entities.OutdatedFinding{OwningPackage: "web", DependencyName: "rand"},
			entities.OutdatedFinding{OwningPackage: "app", DependencyName: "regex"},
			entities.OutdatedFinding{OwningPackage: "web", DependencyName: "axum"},
		)

		// then
		assert.Equal(t, []string{"app", "web"}, report.Packages())
		assert.Equal(t, 3, report.Len())
		web := report.Findings("web")
		assert.Equal(t, "rand", web[0].DependencyName)
		assert.Equal(t, "axum", web[1].DependencyName)
	})

	t.Run("should return no findings for an unknown package", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewOutdatedReport()

		// when
		findings := report.Findings("missing")

		// then
		assert.Empty(t, findings)
	})
}

func TestRegistryVersionInfo(t *testing.T) {
	t.Parallel()

	t.Run("should recognize the empty default", func(t *testing.T) {
		t.Parallel()

		// given
		info := entities.EmptyRegistryVersionInfo()

		// when
		empty := info.IsEmpty()

		// then
		assert.True(t, empty)
		assert.Equal(t, "0.0.0", info.Version.String())
	})

	t.Run("should not treat a real release as empty", func(t *testing.T) {
		t.Parallel()

		// given
		info := entities.RegistryVersionInfo{CrateName: "serde", Version: semver.MustParse("1.0.0")}

		// when
		empty := info.IsEmpty()

		// then
		assert.False(t, empty)
	})
}
