//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DependencyBuilder helps create test dependency declarations with a fluent interface.
type DependencyBuilder struct {
	*testkit.BaseBuilder
	name          string
	requirement   string
	kind          entities.RequirementKind
	lockedVersion string
	source        entities.SourceKind
}

// NewDependencyBuilder creates a new dependency builder with sensible defaults.
func NewDependencyBuilder() *DependencyBuilder {
	return &DependencyBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "serde",
		requirement: "^1.0",
		kind:        entities.RequirementExplicit,
		source:      entities.SourceRegistry,
	}
}

// WithName sets the crate name.
func (b *DependencyBuilder) WithName(name string) *DependencyBuilder {
	b.name = name
	return b
}

// WithRequirement sets an explicit version requirement.
func (b *DependencyBuilder) WithRequirement(requirement string) *DependencyBuilder {
	b.requirement = requirement
	b.kind = entities.RequirementExplicit
	return b
}

// WithLocked marks the requirement as locked at the given version.
func (b *DependencyBuilder) WithLocked(version string) *DependencyBuilder {
	b.lockedVersion = version
	b.kind = entities.RequirementLocked
	return b
}

// WithAnyVersion drops the requirement entirely.
func (b *DependencyBuilder) WithAnyVersion() *DependencyBuilder {
	b.requirement = ""
	b.kind = entities.RequirementAny
	return b
}

// WithLocalPath marks the dependency as a path dependency.
func (b *DependencyBuilder) WithLocalPath() *DependencyBuilder {
	b.source = entities.SourceLocalPath
	return b
}

// Build creates the dependency (satisfies testkit.Builder interface).
func (b *DependencyBuilder) Build() interface{} {
	return b.BuildDependency()
}

// BuildDeclaration creates the raw declaration as a workspace provider would.
func (b *DependencyBuilder) BuildDeclaration() entities.DependencyDeclaration {
	decl := entities.DependencyDeclaration{
		Name:          b.name,
		Kind:          b.kind,
		LockedVersion: b.lockedVersion,
		Source:        b.source,
	}
	if b.kind != entities.RequirementAny {
		decl.Requirement = entities.MustParseVersionRequirement(b.requirement)
	}
	return decl
}

// BuildDependency creates the normalized dependency with a concrete return type.
func (b *DependencyBuilder) BuildDependency() entities.Dependency {
	return entities.NewDependency(b.BuildDeclaration())
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "serde"
	b.requirement = "^1.0"
	b.kind = entities.RequirementExplicit
	b.lockedVersion = ""
	b.source = entities.SourceRegistry
	return b
}

// Clone creates a deep copy of the DependencyBuilder.
func (b *DependencyBuilder) Clone() testkit.Builder {
	return &DependencyBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:          b.name,
		requirement:   b.requirement,
		kind:          b.kind,
		lockedVersion: b.lockedVersion,
		source:        b.source,
	}
}
