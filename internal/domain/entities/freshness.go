package entities

import "github.com/Masterminds/semver/v3"

// IsUpToDate reports whether latest satisfies the declared requirement.
func IsUpToDate(req VersionRequirement, latest *semver.Version) bool {
	return req.Matches(latest)
}

// Evaluate compares dep against the registry answer and returns a finding
// when the dependency is stale.
func Evaluate(pkg string, dep Dependency, info RegistryVersionInfo) (OutdatedFinding, bool) {
	if info.Version == nil || IsUpToDate(dep.Requirement, info.Version) {
		return OutdatedFinding{}, false
	}
	return OutdatedFinding{
		OwningPackage:       pkg,
		DependencyName:      dep.Name,
		DeclaredRequirement: dep.Requirement.String(),
		LatestVersion:       info.Version.String(),
	}, true
}
