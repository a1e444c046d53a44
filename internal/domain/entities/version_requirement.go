package entities

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// AnyVersion is the requirement literal matching every released version.
const AnyVersion = "*"

// VersionRequirement is a canonical semantic-version range expression.
// Cargo treats a bare comparator such as "1.2" as a caret requirement, so the
// canonical form always carries the operator explicitly ("^1.2").
type VersionRequirement struct {
	raw         string
	constraints *semver.Constraints
	// prereleaseCores holds "major.minor.patch" of every comparator naming a pre-release.
	prereleaseCores []string
}

// ParseVersionRequirement canonicalizes a Cargo-style requirement and parses it.
// An empty string is the same as AnyVersion.
func ParseVersionRequirement(raw string) (VersionRequirement, error) {
	canonical, prereleaseCores := canonicalizeRequirement(raw)

	constraints, err := semver.NewConstraint(canonical)
	if err != nil {
		return VersionRequirement{}, fmt.Errorf("invalid version requirement %q: %w", raw, err)
	}

	return VersionRequirement{
		raw:             canonical,
		constraints:     constraints,
		prereleaseCores: prereleaseCores,
	}, nil
}

// MustParseVersionRequirement is ParseVersionRequirement for fixed literals.
// It panics on failure because a literal that does not parse is a defect.
func MustParseVersionRequirement(raw string) VersionRequirement {
	req, err := ParseVersionRequirement(raw)
	if err != nil {
		panic(fmt.Sprintf("fixed version requirement %q failed to parse: %v", raw, err))
	}
	return req
}

// String returns the canonical expression, e.g. "^0.1" or ">=1.0, <2.0".
func (r VersionRequirement) String() string {
	if r.raw == "" {
		return AnyVersion
	}
	return r.raw
}

// Matches reports whether version satisfies the requirement. A pre-release
// version only matches when a comparator names a pre-release of the same
// major.minor.patch.
func (r VersionRequirement) Matches(version *semver.Version) bool {
	if version == nil {
		return false
	}
	if r.constraints == nil {
		return MustParseVersionRequirement(AnyVersion).Matches(version)
	}
	if version.Prerelease() != "" && !slices.Contains(r.prereleaseCores, versionCore(version)) {
		return false
	}
	return r.constraints.Check(version)
}

// HasPrerelease reports whether any comparator names a pre-release version.
func (r VersionRequirement) HasPrerelease() bool {
	return len(r.prereleaseCores) > 0
}

func versionCore(v *semver.Version) string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// isWildcard reports whether the version part of a comparator uses "*", "x" or "X".
func isWildcard(comparator string) bool {
	core, _, _ := strings.Cut(strings.TrimLeft(comparator, "^~=<>"), "-")
	core, _, _ = strings.Cut(core, "+")
	for _, part := range strings.Split(core, ".") {
		if part == "*" || part == "x" || part == "X" {
			return true
		}
	}
	return false
}

func canonicalizeRequirement(raw string) (string, []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AnyVersion, nil
	}

	parts := strings.Split(raw, ",")
	comparators := make([]string, 0, len(parts))
	var prereleaseCores []string

	for _, part := range parts {
		comparator := strings.Join(strings.Fields(part), "")
		if comparator == "" {
			continue
		}
		if comparator[0] >= '0' && comparator[0] <= '9' && !isWildcard(comparator) {
			comparator = "^" + comparator
		}

		bare := strings.TrimLeft(comparator, "^~=<>")
		if v, err := semver.NewVersion(bare); err == nil && v.Prerelease() != "" {
			prereleaseCores = append(prereleaseCores, versionCore(v))
		}
		comparators = append(comparators, comparator)
	}

	if len(comparators) == 0 {
		return AnyVersion, nil
	}
	return strings.Join(comparators, ", "), prereleaseCores
}
