package entities

import "github.com/Masterminds/semver/v3"

// RegistryVersionInfo is the outcome of one latest-version selection.
type RegistryVersionInfo struct {
	CrateName   string
	Version     *semver.Version
	LastUpdated string
}

// EmptyRegistryVersionInfo is returned when no release is eligible for selection.
func EmptyRegistryVersionInfo() RegistryVersionInfo {
	return RegistryVersionInfo{Version: semver.New(0, 0, 0, "", "")}
}

// IsEmpty reports whether no eligible release was found.
func (i RegistryVersionInfo) IsEmpty() bool {
	return i.CrateName == "" && (i.Version == nil || i.Version.Equal(semver.New(0, 0, 0, "", "")))
}

// SelectionOptions tune the latest-version selection policy.
type SelectionOptions struct {
	// SkipPrereleases drops pre-release records before selection.
	SkipPrereleases bool
}
