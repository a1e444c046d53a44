package entities

import "sort"

// UpToDateMessage is rendered when no dependency is outdated.
const UpToDateMessage = "All dependencies are up-to-date!"

// OutdatedFinding records a dependency whose latest release does not satisfy its requirement.
type OutdatedFinding struct {
	OwningPackage       string
	DependencyName      string
	DeclaredRequirement string
	LatestVersion       string
}

// OutdatedReport groups findings by owning package.
type OutdatedReport struct {
	findings map[string][]OutdatedFinding
	// Skipped counts dependencies whose registry lookup failed.
	Skipped int
}

// NewOutdatedReport creates an empty report.
func NewOutdatedReport() *OutdatedReport {
	return &OutdatedReport{findings: make(map[string][]OutdatedFinding)}
}

// Merge appends findings to their owning package, keeping arrival order.
func (r *OutdatedReport) Merge(findings ...OutdatedFinding) {
	for _, f := range findings {
		r.findings[f.OwningPackage] = append(r.findings[f.OwningPackage], f)
	}
}

// IsEmpty reports whether no package has outdated dependencies.
func (r *OutdatedReport) IsEmpty() bool {
	return len(r.findings) == 0
}

// Packages returns the package names that have findings, in lexical order.
func (r *OutdatedReport) Packages() []string {
	names := make([]string, 0, len(r.findings))
	for name := range r.findings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Findings returns the findings recorded for pkg.
func (r *OutdatedReport) Findings(pkg string) []OutdatedFinding {
	out := make([]OutdatedFinding, len(r.findings[pkg]))
	copy(out, r.findings[pkg])
	return out
}

// Len returns the total number of findings.
func (r *OutdatedReport) Len() int {
	total := 0
	for _, f := range r.findings {
		total += len(f)
	}
	return total
}
