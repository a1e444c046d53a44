package entities

import "sort"

// PackageDependencySet maps each workspace package name to its dependency set.
type PackageDependencySet map[string]*DependencySet

// Add normalizes decl and records it under the given package.
func (p PackageDependencySet) Add(pkg string, decl DependencyDeclaration) {
	set, ok := p[pkg]
	if !ok {
		set = NewDependencySet()
		p[pkg] = set
	}
	set.Add(NewDependency(decl))
}

// Ensure registers a package even when it declares no dependencies.
func (p PackageDependencySet) Ensure(pkg string) {
	if _, ok := p[pkg]; !ok {
		p[pkg] = NewDependencySet()
	}
}

// PackageNames returns the package names in lexical order.
func (p PackageDependencySet) PackageNames() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DependencyCount returns the total number of dependencies over all packages.
func (p PackageDependencySet) DependencyCount() int {
	total := 0
	for _, set := range p {
		total += set.Len()
	}
	return total
}
