package entities

// SourceKind classifies where a dependency resolves from.
type SourceKind int

const (
	SourceRegistry SourceKind = iota
	SourceLocalPath
	SourceOther
)

func (k SourceKind) String() string {
	switch k {
	case SourceRegistry:
		return "registry"
	case SourceLocalPath:
		return "path"
	default:
		return "other"
	}
}

// RequirementKind is the shape in which a manifest declares a version requirement.
type RequirementKind int

const (
	// RequirementAny means no constraint was declared.
	RequirementAny RequirementKind = iota
	// RequirementLocked means an exact version was pinned alongside a requirement.
	RequirementLocked
	// RequirementExplicit means the manifest spelled out a requirement.
	RequirementExplicit
)

// DependencyDeclaration is one dependency as handed over by a workspace provider,
// before normalization.
type DependencyDeclaration struct {
	Name          string
	Kind          RequirementKind
	Requirement   VersionRequirement // used for Locked and Explicit
	LockedVersion string             // used for Locked only
	Source        SourceKind
}

// Dependency is one declared external package requirement in canonical form.
type Dependency struct {
	Name        string
	Requirement VersionRequirement
	Source      SourceKind
}

// NewDependency normalizes a declaration: "any" becomes the wildcard requirement,
// locked and explicit declarations keep their requirement unchanged.
func NewDependency(decl DependencyDeclaration) Dependency {
	var req VersionRequirement
	switch decl.Kind {
	case RequirementAny:
		req = MustParseVersionRequirement(AnyVersion)
	case RequirementLocked, RequirementExplicit:
		req = decl.Requirement
	}

	return Dependency{
		Name:        decl.Name,
		Requirement: req,
		Source:      decl.Source,
	}
}

// IsLocalPath reports whether the dependency points at the local filesystem.
func (d Dependency) IsLocalPath() bool {
	return d.Source == SourceLocalPath
}

// Key is the identity of a dependency within one package.
func (d Dependency) Key() DependencyKey {
	return DependencyKey{Name: d.Name, Requirement: d.Requirement.String(), Source: d.Source}
}

// String returns a human-readable representation.
func (d Dependency) String() string {
	return d.Name + " " + d.Requirement.String()
}

// DependencyKey is the comparable identity (name, requirement, source kind).
type DependencyKey struct {
	Name        string
	Requirement string
	Source      SourceKind
}

// DependencySet is an insertion-ordered set of dependencies keyed by identity.
type DependencySet struct {
	items []Dependency
	seen  map[DependencyKey]struct{}
}

// NewDependencySet builds a set from the given dependencies, collapsing duplicates.
func NewDependencySet(deps ...Dependency) *DependencySet {
	set := &DependencySet{seen: make(map[DependencyKey]struct{})}
	for _, dep := range deps {
		set.Add(dep)
	}
	return set
}

// Add inserts dep unless an identical dependency is already present.
// It returns true when the set changed.
func (s *DependencySet) Add(dep Dependency) bool {
	if s.seen == nil {
		s.seen = make(map[DependencyKey]struct{})
	}
	key := dep.Key()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, dep)
	return true
}

// Items returns the members in insertion order.
func (s *DependencySet) Items() []Dependency {
	if s == nil {
		return nil
	}
	out := make([]Dependency, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of members.
func (s *DependencySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}
