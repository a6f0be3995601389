package domain

import (
	"regexp"
	"strings"
)

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName returns the canonical form of a package name.
// Names compare equal when they only differ in case or in runs of "-", "_" and ".".
func NormalizeName(name string) string {
	return nameSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Requirement is a direct dependency declaration from the manifest.
type Requirement struct {
	// Name is the package name as written by the author (extras stripped).
	// It is empty for unnamed references such as URLs and local paths.
	Name string

	// Constraint is the optional version specifier (e.g. ">=1.2,<2"). Empty means any version.
	Constraint string

	// Marker is the environment marker after ";" (e.g. `sys_platform == "win32"`).
	Marker string

	// Reference is the URL or path of an unnamed requirement, passed to the resolver as is.
	Reference string
}

// Pinnable reports whether the resolver must pin this requirement on every
// platform. Marker-bearing requirements may be left out of the lock when the
// marker is false here, and unnamed references only get a name once resolved.
func (r Requirement) Pinnable() bool {
	return r.Name != "" && r.Marker == ""
}

// Key returns the normalized name of the requirement.
func (r Requirement) Key() string {
	return NormalizeName(r.Name)
}

// String renders the requirement the way it would appear in a manifest.
func (r Requirement) String() string {
	s := r.Name + r.Constraint
	if r.Name == "" {
		s = r.Reference
	}
	if r.Marker != "" {
		s += " ; " + r.Marker
	}
	return s
}

// Manifest is the ordered list of direct dependencies declared by the author.
// It is read once and never modified during a run.
type Manifest struct {
	Path         string
	Requirements []Requirement
}

// Names returns the normalized names of all direct requirements in declaration order.
func (m Manifest) Names() []string {
	names := make([]string, 0, len(m.Requirements))
	for _, req := range m.Requirements {
		if req.Name != "" {
			names = append(names, req.Key())
		}
	}
	return names
}
