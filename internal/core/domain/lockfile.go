package domain

import "slices"

// Pin is a single fully resolved package in the lock file.
type Pin struct {
	// Name is the package name as emitted by the resolver.
	Name string

	// Version is the exact pinned version (or a direct reference such as a URL).
	Version string

	// Via lists what pulled the package in: direct requirements appear as
	// "-r <manifest>", transitive ones name the depending package.
	Via []string
}

// Key returns the normalized name of the pin.
func (p Pin) Key() string {
	return NormalizeName(p.Name)
}

// String renders the pin as name==version.
func (p Pin) String() string {
	return p.Name + "==" + p.Version
}

// Lockfile is the fully pinned, transitively resolved snapshot of a Manifest.
// It is derived state: regenerated every run and never edited by hand.
type Lockfile struct {
	Path string
	Pins []Pin
}

// Lookup returns the pin for the given package name, comparing normalized names.
func (l Lockfile) Lookup(name string) (Pin, bool) {
	key := NormalizeName(name)
	for _, pin := range l.Pins {
		if pin.Key() == key {
			return pin, true
		}
	}
	return Pin{}, false
}

// Covers returns the direct requirements of the manifest that have no pin, sorted.
// An empty result means the lock file pins every direct dependency.
func (l Lockfile) Covers(m Manifest) []string {
	var missing []string
	for _, req := range m.Requirements {
		if !req.Pinnable() {
			continue
		}
		if _, ok := l.Lookup(req.Name); !ok {
			missing = append(missing, req.Key())
		}
	}
	slices.Sort(missing)
	return slices.Compact(missing)
}
