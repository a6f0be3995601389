package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Change describes a package whose installed version differs from its pin.
type Change struct {
	Name string
	From string
	To   string
}

// SyncPlan is the difference between an installed package set and a lock file.
// Applying it makes the environment match the lock file exactly.
type SyncPlan struct {
	Install []Pin
	Remove  []Pin
	Change  []Change
}

// PlanSync compares the installed packages with the lock file.
// Packages present only in the environment are removed, packages present only in the
// lock file are installed, and version mismatches are changed to the pinned version.
func PlanSync(installed []Pin, lock Lockfile) SyncPlan {
	have := make(map[string]Pin, len(installed))
	for _, pin := range installed {
		have[pin.Key()] = pin
	}

	var plan SyncPlan
	want := make(map[string]struct{}, len(lock.Pins))
	for _, pin := range lock.Pins {
		key := pin.Key()
		want[key] = struct{}{}

		current, ok := have[key]
		switch {
		case !ok:
			plan.Install = append(plan.Install, pin)
		case current.Version != pin.Version:
			plan.Change = append(plan.Change, Change{Name: pin.Name, From: current.Version, To: pin.Version})
		}
	}

	for _, pin := range installed {
		if _, ok := want[pin.Key()]; !ok {
			plan.Remove = append(plan.Remove, pin)
		}
	}

	byKey := func(a, b Pin) int { return strings.Compare(a.Key(), b.Key()) }
	slices.SortFunc(plan.Install, byKey)
	slices.SortFunc(plan.Remove, byKey)
	slices.SortFunc(plan.Change, func(a, b Change) int {
		return strings.Compare(NormalizeName(a.Name), NormalizeName(b.Name))
	})

	return plan
}

// Empty reports whether the installed set already matches the lock file exactly.
func (p SyncPlan) Empty() bool {
	return len(p.Install) == 0 && len(p.Remove) == 0 && len(p.Change) == 0
}

// Summary returns a short human readable description of the plan.
func (p SyncPlan) Summary() string {
	if p.Empty() {
		return "environment already matches lock file"
	}
	return fmt.Sprintf("%d to install, %d to change, %d to remove", len(p.Install), len(p.Change), len(p.Remove))
}

// Describe lists every difference on its own line, e.g. "+ pkga==1.2.3".
func (p SyncPlan) Describe() string {
	lines := make([]string, 0, len(p.Install)+len(p.Change)+len(p.Remove))
	for _, pin := range p.Install {
		lines = append(lines, "+ "+pin.String())
	}
	for _, c := range p.Change {
		lines = append(lines, fmt.Sprintf("~ %s %s -> %s", c.Name, c.From, c.To))
	}
	for _, pin := range p.Remove {
		lines = append(lines, "- "+pin.String())
	}
	return strings.Join(lines, "\n")
}
