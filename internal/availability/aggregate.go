// Package availability aggregates every way a unit can be recruited into a
// single requirement and tech tier.
package availability

import (
	"log/slog"
	"strings"

	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/requires"
)

// Path is one building level recruit option for a unit.
type Path struct {
	Building string
	Level    string
	Tier     raw.Tier
	Option   raw.RecruitOption
	// Requires is option, level and ownership conjoined
	Requires requires.Node
}

// Aggregator indexes recruitment paths by unit.
type Aggregator struct {
	units []raw.Unit
	index map[string]int
	paths map[string][]Path
}

func key(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Build indexes every recruit option of every building level by unit id.
func Build(units []raw.Unit, buildings []raw.Building) (*Aggregator, error) {
	a := &Aggregator{
		units: units,
		index: make(map[string]int, len(units)),
		paths: map[string][]Path{},
	}
	for i, u := range units {
		if j, dup := a.index[key(u.ID)]; dup {
			return nil, &DuplicateUnitError{ID: u.ID, Line: u.Line, First: units[j].Line}
		}
		a.index[key(u.ID)] = i
	}

	count := 0
	for _, b := range buildings {
		for _, lvl := range b.Levels {
			for _, opt := range lvl.Recruits {
				i, ok := a.index[key(opt.Unit)]
				if !ok {
					return nil, &LookupError{Unit: opt.Unit, Building: b.ID, Level: lvl.Name, Line: opt.Line}
				}
				u := units[i]
				a.paths[key(u.ID)] = append(a.paths[key(u.ID)], Path{
					Building: b.ID,
					Level:    lvl.Name,
					Tier:     lvl.Tier,
					Option:   opt,
					Requires: requires.AllOf(opt.Requires, lvl.Requires, requires.Factions{IDs: u.Ownership}),
				})
				count++
			}
		}
	}
	slog.Debug("indexed recruitment paths", "units", len(units), "paths", count)
	return a, nil
}

// Units returns the units in source order.
func (a *Aggregator) Units() []raw.Unit {
	return a.units
}

// Unit finds a unit by id, ignoring case.
func (a *Aggregator) Unit(id string) (raw.Unit, bool) {
	i, ok := a.index[key(id)]
	if !ok {
		return raw.Unit{}, false
	}
	return a.units[i], true
}

// Paths returns the recruitment paths of a unit in building file order.
func (a *Aggregator) Paths(unitID string) []Path {
	return a.paths[key(unitID)]
}

// Requirement is the disjunction of every recruitment path of the unit. A
// unit with no path is never available. General units ignore their paths:
// they are available to their owners until an upgrade event of any other
// general unit has occurred.
func (a *Aggregator) Requirement(unitID string) requires.Node {
	u, ok := a.Unit(unitID)
	if !ok {
		return requires.False{}
	}
	if u.IsGeneral() {
		return requires.AllOf(append([]requires.Node{requires.Factions{IDs: u.Ownership}}, a.generalGate(u)...)...)
	}

	paths := a.Paths(unitID)
	if len(paths) == 0 {
		return requires.False{}
	}
	nodes := make([]requires.Node, len(paths))
	for i, p := range paths {
		nodes[i] = p.Requires
	}
	return requires.AnyOf(nodes...)
}

// generalGate is Not(MajorEvent(E)) for every distinct upgrade event E of
// the general units, except the unit's own.
func (a *Aggregator) generalGate(u raw.Unit) []requires.Node {
	var gate []requires.Node
	seen := map[string]bool{}
	if u.UpgradeEvent != "" {
		seen[key(u.UpgradeEvent)] = true
	}
	for _, other := range a.units {
		if !other.IsGeneral() || other.UpgradeEvent == "" || seen[key(other.UpgradeEvent)] {
			continue
		}
		seen[key(other.UpgradeEvent)] = true
		gate = append(gate, requires.Not{Node: requires.MajorEvent{ID: other.UpgradeEvent}})
	}
	return gate
}

// TechTier is the lowest settlement tier over all recruitment paths, or
// TierUnknown when there are none.
func (a *Aggregator) TechTier(unitID string) raw.Tier {
	tier := raw.TierUnknown
	for _, p := range a.Paths(unitID) {
		if p.Tier < tier {
			tier = p.Tier
		}
	}
	return tier
}

// TechTierFor is the lowest tier over the paths available under ctx. When
// no path is available it falls back to TechTier.
func (a *Aggregator) TechTierFor(unitID string, aliases *requires.AliasTable, ctx *requires.Context) (raw.Tier, error) {
	tier := raw.TierUnknown
	found := false
	for _, p := range a.Paths(unitID) {
		ok, err := requires.Evaluate(p.Requires, aliases, ctx)
		if err != nil {
			return raw.TierUnknown, err
		}
		if ok && p.Tier <= tier {
			tier = p.Tier
			found = true
		}
	}
	if !found {
		return a.TechTier(unitID), nil
	}
	return tier, nil
}
