// Package requires parses, names and evaluates the requirement expressions
// that gate buildings and units.
package requires

import (
	"fmt"
	"strings"
)

// Node is one requirement expression. The set of implementations is closed.
type Node interface {
	fmt.Stringer
	requirement()
}

// None is always satisfied.
type None struct{}

// False is never satisfied.
type False struct{}

// Unknown is a clause the evaluator cannot interpret. It is judged by the
// context's unknown-clause default, if any.
type Unknown struct {
	Text string
}

type Resource struct {
	ID          string
	Factionwide bool
}

type HiddenResource struct {
	ID          string
	Factionwide bool
}

// BuildingPresent requires a building, optionally at a minimum level.
type BuildingPresent struct {
	ID          string
	Level       string
	Queued      bool
	Factionwide bool
}

type MajorEvent struct {
	ID string
}

// EventCount requires an event counter to have reached Count.
type EventCount struct {
	Event string
	Count uint32
}

// Factions is satisfied for any listed faction or culture id, or "all".
type Factions struct {
	IDs []string
}

type BuildingFactions struct {
	IDs []string
}

type Diplomacy struct {
	Status DiplomacyStatus
	// Raw is the status token as written
	Raw     string
	Faction string
}

type Religion struct {
	ID     string
	Cmp    Comparison
	Amount uint32
}

// MajorityReligion with an empty ID means "the faction's own religion".
type MajorityReligion struct {
	ID string
}

type OfficialReligion struct{}

type Capability struct {
	Name   string
	Amount uint32
}

type Port struct{}

type IsPlayer struct{}

// Alias refers to a named expression in an AliasTable.
type Alias struct {
	Name string
}

type Not struct {
	Node Node
}

type And struct {
	Nodes []Node
}

type Or struct {
	Nodes []Node
}

func (None) requirement()             {}
func (False) requirement()            {}
func (Unknown) requirement()          {}
func (Resource) requirement()         {}
func (HiddenResource) requirement()   {}
func (BuildingPresent) requirement()  {}
func (MajorEvent) requirement()       {}
func (EventCount) requirement()       {}
func (Factions) requirement()         {}
func (BuildingFactions) requirement() {}
func (Diplomacy) requirement()        {}
func (Religion) requirement()         {}
func (MajorityReligion) requirement() {}
func (OfficialReligion) requirement() {}
func (Capability) requirement()       {}
func (Port) requirement()             {}
func (IsPlayer) requirement()         {}
func (Alias) requirement()            {}
func (Not) requirement()              {}
func (And) requirement()              {}
func (Or) requirement()               {}

func (None) String() string  { return "none" }
func (False) String() string { return "false" }

func (n Unknown) String() string { return n.Text }

func (n Resource) String() string {
	return withFlags("resource "+n.ID, false, n.Factionwide)
}

func (n HiddenResource) String() string {
	return withFlags("hidden_resource "+n.ID, false, n.Factionwide)
}

func (n BuildingPresent) String() string {
	if n.Level != "" {
		return withFlags("building_present_min_level "+n.ID+" "+n.Level, n.Queued, n.Factionwide)
	}
	return withFlags("building_present "+n.ID, n.Queued, n.Factionwide)
}

func (n MajorEvent) String() string { return fmt.Sprintf("major_event %q", n.ID) }

func (n EventCount) String() string { return fmt.Sprintf("event_counter %s %d", n.Event, n.Count) }

func (n Factions) String() string { return "factions " + idList(n.IDs) }

func (n BuildingFactions) String() string { return "building_factions " + idList(n.IDs) }

func (n Diplomacy) String() string {
	status := n.Raw
	if status == "" {
		status = n.Status.String()
	}
	return fmt.Sprintf("diplomatic_status %s %s", status, n.Faction)
}

func (n Religion) String() string {
	return fmt.Sprintf("region_religion %s %s %d", n.ID, n.Cmp, n.Amount)
}

func (n MajorityReligion) String() string {
	if n.ID == "" {
		return "majority_religion"
	}
	return "majority_religion " + n.ID
}

func (OfficialReligion) String() string { return "official_religion" }

func (n Capability) String() string { return fmt.Sprintf("capability %s %d", n.Name, n.Amount) }

func (Port) String() string     { return "port" }
func (IsPlayer) String() string { return "is_player" }

func (n Alias) String() string { return n.Name }

func (n Not) String() string { return "not " + group(n.Node) }

func (n And) String() string { return join(n.Nodes, " and ", "none") }

func (n Or) String() string { return join(n.Nodes, " or ", "false") }

func withFlags(s string, queued, factionwide bool) string {
	if queued {
		s += " queued"
	}
	if factionwide {
		s += " factionwide"
	}
	return s
}

func idList(ids []string) string {
	if len(ids) == 0 {
		return "{ }"
	}
	return "{ " + strings.Join(ids, ", ") + ", }"
}

func group(n Node) string {
	switch n.(type) {
	case And, Or:
		return "(" + n.String() + ")"
	}
	return n.String()
}

func join(nodes []Node, sep, empty string) string {
	if len(nodes) == 0 {
		return empty
	}
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = group(n)
	}
	return strings.Join(parts, sep)
}

// AllOf conjoins nodes, flattening nested And nodes. A single node is
// returned unwrapped. Flattening does not change the evaluated result.
func AllOf(nodes ...Node) Node {
	var flat []Node
	for _, n := range nodes {
		if a, ok := n.(And); ok {
			flat = append(flat, a.Nodes...)
			continue
		}
		flat = append(flat, n)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return And{Nodes: flat}
}

// AnyOf disjoins nodes, flattening nested Or nodes. A single node is
// returned unwrapped.
func AnyOf(nodes ...Node) Node {
	var flat []Node
	for _, n := range nodes {
		if o, ok := n.(Or); ok {
			flat = append(flat, o.Nodes...)
			continue
		}
		flat = append(flat, n)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Or{Nodes: flat}
}

// Walk calls fn for n and every node below it, depth first. Aliases are not
// followed.
func Walk(n Node, fn func(Node)) {
	fn(n)
	switch v := n.(type) {
	case Not:
		Walk(v.Node, fn)
	case And:
		for _, c := range v.Nodes {
			Walk(c, fn)
		}
	case Or:
		for _, c := range v.Nodes {
			Walk(c, fn)
		}
	}
}
