package requires

import (
	"sort"
	"strings"
)

// Fact is the kind of judgment a ChoiceSet answers.
type Fact int

const (
	FactFaction Fact = iota
	FactBuildingFaction
	FactResource
	FactHiddenResource
	FactBuilding
	FactEvent
	FactDiplomacy
	FactReligion
	FactCapability
	FactPort
	FactPlayer
	// FactUnknown judges clauses the parser could not interpret
	FactUnknown
)

// AllKey is the choice key every faction context answers for.
const AllKey = "all"

// ChoiceSet is a set of true/false judgments with an optional default for
// keys it does not list. Keys are case-insensitive.
type ChoiceSet struct {
	Choices map[string]bool
	Default *bool
}

// NewChoiceSet builds a set where every key is judged true, falling back to
// def for other keys.
func NewChoiceSet(def bool, keys ...string) *ChoiceSet {
	cs := &ChoiceSet{Choices: make(map[string]bool, len(keys)), Default: &def}
	for _, k := range keys {
		if k != "" {
			cs.Choices[strings.ToLower(k)] = true
		}
	}
	return cs
}

// Set records a judgment for key.
func (cs *ChoiceSet) Set(key string, value bool) {
	if cs.Choices == nil {
		cs.Choices = map[string]bool{}
	}
	cs.Choices[strings.ToLower(key)] = value
}

// Has reports whether key is listed explicitly.
func (cs *ChoiceSet) Has(key string) bool {
	if cs == nil {
		return false
	}
	_, ok := cs.Choices[strings.ToLower(key)]
	return ok
}

// Judge answers key, then the default, then Indeterminate.
func (cs *ChoiceSet) Judge(key string) Tri {
	if cs == nil {
		return Indeterminate
	}
	if v, ok := cs.Choices[strings.ToLower(key)]; ok {
		return TriOf(v)
	}
	if cs.Default != nil {
		return TriOf(*cs.Default)
	}
	return Indeterminate
}

func (cs *ChoiceSet) clone() *ChoiceSet {
	out := &ChoiceSet{Choices: make(map[string]bool, len(cs.Choices))}
	for k, v := range cs.Choices {
		out.Choices[k] = v
	}
	if cs.Default != nil {
		d := *cs.Default
		out.Default = &d
	}
	return out
}

// CounterSet holds numeric values, such as event counters or religion
// percentages.
type CounterSet struct {
	Values  map[string]uint32
	Default *uint32
}

// Value returns the counter value and whether the set has an opinion.
func (c *CounterSet) Value(event string) (uint32, bool) {
	if c == nil {
		return 0, false
	}
	if v, ok := c.Values[strings.ToLower(event)]; ok {
		return v, true
	}
	if c.Default != nil {
		return *c.Default, true
	}
	return 0, false
}

// Context is the named set of facts a requirement is judged against. It
// answers only through its configured choice sets.
type Context struct {
	Name     string
	sets     map[Fact]*ChoiceSet
	Counters *CounterSet
	// Religions holds religion percentages, judged by Religion comparisons
	Religions *CounterSet
}

// NewContext returns an empty context that is indeterminate about everything.
func NewContext(name string) *Context {
	return &Context{Name: name, sets: map[Fact]*ChoiceSet{}}
}

// With installs a choice set for fact and returns c.
func (c *Context) With(fact Fact, cs *ChoiceSet) *Context {
	c.sets[fact] = cs
	return c
}

// Set returns the choice set for fact, or nil.
func (c *Context) Set(fact Fact) *ChoiceSet {
	if c == nil {
		return nil
	}
	return c.sets[fact]
}

// Judge answers one fact key.
func (c *Context) Judge(fact Fact, key string) Tri {
	return c.Set(fact).Judge(key)
}

// Facts lists the configured fact kinds in order.
func (c *Context) Facts() []Fact {
	facts := make([]Fact, 0, len(c.sets))
	for f := range c.sets {
		facts = append(facts, f)
	}
	sort.Slice(facts, func(i, j int) bool { return facts[i] < facts[j] })
	return facts
}

// ForFaction judges faction and building-faction predicates: the faction id,
// its culture and "all" are true, every other id is false.
func ForFaction(id, culture string) *Context {
	return NewContext("faction:"+id).
		With(FactFaction, NewChoiceSet(false, id, culture, AllKey)).
		With(FactBuildingFaction, NewChoiceSet(false, id, culture, AllKey))
}

// ForRegion judges hidden resources: those listed are present, others absent.
func ForRegion(id string, hiddenResources []string) *Context {
	return NewContext("region:"+id).
		With(FactHiddenResource, NewChoiceSet(false, hiddenResources...))
}

// ForEra judges major events and event counters: listed events have
// occurred, others have not, and unlisted counters are zero.
func ForEra(id string, events []string, counters map[string]uint32) *Context {
	c := NewContext("era:"+id).With(FactEvent, NewChoiceSet(false, events...))
	zero := uint32(0)
	c.Counters = &CounterSet{Values: make(map[string]uint32, len(counters)), Default: &zero}
	for k, v := range counters {
		c.Counters.Values[strings.ToLower(k)] = v
	}
	return c
}

// WithReligions installs religion percentages; religions not listed are at
// zero. It returns c.
func (c *Context) WithReligions(percent map[string]uint32) *Context {
	zero := uint32(0)
	c.Religions = &CounterSet{Values: make(map[string]uint32, len(percent)), Default: &zero}
	for k, v := range percent {
		c.Religions.Values[strings.ToLower(k)] = v
	}
	return c
}

// Merge combines contexts. Later contexts win on conflicting keys and
// defaults.
func Merge(name string, ctxs ...*Context) *Context {
	out := NewContext(name)
	for _, c := range ctxs {
		if c == nil {
			continue
		}
		for fact, cs := range c.sets {
			cur, ok := out.sets[fact]
			if !ok {
				out.sets[fact] = cs.clone()
				continue
			}
			for k, v := range cs.Choices {
				cur.Choices[k] = v
			}
			if cs.Default != nil {
				d := *cs.Default
				cur.Default = &d
			}
		}
		out.Counters = mergeCounters(out.Counters, c.Counters)
		out.Religions = mergeCounters(out.Religions, c.Religions)
	}
	return out
}

func mergeCounters(into, from *CounterSet) *CounterSet {
	if from == nil {
		return into
	}
	if into == nil {
		into = &CounterSet{Values: map[string]uint32{}}
	}
	for k, v := range from.Values {
		into.Values[k] = v
	}
	if from.Default != nil {
		d := *from.Default
		into.Default = &d
	}
	return into
}
