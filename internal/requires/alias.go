package requires

import (
	"sort"
	"strings"
)

// AliasDef is one `alias <name> { requires <expr> }` declaration.
type AliasDef struct {
	Name     string
	Requires Node
	// Source names the file the alias came from, for diagnostics
	Source string
}

// AliasTable is the flat, immutable alias namespace of a source set. Names
// are matched case-insensitively.
type AliasTable struct {
	defs map[string]AliasDef
}

// NewAliasTable builds the table. A name defined twice is an error.
func NewAliasTable(defs []AliasDef) (*AliasTable, error) {
	t := &AliasTable{defs: make(map[string]AliasDef, len(defs))}
	for _, d := range defs {
		key := strings.ToLower(d.Name)
		if _, ok := t.defs[key]; ok {
			return nil, &DuplicateAliasError{Name: d.Name}
		}
		if d.Requires == nil {
			d.Requires = None{}
		}
		t.defs[key] = d
	}
	return t, nil
}

// Lookup returns the expression bound to name.
func (t *AliasTable) Lookup(name string) (Node, error) {
	if t != nil {
		if d, ok := t.defs[strings.ToLower(name)]; ok {
			return d.Requires, nil
		}
	}
	return nil, &LookupError{Name: name}
}

// Len returns the number of aliases.
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.defs)
}

// Names returns all alias names, sorted.
func (t *AliasTable) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.defs))
	for _, d := range t.defs {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// Check resolves every alias reference reachable from each definition and
// returns the first undefined or cyclic reference.
func (t *AliasTable) Check() error {
	for _, name := range t.Names() {
		if err := t.checkNode(Alias{Name: name}, nil); err != nil {
			return err
		}
	}
	return nil
}

func (t *AliasTable) checkNode(n Node, chain []string) error {
	var err error
	Walk(n, func(c Node) {
		a, ok := c.(Alias)
		if !ok || err != nil {
			return
		}
		for _, seen := range chain {
			if strings.EqualFold(seen, a.Name) {
				err = &CycleError{Chain: append(append([]string{}, chain...), a.Name)}
				return
			}
		}
		bound, lerr := t.Lookup(a.Name)
		if lerr != nil {
			err = lerr
			return
		}
		next := append(append([]string{}, chain...), a.Name)
		err = t.checkNode(bound, next)
	})
	return err
}
