package requires

import (
	"fmt"
	"strings"
)

// Evaluate judges n under ctx and resolves an indeterminate answer to true:
// a requirement the context has no opinion about does not block.
func Evaluate(n Node, aliases *AliasTable, ctx *Context) (bool, error) {
	t, err := TryEvaluate(n, aliases, ctx)
	if err != nil {
		return false, err
	}
	return t.Resolve(true), nil
}

// TryEvaluate judges n under ctx. Aliases are resolved lazily; an undefined
// alias is a *LookupError and a self-referential chain a *CycleError.
func TryEvaluate(n Node, aliases *AliasTable, ctx *Context) (Tri, error) {
	e := &evaluator{aliases: aliases, ctx: ctx}
	return e.eval(n)
}

type evaluator struct {
	aliases *AliasTable
	ctx     *Context
	// chain is the stack of aliases currently being expanded
	chain []string
}

func (e *evaluator) eval(n Node) (Tri, error) {
	switch v := n.(type) {
	case None:
		return Satisfied, nil
	case False:
		return Unsatisfied, nil
	case Unknown:
		return e.ctx.Judge(FactUnknown, v.Text), nil
	case Resource:
		return e.ctx.Judge(FactResource, v.ID), nil
	case HiddenResource:
		return e.ctx.Judge(FactHiddenResource, v.ID), nil
	case BuildingPresent:
		set := e.ctx.Set(FactBuilding)
		if v.Level != "" && set.Has(v.Level) {
			return set.Judge(v.Level), nil
		}
		return set.Judge(v.ID), nil
	case MajorEvent:
		return e.ctx.Judge(FactEvent, v.ID), nil
	case EventCount:
		if e.ctx == nil {
			return Indeterminate, nil
		}
		have, ok := e.ctx.Counters.Value(v.Event)
		if !ok {
			return Indeterminate, nil
		}
		return TriOf(have >= v.Count), nil
	case Factions:
		return judgeAny(e.ctx.Set(FactFaction), v.IDs), nil
	case BuildingFactions:
		set := e.ctx.Set(FactBuildingFaction)
		if set == nil {
			set = e.ctx.Set(FactFaction)
		}
		return judgeAny(set, v.IDs), nil
	case Diplomacy:
		status := v.Status.String()
		if v.Status == DiplomacyUnknown {
			status = strings.ToLower(v.Raw)
		}
		return e.ctx.Judge(FactDiplomacy, status+":"+v.Faction), nil
	case Religion:
		if e.ctx != nil {
			if have, ok := e.ctx.Religions.Value(v.ID); ok {
				return TriOf(v.Cmp.Holds(have, v.Amount)), nil
			}
		}
		return e.ctx.Judge(FactReligion, v.ID), nil
	case MajorityReligion:
		if v.ID == "" {
			return e.ctx.Judge(FactReligion, "majority"), nil
		}
		return e.ctx.Judge(FactReligion, v.ID), nil
	case OfficialReligion:
		return e.ctx.Judge(FactReligion, "official"), nil
	case Capability:
		return e.ctx.Judge(FactCapability, v.Name), nil
	case Port:
		return e.ctx.Judge(FactPort, "port"), nil
	case IsPlayer:
		return e.ctx.Judge(FactPlayer, "player"), nil
	case Alias:
		return e.alias(v.Name)
	case Not:
		t, err := e.eval(v.Node)
		if err != nil {
			return Indeterminate, err
		}
		return t.Not(), nil
	case And:
		return e.combine(v.Nodes, false)
	case Or:
		return e.combine(v.Nodes, true)
	}
	panic(fmt.Sprintf("requires: unhandled node %T", n))
}

// combine drops indeterminate children. The result is Indeterminate only if
// every child was; otherwise And needs every determinate child satisfied and
// Or needs any.
func (e *evaluator) combine(nodes []Node, disjunction bool) (Tri, error) {
	known := false
	hit := false
	for _, c := range nodes {
		t, err := e.eval(c)
		if err != nil {
			return Indeterminate, err
		}
		if !t.Known() {
			continue
		}
		known = true
		if (t == Satisfied) == disjunction {
			hit = true
		}
	}
	switch {
	case !known:
		return Indeterminate, nil
	case disjunction:
		return TriOf(hit), nil
	default:
		return TriOf(!hit), nil
	}
}

func (e *evaluator) alias(name string) (Tri, error) {
	for _, seen := range e.chain {
		if strings.EqualFold(seen, name) {
			chain := append(append([]string{}, e.chain...), name)
			return Indeterminate, &CycleError{Chain: chain}
		}
	}
	bound, err := e.aliases.Lookup(name)
	if err != nil {
		return Indeterminate, err
	}
	e.chain = append(e.chain, name)
	defer func() { e.chain = e.chain[:len(e.chain)-1] }()
	return e.eval(bound)
}

// judgeAny is satisfied if any id is, unsatisfied if all are, and
// indeterminate otherwise. An empty list is unsatisfied.
func judgeAny(set *ChoiceSet, ids []string) Tri {
	if set == nil {
		return Indeterminate
	}
	result := Unsatisfied
	for _, id := range ids {
		switch set.Judge(id) {
		case Satisfied:
			return Satisfied
		case Indeterminate:
			result = Indeterminate
		}
	}
	return result
}
