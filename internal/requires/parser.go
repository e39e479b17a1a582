package requires

import (
	"strings"

	"github.com/jonathan/mod-roster/internal/fields"
)

// ignoredPredicates are predicates with a known shape that no context can
// judge. Their arguments are consumed and kept as Unknown text.
var ignoredPredicates = map[string]bool{
	"is_toggled":      true,
	"region_trait":    true,
	"agent_type":      true,
	"agent":           true,
	"guild":           true,
	"guild_level":     true,
	"building_level":  true,
	"settlement_type": true,
	"religion":        true,
	"not_rebel":       true,
}

// Parse builds the expression tree for requirement text. It does not
// evaluate anything and does not look up aliases.
func Parse(src string) (Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, newGrammarError(src, 0, "empty expression")
	}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorAt(t, "unexpected "+describe(t))
	}
	return n, nil
}

// MustParse is Parse for expressions known to be valid. It panics on error.
func MustParse(src string) Node {
	n, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return n
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorAt(t token, message string) error {
	return newGrammarError(p.src, t.pos, message)
}

func describe(t token) string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokString:
		return "string"
	}
	return "token " + t.text
}

func (p *parser) parseOr() (Node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	nodes := []Node{first}
	for p.peek().is("or") {
		p.next()
		n, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 1 {
		return first, nil
	}
	return Or{Nodes: nodes}, nil
}

func (p *parser) parseAnd() (Node, error) {
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	nodes := []Node{first}
	for p.peek().is("and") {
		p.next()
		n, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 1 {
		return first, nil
	}
	return And{Nodes: nodes}, nil
}

func (p *parser) parseNot() (Node, error) {
	if p.peek().is("not") {
		p.next()
		n, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not{Node: n}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.peek()
	switch t.kind {
	case tokLParen:
		p.next()
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, p.errorAt(c, "expected )")
		}
		return n, nil
	case tokIdent:
	default:
		return nil, p.errorAt(t, "expected predicate, found "+describe(t))
	}

	p.next()
	switch kw := strings.ToLower(t.text); kw {
	case "none", "true":
		return None{}, nil
	case "false":
		return False{}, nil
	case "and", "or":
		return nil, p.errorAt(t, "expected predicate, found "+kw)
	case "factions":
		ids, err := p.idBlock()
		if err != nil {
			return nil, err
		}
		return Factions{IDs: ids}, nil
	case "building_factions":
		ids, err := p.idBlock()
		if err != nil {
			return nil, err
		}
		return BuildingFactions{IDs: ids}, nil
	case "resource", "hidden_resource":
		id, err := p.ident("resource id")
		if err != nil {
			return nil, err
		}
		_, factionwide := p.modifiers()
		if kw == "resource" {
			return Resource{ID: id, Factionwide: factionwide}, nil
		}
		return HiddenResource{ID: id, Factionwide: factionwide}, nil
	case "building_present":
		id, err := p.ident("building id")
		if err != nil {
			return nil, err
		}
		queued, factionwide := p.modifiers()
		return BuildingPresent{ID: id, Queued: queued, Factionwide: factionwide}, nil
	case "building_present_min_level":
		id, err := p.ident("building id")
		if err != nil {
			return nil, err
		}
		level, err := p.ident("building level")
		if err != nil {
			return nil, err
		}
		queued, factionwide := p.modifiers()
		return BuildingPresent{ID: id, Level: level, Queued: queued, Factionwide: factionwide}, nil
	case "major_event":
		id, err := p.name("event id")
		if err != nil {
			return nil, err
		}
		return MajorEvent{ID: id}, nil
	case "event_counter":
		id, err := p.name("event counter")
		if err != nil {
			return nil, err
		}
		n, err := p.amount()
		if err != nil {
			return nil, err
		}
		return EventCount{Event: id, Count: n}, nil
	case "diplomacy", "diplomatic_status":
		status, err := p.ident("diplomatic status")
		if err != nil {
			return nil, err
		}
		faction, err := p.ident("faction id")
		if err != nil {
			return nil, err
		}
		return Diplomacy{Status: diplomacyVocab.Value(status), Raw: status, Faction: faction}, nil
	case "region_religion":
		id, err := p.ident("religion id")
		if err != nil {
			return nil, err
		}
		cmp := CompareGreaterEqual
		if p.peek().kind == tokCompare {
			cmp = comparisonVocab.Value(p.next().text)
		}
		n, err := p.amount()
		if err != nil {
			return nil, err
		}
		return Religion{ID: id, Cmp: cmp, Amount: n}, nil
	case "majority_religion":
		if p.atOperand() {
			return MajorityReligion{ID: p.next().text}, nil
		}
		return MajorityReligion{}, nil
	case "official_religion":
		return OfficialReligion{}, nil
	case "capability":
		name, err := p.ident("capability name")
		if err != nil {
			return nil, err
		}
		n, err := p.amount()
		if err != nil {
			return nil, err
		}
		return Capability{Name: name, Amount: n}, nil
	case "port":
		return Port{}, nil
	case "is_player":
		return IsPlayer{}, nil
	}

	if ignoredPredicates[strings.ToLower(t.text)] {
		return p.skipArgs(t), nil
	}
	return Alias{Name: t.text}, nil
}

// atOperand reports whether the next token is a plain identifier rather than
// an operator keyword.
func (p *parser) atOperand() bool {
	t := p.peek()
	return t.kind == tokIdent && !t.is("and") && !t.is("or") && !t.is("not")
}

func (p *parser) ident(what string) (string, error) {
	if !p.atOperand() {
		t := p.peek()
		return "", p.errorAt(t, "expected "+what+", found "+describe(t))
	}
	return p.next().text, nil
}

// name accepts a quoted string or a bare identifier.
func (p *parser) name(what string) (string, error) {
	if p.peek().kind == tokString {
		return p.next().text, nil
	}
	return p.ident(what)
}

func (p *parser) amount() (uint32, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return 0, p.errorAt(t, "expected number, found "+describe(t))
	}
	n, err := fields.MaybeFloatAsInt(t.text)
	if err != nil {
		return 0, p.errorAt(t, "expected number, found "+describe(t))
	}
	p.next()
	return n, nil
}

// modifiers consumes trailing queued/factionwide flags in any order.
func (p *parser) modifiers() (queued, factionwide bool) {
	for {
		switch t := p.peek(); {
		case t.is("queued"):
			queued = true
		case t.is("factionwide"):
			factionwide = true
		default:
			return queued, factionwide
		}
		p.next()
	}
}

func (p *parser) idBlock() ([]string, error) {
	if t := p.next(); t.kind != tokLBrace {
		return nil, p.errorAt(t, "expected {")
	}
	var ids []string
	for {
		t := p.next()
		switch t.kind {
		case tokRBrace:
			return ids, nil
		case tokComma:
		case tokIdent:
			ids = append(ids, t.text)
		default:
			return nil, p.errorAt(t, "expected id or }, found "+describe(t))
		}
	}
}

// skipArgs consumes tokens up to the next and/or, unmatched ')', or end of
// input, and returns them as an Unknown clause.
func (p *parser) skipArgs(head token) Node {
	depth := 0
	end := head.pos + len(head.text)
loop:
	for {
		t := p.peek()
		switch t.kind {
		case tokEOF:
			break loop
		case tokLParen, tokLBrace:
			depth++
		case tokRParen, tokRBrace:
			if depth == 0 {
				break loop
			}
			depth--
		case tokIdent:
			if depth == 0 && (t.is("and") || t.is("or")) {
				break loop
			}
		}
		p.next()
		end = t.pos + len(t.text)
		if t.kind == tokString {
			end += 2
		}
	}
	return Unknown{Text: strings.TrimSpace(p.src[head.pos:end])}
}
