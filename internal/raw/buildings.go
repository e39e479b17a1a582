package raw

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jonathan/mod-roster/internal/fields"
	"github.com/jonathan/mod-roster/internal/records"
	"github.com/jonathan/mod-roster/internal/requires"
)

// BuildingSet is everything decoded from export_descr_buildings.
type BuildingSet struct {
	HiddenResources []string
	Aliases         []requires.AliasDef
	Buildings       []Building
}

type Building struct {
	ID     string
	Levels []Level
	Line   int
}

// Level is one building level with its own requirement and recruitment.
type Level struct {
	Name string
	// Settlement is city or castle when the level line names one
	Settlement string
	Requires   requires.Node
	Tier       Tier
	Recruits   []RecruitOption
	Line       int
}

// RecruitOption is one recruit or recruit_pool capability line.
type RecruitOption struct {
	Unit       string
	Experience uint32
	// Pool is set for recruit_pool lines, which also carry replenishment
	Pool     bool
	Initial  float64
	PerTurn  float64
	Max      float64
	Requires requires.Node
	Line     int
}

var requiresWord = regexp.MustCompile(`(?:^|\s)requires(?:\s|$)`)

// splitRequires separates "head requires expr" into head and expr. A line
// with no requires clause yields None.
func splitRequires(text string) (string, requires.Node, error) {
	loc := requiresWord.FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text), requires.None{}, nil
	}
	head := strings.TrimSpace(text[:loc[0]])
	expr := strings.TrimSpace(text[loc[1]:])
	node, err := requires.Parse(expr)
	if err != nil {
		return "", nil, err
	}
	return head, node, nil
}

// ParseBuildings decodes export_descr_buildings text: hidden resource names,
// aliases and buildings with their levels.
func ParseBuildings(text string, source string) (*BuildingSet, error) {
	recs, err := records.SplitText(text, records.StartsWith("building", "alias", "hidden_resources", "tags"))
	if err != nil {
		return nil, err
	}

	set := &BuildingSet{}
	for _, rec := range recs {
		head := rec.Head()
		switch records.FirstToken(head.Text) {
		case "hidden_resources":
			_, v := records.SplitPair(head.Text)
			set.HiddenResources = append(set.HiddenResources, fields.SplitList(v, fields.CommaOrWhitespace)...)
		case "tags":
		case "alias":
			def, err := decodeAlias(rec, source)
			if err != nil {
				return nil, err
			}
			set.Aliases = append(set.Aliases, def)
		case "building":
			b, err := decodeBuilding(rec)
			if err != nil {
				return nil, err
			}
			set.Buildings = append(set.Buildings, b)
		default:
			return nil, unexpectedLine(head)
		}
	}

	slog.Debug("decoded buildings",
		"buildings", len(set.Buildings),
		"aliases", len(set.Aliases),
		"hidden_resources", len(set.HiddenResources))
	return set, nil
}

func blockRoot(rec records.Record) (*records.Node, error) {
	nodes, err := records.ParseBlocks(rec.Lines)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, unexpectedLine(nodes[1].Line)
	}
	return nodes[0], nil
}

func decodeAlias(rec records.Record, source string) (requires.AliasDef, error) {
	root, err := blockRoot(rec)
	if err != nil {
		return requires.AliasDef{}, err
	}
	def := requires.AliasDef{Name: root.Value(), Source: source}
	req, ok := root.Child("requires")
	if !ok {
		return def, &fields.DecodeError{
			Record:  root.Text,
			Field:   "requires",
			Line:    root.Line.Number,
			Message: "missing required keyword",
		}
	}
	node, err := requires.Parse(req.Value())
	if err != nil {
		return def, recordError(root, req, err)
	}
	def.Requires = node
	return def, nil
}

func recordError(root, n *records.Node, err error) error {
	return &fields.DecodeError{
		Record:  root.Text,
		Field:   n.Key(),
		Line:    n.Line.Number,
		Message: "invalid value",
		Cause:   err,
	}
}

func decodeBuilding(rec records.Record) (Building, error) {
	root, err := blockRoot(rec)
	if err != nil {
		return Building{}, err
	}
	b := Building{ID: root.Value(), Line: root.Line.Number}

	levels, ok := root.Child("levels")
	if !ok || !levels.Block {
		return b, &fields.DecodeError{
			Record:  root.Text,
			Field:   "levels",
			Line:    root.Line.Number,
			Message: "missing required keyword",
		}
	}

	names := make(map[string]bool)
	for _, name := range strings.Fields(levels.Value()) {
		names[name] = true
	}
	for _, child := range levels.Children {
		if !child.Block || !names[child.Key()] {
			return b, unexpectedLine(child.Line)
		}
		lvl, err := decodeLevel(root, child)
		if err != nil {
			return b, err
		}
		b.Levels = append(b.Levels, lvl)
	}
	return b, nil
}

// decodeLevel reads a level header and its body:
//
//	wooden_pallisade city requires factions { ... }
//	{
//	    capability { recruit_pool ... }
//	    settlement_min village
//	}
func decodeLevel(root, n *records.Node) (Level, error) {
	head, req, err := splitRequires(n.Text)
	if err != nil {
		return Level{}, recordError(root, n, err)
	}
	parts := strings.Fields(head)
	lvl := Level{Name: parts[0], Requires: req, Tier: TierUnknown, Line: n.Line.Number}
	if len(parts) > 1 {
		lvl.Settlement = parts[1]
	}

	for _, c := range n.Children {
		switch c.Key() {
		case "settlement_min":
			lvl.Tier = ParseTier(c.Value())
		case "capability":
			for _, line := range c.Children {
				opt, ok, err := decodeRecruit(line)
				if err != nil {
					return lvl, recordError(root, line, err)
				}
				if ok {
					lvl.Recruits = append(lvl.Recruits, opt)
				}
			}
		}
	}
	return lvl, nil
}

// decodeRecruit reads
//
//	recruit "unit" exp [requires ...]
//	recruit_pool "unit" initial per_turn max exp [requires ...]
//
// and reports false for any other capability line.
func decodeRecruit(n *records.Node) (RecruitOption, bool, error) {
	key := n.Key()
	if key != "recruit" && key != "recruit_pool" {
		return RecruitOption{}, false, nil
	}

	body, req, err := splitRequires(n.Value())
	if err != nil {
		return RecruitOption{}, false, err
	}
	unit, rest, err := quoted(body)
	if err != nil {
		return RecruitOption{}, false, err
	}
	pos := fields.NewPositionalWith(rest, fields.Whitespace)
	opt := RecruitOption{Unit: unit, Requires: req, Line: n.Line.Number}

	if key == "recruit" {
		if opt.Experience, err = pos.Uint(0); err != nil {
			return opt, false, err
		}
		return opt, true, nil
	}

	opt.Pool = true
	if pos.Len() < 4 {
		return opt, false, fmt.Errorf("recruit_pool needs initial, per turn, max and experience, got %q", rest)
	}
	if opt.Initial, err = pos.Float(0, 0); err != nil {
		return opt, false, err
	}
	if opt.PerTurn, err = pos.Float(1, 0); err != nil {
		return opt, false, err
	}
	if opt.Max, err = pos.Float(2, 0); err != nil {
		return opt, false, err
	}
	if opt.Experience, err = pos.Uint(3); err != nil {
		return opt, false, err
	}
	return opt, true, nil
}

// quoted splits `"name" rest` into name and rest.
func quoted(s string) (string, string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, `"`) {
		return "", "", fmt.Errorf("expected quoted unit name in %q", s)
	}
	end := strings.IndexByte(s[1:], '"')
	if end < 0 {
		return "", "", fmt.Errorf("unterminated unit name in %q", s)
	}
	return s[1 : end+1], strings.TrimSpace(s[end+2:]), nil
}
