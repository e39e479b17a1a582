package raw

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/mod-roster/internal/fields"
	"github.com/jonathan/mod-roster/internal/records"
)

// Region is one descr_regions entry.
type Region struct {
	Name       string
	Settlement string
	Creator    string
	Rebels     string
	Colour     [3]uint32
	// Resources lists every resource name, hidden ones included
	Resources []string
	Triumph   uint32
	Farming   uint32
	Religions []ReligionShare
	Line      int
}

type ReligionShare struct {
	ID      string
	Percent uint32
}

// regionLines is the record length of files without religions lines.
const regionLines = 8

// ParseRegions decodes descr_regions text. Records are positional: each ends
// with its religions line, or is exactly eight lines long when the file has
// no religions lines at all.
func ParseRegions(text string) ([]Region, error) {
	lines, err := records.CleanLines(text, records.DefaultCommentMarker)
	if err != nil {
		return nil, err
	}

	groups, err := groupRegionLines(lines)
	if err != nil {
		return nil, err
	}

	out := make([]Region, 0, len(groups))
	for _, g := range groups {
		r, err := decodeRegion(g)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	slog.Debug("decoded regions", "count", len(out))
	return out, nil
}

func isReligionsLine(l records.Line) bool {
	return records.FirstToken(l.Text) == "religions"
}

func groupRegionLines(lines []records.Line) ([][]records.Line, error) {
	terminated := false
	for _, l := range lines {
		if isReligionsLine(l) {
			terminated = true
			break
		}
	}

	var groups [][]records.Line
	var cur []records.Line
	for _, l := range lines {
		cur = append(cur, l)
		if (terminated && isReligionsLine(l)) || (!terminated && len(cur) == regionLines) {
			groups = append(groups, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		return nil, &records.ExtractError{
			Line:    cur[0].Number,
			Message: "incomplete region record",
			Context: cur[0].Text,
		}
	}
	return groups, nil
}

func decodeRegion(lines []records.Line) (Region, error) {
	want := regionLines
	if isReligionsLine(lines[len(lines)-1]) {
		want = regionLines + 1
	}
	if len(lines) != want {
		return Region{}, &records.ExtractError{
			Line:    lines[0].Number,
			Message: fmt.Sprintf("region record has %d lines, want %d", len(lines), want),
			Context: lines[0].Text,
		}
	}

	r := Region{
		Name:       lines[0].Text,
		Settlement: lines[1].Text,
		Creator:    lines[2].Text,
		Rebels:     lines[3].Text,
		Line:       lines[0].Number,
	}
	fail := func(i int, field string, err error) error {
		return &fields.DecodeError{Record: r.Name, Field: field, Line: lines[i].Number, Message: "invalid value", Cause: err}
	}

	colour := fields.NewPositionalWith(lines[4].Text, fields.CommaOrWhitespace)
	for i := range r.Colour {
		v, err := colour.Uint(i)
		if err != nil {
			return r, fail(4, "colour", err)
		}
		r.Colour[i] = v
	}

	for _, res := range fields.SplitList(lines[5].Text, fields.CommaSpace) {
		if !strings.EqualFold(res, "none") {
			r.Resources = append(r.Resources, res)
		}
	}

	var err error
	if r.Triumph, err = fields.MaybeFloatAsInt(lines[6].Text); err != nil {
		return r, fail(6, "triumph value", err)
	}
	if r.Farming, err = fields.MaybeFloatAsInt(lines[7].Text); err != nil {
		return r, fail(7, "farming level", err)
	}

	if len(lines) > regionLines {
		if r.Religions, err = decodeReligions(lines[8].Text); err != nil {
			return r, fail(8, "religions", err)
		}
	}
	return r, nil
}

// decodeReligions reads `religions { catholic 50 orthodox 20 }`.
func decodeReligions(text string) ([]ReligionShare, error) {
	open := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if open < 0 || end < open {
		return nil, fmt.Errorf("expected braced religion list")
	}
	toks := strings.Fields(text[open+1 : end])
	if len(toks)%2 != 0 {
		return nil, fmt.Errorf("religion list has an odd number of items")
	}
	out := make([]ReligionShare, 0, len(toks)/2)
	for i := 0; i < len(toks); i += 2 {
		pct, err := fields.MaybeFloatAsInt(toks[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, ReligionShare{ID: toks[i], Percent: pct})
	}
	return out, nil
}
