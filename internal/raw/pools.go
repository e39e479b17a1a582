package raw

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/mod-roster/internal/fields"
	"github.com/jonathan/mod-roster/internal/records"
)

// Pool is one descr_mercenaries pool.
type Pool struct {
	ID      string
	Regions []string
	Units   []PoolUnit
	Line    int
}

// PoolUnit is one mercenary unit line of a pool.
type PoolUnit struct {
	Unit         string
	Experience   uint32
	Cost         uint32
	ReplenishMin float64
	ReplenishMax float64
	Max          uint32
	Initial      uint32
	Events       []string
	Religions    []string
	Crusading    bool
	Line         int
}

// ParsePools decodes descr_mercenaries text.
func ParsePools(text string) ([]Pool, error) {
	recs, err := records.SplitText(text, records.StartsWith("pool"))
	if err != nil {
		return nil, err
	}

	var out []Pool
	for _, rec := range recs {
		if records.FirstToken(rec.Head().Text) != "pool" {
			continue
		}
		f := fields.New(rec)
		pool := Pool{
			ID:      f.OptionalString("pool"),
			Regions: f.List("regions", fields.Whitespace),
			Line:    rec.Head().Number,
		}
		for _, p := range f.All("unit") {
			u, err := decodePoolUnit(p.Value)
			if err != nil {
				return nil, f.Error(p, err)
			}
			u.Line = p.Line.Number
			pool.Units = append(pool.Units, u)
		}
		out = append(out, pool)
	}
	slog.Debug("decoded mercenary pools", "count", len(out))
	return out, nil
}

// decodePoolUnit reads
//
//	Unit Name, exp 1 cost 450 replenish 0.15 - 0.25 max 2 initial 1 [events { a b }] [religions { c }] [crusading]
func decodePoolUnit(value string) (PoolUnit, error) {
	name, rest, ok := strings.Cut(value, ",")
	if !ok {
		return PoolUnit{}, fmt.Errorf("expected comma after unit name in %q", value)
	}
	u := PoolUnit{Unit: strings.TrimSpace(name)}

	toks := strings.Fields(strings.NewReplacer("{", " { ", "}", " } ").Replace(rest))
	next := func(i int) (string, error) {
		if i+1 >= len(toks) {
			return "", fmt.Errorf("missing value after %q", toks[i])
		}
		return toks[i+1], nil
	}
	uintAt := func(i int, dst *uint32) (int, error) {
		v, err := next(i)
		if err != nil {
			return i, err
		}
		n, err := fields.MaybeFloatAsInt(v)
		if err != nil {
			return i, fmt.Errorf("%s: %w", toks[i], err)
		}
		*dst = n
		return i + 2, nil
	}
	braced := func(i int) ([]string, int, error) {
		if i+1 >= len(toks) || toks[i+1] != "{" {
			return nil, i, fmt.Errorf("expected { after %q", toks[i])
		}
		var items []string
		for j := i + 2; j < len(toks); j++ {
			if toks[j] == "}" {
				return items, j + 1, nil
			}
			items = append(items, strings.Trim(toks[j], ","))
		}
		return nil, i, fmt.Errorf("missing } after %q", toks[i])
	}

	var err error
	for i := 0; i < len(toks); {
		switch toks[i] {
		case "exp":
			i, err = uintAt(i, &u.Experience)
		case "cost":
			i, err = uintAt(i, &u.Cost)
		case "max":
			i, err = uintAt(i, &u.Max)
		case "initial":
			i, err = uintAt(i, &u.Initial)
		case "replenish":
			if i+3 >= len(toks) || toks[i+2] != "-" {
				return u, fmt.Errorf("expected replenish min - max")
			}
			if u.ReplenishMin, err = fields.ParseFloat(toks[i+1]); err != nil {
				return u, err
			}
			if u.ReplenishMax, err = fields.ParseFloat(toks[i+3]); err != nil {
				return u, err
			}
			i += 4
		case "events":
			u.Events, i, err = braced(i)
		case "religions":
			u.Religions, i, err = braced(i)
		case "crusading", "jihad":
			u.Crusading = true
			i++
		default:
			return u, fmt.Errorf("unexpected token %q", toks[i])
		}
		if err != nil {
			return u, err
		}
	}
	return u, nil
}
