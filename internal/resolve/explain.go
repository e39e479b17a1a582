package resolve

import (
	"fmt"
	"strings"

	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/requires"
)

// Verdict is a unit's availability for one faction, optionally in one era.
type Verdict struct {
	Faction   string
	Era       string
	Available bool
	// Tier is the lowest settlement tier among paths open in this context
	Tier raw.Tier
}

// Explain evaluates a unit for one faction, or every faction when faction is
// empty. With configured eras each faction is judged once per era, or only
// in era when it is set; without eras the faction is judged alone.
func (r *Resolver) Explain(unitID, faction, era string) ([]Verdict, error) {
	if _, ok := r.agg.Unit(unitID); !ok {
		return nil, &ReferenceError{Kind: "unit", Name: unitID, From: "explain"}
	}

	factions := r.in.Factions
	if faction != "" {
		f, ok := r.factionByID(faction)
		if !ok {
			return nil, &ReferenceError{Kind: "faction", Name: faction, From: "explain"}
		}
		factions = []raw.Faction{f}
	}

	eras := r.opts.Eras
	if era != "" {
		eras = nil
		for _, e := range r.opts.Eras {
			if strings.EqualFold(e.ID, era) {
				eras = []Era{e}
			}
		}
		if eras == nil {
			return nil, &ReferenceError{Kind: "era", Name: era, From: "explain"}
		}
	}

	var out []Verdict
	judge := func(f raw.Faction, eraID string, ctx *requires.Context) error {
		ok, err := r.Available(unitID, ctx)
		if err != nil {
			return fmt.Errorf("faction %s: %w", f.ID, err)
		}
		v := Verdict{Faction: f.ID, Era: eraID, Available: ok, Tier: raw.TierUnknown}
		if ok {
			if v.Tier, err = r.agg.TechTierFor(unitID, r.aliases, ctx); err != nil {
				return fmt.Errorf("faction %s: %w", f.ID, err)
			}
		}
		out = append(out, v)
		return nil
	}

	for _, f := range factions {
		if len(eras) == 0 {
			if err := judge(f, "", requires.ForFaction(f.ID, f.Culture)); err != nil {
				return nil, err
			}
			continue
		}
		for _, e := range eras {
			if err := judge(f, e.ID, EraContext(f, e)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
