package raw

import (
	"log/slog"
	"strings"

	"github.com/jonathan/mod-roster/internal/fields"
	"github.com/jonathan/mod-roster/internal/records"
)

// Faction is one descr_sm_factions entry.
type Faction struct {
	ID             string
	Culture        string
	Religion       string
	Symbol         string
	LoadingLogo    string
	StandardIndex  uint32
	LogoIndex      uint32
	SmallLogoIndex uint32
	CustomBattle   bool
	SpawnedOnEvent bool
	// Horde is set when the faction carries horde_* parameters
	Horde          bool
	HordeKeys      []string
	Line           int
}

// ParseFactions decodes descr_sm_factions text.
func ParseFactions(text string) ([]Faction, error) {
	recs, err := records.SplitText(text, records.StartsWith("faction"))
	if err != nil {
		return nil, err
	}

	var out []Faction
	for _, rec := range recs {
		if records.FirstToken(rec.Head().Text) != "faction" {
			continue
		}
		fac, err := decodeFaction(fields.New(rec))
		if err != nil {
			return nil, err
		}
		out = append(out, fac)
	}
	slog.Debug("decoded factions", "count", len(out))
	return out, nil
}

func decodeFaction(f fields.Fields) (Faction, error) {
	head, err := f.String("faction")
	if err != nil {
		return Faction{}, err
	}
	culture, err := f.String("culture")
	if err != nil {
		return Faction{}, err
	}

	ids := fields.SplitList(head, fields.CommaSpace)
	fac := Faction{
		ID:          ids[0],
		Culture:     culture,
		Religion:    f.OptionalString("religion"),
		Symbol:      f.OptionalString("symbol"),
		LoadingLogo: f.OptionalString("loading_logo"),
		Line:        f.Record().Head().Number,
	}
	for _, flag := range ids[1:] {
		if flag == "spawned_on_event" {
			fac.SpawnedOnEvent = true
		}
	}

	if fac.StandardIndex, err = f.OptionalUint("standard_index", 0); err != nil {
		return fac, err
	}
	if fac.LogoIndex, err = f.OptionalUint("logo_index", 0); err != nil {
		return fac, err
	}
	if fac.SmallLogoIndex, err = f.OptionalUint("small_logo_index", 0); err != nil {
		return fac, err
	}

	fac.CustomBattle = true
	if p, ok := f.Optional("custom_battle_availability"); ok {
		if fac.CustomBattle, err = fields.ParseBool(p.Value); err != nil {
			return fac, f.Error(p, err)
		}
	}

	for _, key := range f.Record().Keys() {
		if strings.HasPrefix(key, "horde_") {
			fac.Horde = true
			fac.HordeKeys = append(fac.HordeKeys, key)
		}
	}
	return fac, nil
}
