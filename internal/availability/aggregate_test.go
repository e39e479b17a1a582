package availability

import (
	"errors"
	"testing"

	"github.com/jonathan/mod-roster/internal/fields"
	"github.com/jonathan/mod-roster/internal/modtest"
	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/requires"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) (*Aggregator, *requires.AliasTable) {
	t.Helper()
	units, err := raw.ParseUnits(modtest.Units)
	require.NoError(t, err)
	set, err := raw.ParseBuildings(modtest.Buildings, "export_descr_buildings.txt")
	require.NoError(t, err)
	aliases, err := requires.NewAliasTable(set.Aliases)
	require.NoError(t, err)
	agg, err := Build(units, set.Buildings)
	require.NoError(t, err)
	return agg, aliases
}

func general(id string, event string, owners ...string) raw.Unit {
	return raw.Unit{
		ID:           id,
		Ownership:    owners,
		UpgradeEvent: event,
		Attributes: []fields.Token[raw.Attribute]{
			{Value: raw.AttrGeneralUnit, Raw: "general_unit", Known: true},
		},
	}
}

func level(name string, tier raw.Tier, req requires.Node, units ...string) raw.Level {
	lvl := raw.Level{Name: name, Tier: tier, Requires: req}
	for _, u := range units {
		lvl.Recruits = append(lvl.Recruits, raw.RecruitOption{Unit: u, Requires: requires.None{}})
	}
	return lvl
}

func TestTechTier_MinimumOverPaths(t *testing.T) {
	agg, _ := fixture(t)

	tests := []struct {
		unit string
		want raw.Tier
	}{
		{unit: "Peasants", want: raw.TierVillage},
		{unit: "Dismounted Knights", want: raw.TierCity},
		{unit: "Archers", want: raw.TierTown},
		{unit: "Mounted Knights", want: raw.TierLargeTown},
		{unit: "Catapult", want: raw.TierLargeCity},
		{unit: "NE Bodyguard", want: raw.TierUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			assert.Equal(t, tt.want, agg.TechTier(tt.unit))
		})
	}
}

func TestTechTier_CityAndVillage(t *testing.T) {
	units := []raw.Unit{{ID: "U", Ownership: []string{"f"}}}
	buildings := []raw.Building{
		{ID: "b1", Levels: []raw.Level{level("l3", raw.TierCity, requires.None{}, "U")}},
		{ID: "b2", Levels: []raw.Level{level("l0", raw.TierVillage, requires.None{}, "U")}},
	}
	agg, err := Build(units, buildings)
	require.NoError(t, err)
	assert.Equal(t, raw.TierVillage, agg.TechTier("U"))
}

func TestRequirement_DisjunctionOfPaths(t *testing.T) {
	units := []raw.Unit{{ID: "U", Ownership: []string{"f1", "f2"}}}
	buildings := []raw.Building{{ID: "b", Levels: []raw.Level{
		level("a", raw.TierTown, requires.Factions{IDs: []string{"f1"}}, "U"),
		level("b", raw.TierCity, requires.Factions{IDs: []string{"f2"}}, "U"),
	}}}
	agg, err := Build(units, buildings)
	require.NoError(t, err)

	req := agg.Requirement("u")
	or, ok := req.(requires.Or)
	require.True(t, ok, "got %T", req)
	require.Len(t, or.Nodes, 2)
	assert.Equal(t, requires.And{Nodes: []requires.Node{
		requires.None{},
		requires.Factions{IDs: []string{"f1"}},
		requires.Factions{IDs: []string{"f1", "f2"}},
	}}, or.Nodes[0])

	for _, faction := range []string{"f1", "f2"} {
		ok, err := requires.Evaluate(req, nil, requires.ForFaction(faction, "c"))
		require.NoError(t, err)
		assert.True(t, ok, faction)
	}
	ok, err = requires.Evaluate(req, nil, requires.ForFaction("f3", "c"))
	require.NoError(t, err)
	assert.False(t, ok)

	tier, err := agg.TechTierFor("U", nil, requires.ForFaction("f2", "c"))
	require.NoError(t, err)
	assert.Equal(t, raw.TierCity, tier)
	tier, err = agg.TechTierFor("U", nil, requires.ForFaction("f1", "c"))
	require.NoError(t, err)
	assert.Equal(t, raw.TierTown, tier)
	tier, err = agg.TechTierFor("U", nil, requires.ForFaction("f3", "c"))
	require.NoError(t, err)
	assert.Equal(t, raw.TierTown, tier, "falls back to the unconditional minimum")
}

func TestRequirement_OwnershipEndToEnd(t *testing.T) {
	agg, aliases := fixture(t)
	england := requires.ForFaction("england", "northern_european")
	mongols := requires.ForFaction("mongols", "middle_eastern")

	tests := []struct {
		unit    string
		england bool
		mongols bool
	}{
		{unit: "Peasants", england: true, mongols: false},
		{unit: "Spearmen", england: true, mongols: false},
		{unit: "Archers", england: true, mongols: false},
		{unit: "Mounted Knights", england: true, mongols: false},
		{unit: "Mongol Horse Archers", england: false, mongols: true},
		{unit: "War Elephants", england: false, mongols: true},
		{unit: "Catapult", england: true, mongols: false},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			req := agg.Requirement(tt.unit)
			got, err := requires.Evaluate(req, aliases, england)
			require.NoError(t, err)
			assert.Equal(t, tt.england, got, "england")
			got, err = requires.Evaluate(req, aliases, mongols)
			require.NoError(t, err)
			assert.Equal(t, tt.mongols, got, "mongols")
		})
	}
}

func TestRequirement_NotRecruitable(t *testing.T) {
	units := []raw.Unit{{ID: "Orphan", Ownership: []string{"england"}}}
	agg, err := Build(units, nil)
	require.NoError(t, err)
	assert.Equal(t, requires.False{}, agg.Requirement("Orphan"))
	assert.Equal(t, requires.False{}, agg.Requirement("missing"))
}

func TestRequirement_GeneralUpgradeGate(t *testing.T) {
	agg, aliases := fixture(t)
	england := requires.ForFaction("england", "northern_european")
	early := requires.Merge("early", england, requires.ForEra("early", nil, nil))
	late := requires.Merge("late", england, requires.ForEra("late", []string{"heavy_mail"}, nil))

	base := agg.Requirement("NE Bodyguard")
	assert.Equal(t, requires.And{Nodes: []requires.Node{
		requires.Factions{IDs: []string{"england", "france"}},
		requires.Not{Node: requires.MajorEvent{ID: "heavy_mail"}},
	}}, base)
	upgraded := agg.Requirement("NE Late Bodyguard")
	assert.Equal(t, requires.Factions{IDs: []string{"england", "france"}}, upgraded,
		"the unit's own upgrade event does not gate it")

	tests := []struct {
		name string
		req  requires.Node
		ctx  *requires.Context
		want bool
	}{
		{name: "base early", req: base, ctx: early, want: true},
		{name: "base late", req: base, ctx: late, want: false},
		{name: "upgraded early", req: upgraded, ctx: early, want: true},
		{name: "upgraded late", req: upgraded, ctx: late, want: true},
		{name: "faction only", req: base, ctx: england, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := requires.Evaluate(tt.req, aliases, tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequirement_GeneralGateSpansAllGenerals(t *testing.T) {
	units := []raw.Unit{
		general("G0", "", "f1"),
		general("G1", "E", "f2"),
		general("G2", "F", "f3"),
	}
	buildings := []raw.Building{{ID: "x", Levels: []raw.Level{
		level("barracks", raw.TierTown, requires.BuildingPresent{ID: "x"}, "G0"),
	}}}
	agg, err := Build(units, buildings)
	require.NoError(t, err)

	assert.Equal(t, requires.And{Nodes: []requires.Node{
		requires.Factions{IDs: []string{"f1"}},
		requires.Not{Node: requires.MajorEvent{ID: "E"}},
		requires.Not{Node: requires.MajorEvent{ID: "F"}},
	}}, agg.Requirement("G0"), "ownership replaces building paths")
	assert.Equal(t, requires.And{Nodes: []requires.Node{
		requires.Factions{IDs: []string{"f2"}},
		requires.Not{Node: requires.MajorEvent{ID: "F"}},
	}}, agg.Requirement("G1"))

	before := func(faction string) *requires.Context {
		return requires.Merge("early", requires.ForFaction(faction, "c"), requires.ForEra("early", nil, nil))
	}
	after := func(faction string) *requires.Context {
		return requires.Merge("late", requires.ForFaction(faction, "c"), requires.ForEra("late", []string{"E"}, nil))
	}

	tests := []struct {
		name string
		unit string
		ctx  *requires.Context
		want bool
	}{
		{name: "owner before upgrade", unit: "G0", ctx: before("f1"), want: true},
		{name: "superseded by another owner's upgrade", unit: "G0", ctx: after("f1"), want: false},
		{name: "not owned", unit: "G0", ctx: before("f2"), want: false},
		{name: "upgrade before its event", unit: "G1", ctx: before("f2"), want: true},
		{name: "upgrade after its event", unit: "G1", ctx: after("f2"), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := requires.Evaluate(agg.Requirement(tt.unit), nil, tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	units := []raw.Unit{{ID: "U", Line: 1}}

	_, err := Build(units, []raw.Building{{ID: "b", Levels: []raw.Level{level("l", raw.TierTown, requires.None{}, "Ghost")}}})
	var lookupErr *LookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, "Ghost", lookupErr.Unit)
	assert.Equal(t, "b", lookupErr.Building)

	_, err = Build(append(units, raw.Unit{ID: "u", Line: 9}), nil)
	var dupErr *DuplicateUnitError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, 1, dupErr.First)
}

func TestUnitLookupIgnoresCase(t *testing.T) {
	agg, _ := fixture(t)
	u, ok := agg.Unit("mounted knights")
	require.True(t, ok)
	assert.Equal(t, "Mounted Knights", u.ID)
	assert.Len(t, agg.Paths("MOUNTED KNIGHTS"), 1)
	assert.Len(t, agg.Paths("peasants"), 2)
	assert.Len(t, agg.Units(), 10)
}
