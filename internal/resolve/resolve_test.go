package resolve

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jonathan/mod-roster/internal/modtest"
	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/requires"
	"github.com/jonathan/mod-roster/internal/sprites"
	"github.com/jonathan/mod-roster/internal/text"
	"github.com/jonathan/mod-roster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureInputs(t *testing.T) *Inputs {
	t.Helper()
	in := &Inputs{}
	var err error
	in.Units, err = raw.ParseUnits(modtest.Units)
	require.NoError(t, err)
	in.Buildings, err = raw.ParseBuildings(modtest.Buildings, "export_descr_buildings.txt")
	require.NoError(t, err)
	in.Factions, err = raw.ParseFactions(modtest.Factions)
	require.NoError(t, err)
	in.Pools, err = raw.ParsePools(modtest.Mercenaries)
	require.NoError(t, err)
	in.Regions, err = raw.ParseRegions(modtest.Regions)
	require.NoError(t, err)
	in.Mounts, err = raw.ParseMounts(modtest.Mounts)
	require.NoError(t, err)
	in.Models, err = raw.ParseModels(modtest.Models)
	require.NoError(t, err)
	in.Sprites, err = sprites.ParseCatalog(bytes.NewReader(modtest.FactionIcons()))
	require.NoError(t, err)
	in.UnitNames = table(modtest.UnitNames)
	in.FactionNames = table(modtest.FactionNames)
	return in
}

func table(entries map[string]string) *text.Table {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	return text.NewTable(keys, entries)
}

func fixtureOptions() Options {
	return Options{
		ID:      "testmod",
		Name:    "Test Mod",
		BuildID: "550e8400-e29b-41d4-a716-446655440000",
		Eras: []Era{
			{ID: "early", Name: "Early"},
			{ID: "late", Name: "Late", Events: []string{"heavy_mail"}, Counters: map[string]uint32{"heavy_mail": 1}},
		},
		SpeedOverrides: map[string]float64{"pony": 12},
		UnitImage:      "units/{faction}/#{key}.tga",
		FactionAliases: map[string]string{"mongols": "golden_horde"},
	}
}

func resolveFixture(t *testing.T) *types.Module {
	t.Helper()
	r, err := New(fixtureInputs(t), fixtureOptions())
	require.NoError(t, err)
	m, err := r.Resolve()
	require.NoError(t, err)
	return m
}

func rosterIDs(f types.Faction) []string {
	ids := make([]string, len(f.Roster))
	for i, u := range f.Roster {
		ids[i] = u.ID
	}
	return ids
}

func rosterUnit(t *testing.T, f types.Faction, id string) types.Unit {
	t.Helper()
	for _, u := range f.Roster {
		if u.ID == id {
			return u
		}
	}
	t.Fatalf("unit %q not in %s roster", id, f.ID)
	return types.Unit{}
}

func TestResolve_Rosters(t *testing.T) {
	m := resolveFixture(t)
	assert.Equal(t, []string{"england", "france", "mongols"}, m.Factions.Keys())
	assert.Equal(t, []string{"early", "late"}, m.Eras.Keys())

	england, _ := m.Factions.Get("england")
	assert.Equal(t, []string{
		"Peasants", "Spearmen", "Dismounted Knights", "Archers", "Mounted Knights",
		"Catapult", "NE Bodyguard", "NE Late Bodyguard",
	}, rosterIDs(england), "roster keeps unit file order")

	france, _ := m.Factions.Get("france")
	assert.Equal(t, []string{
		"Peasants", "Dismounted Knights", "Archers", "Mounted Knights",
		"NE Bodyguard", "NE Late Bodyguard",
	}, rosterIDs(france))

	mongols, _ := m.Factions.Get("mongols")
	assert.Equal(t, []string{"Mongol Horse Archers", "War Elephants"}, rosterIDs(mongols))
	assert.True(t, mongols.IsHorde)
	assert.Equal(t, "golden_horde", mongols.Alias)
	assert.Equal(t, "Mongol Horde", mongols.Name)
}

func TestResolve_Eras(t *testing.T) {
	m := resolveFixture(t)
	england, _ := m.Factions.Get("england")

	assert.Equal(t, []string{"late"}, rosterUnit(t, england, "Dismounted Knights").Eras)
	assert.Equal(t, []string{"early"}, rosterUnit(t, england, "NE Bodyguard").Eras)
	assert.Equal(t, []string{"early", "late"}, rosterUnit(t, england, "NE Late Bodyguard").Eras, "an upgrade is not gated by its own event")
	assert.Equal(t, []string{"early", "late"}, rosterUnit(t, england, "Peasants").Eras)
	assert.Equal(t, []string{"early", "late"}, england.Eras)

	mongols, _ := m.Factions.Get("mongols")
	assert.Empty(t, mongols.Eras, "eras shared by every unit are pruned")
	assert.NotNil(t, mongols.Eras)
}

func TestResolve_TechTierIgnoresFaction(t *testing.T) {
	in := fixtureInputs(t)
	in.Buildings.Buildings = append(in.Buildings.Buildings, raw.Building{
		ID: "royal_barracks",
		Levels: []raw.Level{{
			Name:     "royal_barracks",
			Tier:     raw.TierVillage,
			Requires: requires.Factions{IDs: []string{"france"}},
			Recruits: []raw.RecruitOption{{Unit: "Dismounted Knights", Requires: requires.None{}}},
		}},
	})
	r, err := New(in, fixtureOptions())
	require.NoError(t, err)
	m, err := r.Resolve()
	require.NoError(t, err)

	england, _ := m.Factions.Get("england")
	france, _ := m.Factions.Get("france")
	assert.Equal(t, uint8(raw.TierVillage), rosterUnit(t, england, "Dismounted Knights").TechTier,
		"the lowest tier over every building, even one england cannot build")
	assert.Equal(t, uint8(raw.TierVillage), rosterUnit(t, france, "Dismounted Knights").TechTier)
}

func TestRegionContext_Religions(t *testing.T) {
	in := fixtureInputs(t)
	r, err := New(in, fixtureOptions())
	require.NoError(t, err)
	ctx := r.RegionContext(in.Regions[0])

	ok, err := requires.Evaluate(requires.MustParse("region_religion catholic >= 90"), nil, ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = requires.Evaluate(requires.MustParse("region_religion pagan > 10"), nil, ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPruneEras(t *testing.T) {
	r := &Resolver{opts: Options{Eras: []Era{{ID: "early"}, {ID: "late"}}}}

	assert.Empty(t, r.pruneEras([][]string{{"early", "late"}, {"early", "late"}}))
	assert.Equal(t, []string{"late"}, r.pruneEras([][]string{{"early", "late"}, {"early"}}))
	assert.Equal(t, []string{"early", "late"}, r.pruneEras([][]string{{"late", "early"}, {"early"}, {"late"}}))
	assert.Empty(t, r.pruneEras(nil))
	assert.Empty(t, r.pruneEras([][]string{{}, {}}), "an era no unit has is dropped too")
}

func TestResolve_UnitStats(t *testing.T) {
	m := resolveFixture(t)
	england, _ := m.Factions.Get("england")

	peasants := rosterUnit(t, england, "Peasants")
	assert.Equal(t, types.ClassSword, peasants.Class)
	assert.Equal(t, "units/england/#peasants.tga", peasants.Image)
	assert.Equal(t, uint32(60), peasants.Soldiers)
	assert.Equal(t, []types.Ability{types.AbilityCanSap}, peasants.Abilities)
	assert.Equal(t, 8.0, peasants.MoveSpeed)
	assert.Equal(t, uint8(raw.TierVillage), peasants.TechTier)
	assert.True(t, peasants.Scaling)
	require.NotNil(t, peasants.Primary)
	assert.Equal(t, "simple", peasants.Primary.Class)
	assert.Nil(t, peasants.Secondary)

	knights := rosterUnit(t, england, "Dismounted Knights")
	assert.Equal(t, uint32(12), knights.Stamina)
	assert.Equal(t, []types.Ability{types.AbilityCantHide, types.AbilityWarcry, types.AbilityKnight}, knights.Abilities)
	assert.True(t, knights.Primary.ArmorPiercing)
	assert.Equal(t, 0.5, knights.Primary.Lethality)
	assert.Equal(t, uint8(raw.TierCity), knights.TechTier)
	assert.Equal(t, "disciplined", knights.Discipline)

	archers := rosterUnit(t, england, "Archers")
	assert.Equal(t, "Longbowmen", archers.Name)
	assert.Equal(t, types.ClassMissile, archers.Class)
	assert.Equal(t, []types.Ability{types.AbilityHideAnywhere, types.AbilityChant, types.AbilityStakes}, archers.Abilities)
	assert.True(t, archers.Primary.IsMissile)
	assert.True(t, archers.Primary.Fire)
	require.NotNil(t, archers.Secondary)
	assert.Equal(t, uint32(3), archers.Secondary.Factor)

	horse := rosterUnit(t, england, "Mounted Knights")
	assert.Equal(t, types.ClassCavalry, horse.Class)
	assert.Equal(t, "horse", horse.Mount)
	assert.InDelta(t, 16.5, horse.MoveSpeed, 1e-9)
	require.NotNil(t, horse.DefenseMount)
	assert.Equal(t, types.Defense{Armour: 2, Skill: 1}, *horse.DefenseMount)

	catapult := rosterUnit(t, england, "Catapult")
	assert.Equal(t, types.ClassArtillery, catapult.Class)
	assert.False(t, catapult.Scaling)
	assert.Equal(t, 6.0, catapult.MoveSpeed)
	assert.True(t, catapult.Primary.Launching)
	assert.True(t, catapult.Primary.Area)

	general := rosterUnit(t, england, "NE Bodyguard")
	assert.Equal(t, types.ClassGeneral, general.Class)
	assert.True(t, general.General)
	assert.Equal(t, uint8(raw.TierUnknown), general.TechTier)

	mongols, _ := m.Factions.Get("mongols")
	ha := rosterUnit(t, mongols, "Mongol Horse Archers")
	assert.Equal(t, 12.0, ha.MoveSpeed, "manifest override beats the mount class table")
	elephants := rosterUnit(t, mongols, "War Elephants")
	assert.Equal(t, "elephant", elephants.Mount)
	assert.Equal(t, 11.0, elephants.MoveSpeed)
	assert.Equal(t, uint8(raw.TierLargeTown), elephants.TechTier)
}

func TestResolve_FactionImages(t *testing.T) {
	m := resolveFixture(t)

	england, _ := m.Factions.Get("england")
	require.NotNil(t, england.Image)
	assert.Equal(t, types.Image{Path: "faction_icons.tga", Width: 64, Height: 64}, *england.Image)

	france, _ := m.Factions.Get("france")
	assert.Equal(t, 64, france.Image.Left, "sprite keys ignore case")

	mongols, _ := m.Factions.Get("mongols")
	assert.Equal(t, &types.Image{Path: "loading_screen/symbols/symbol128_mongols.tga"}, mongols.Image)
}

func TestResolve_Regions(t *testing.T) {
	m := resolveFixture(t)
	require.Len(t, m.Regions, 3)

	london := m.Regions[0]
	assert.Equal(t, []string{"wool"}, london.Resources)
	assert.Equal(t, []string{"london"}, london.HiddenResources)
	assert.Equal(t, map[string]uint32{"catholic": 90, "pagan": 10}, london.Religions)
	assert.Contains(t, london.Units, "Catapult")
	assert.NotContains(t, london.Units, "War Elephants")

	paris := m.Regions[1]
	assert.NotContains(t, paris.Units, "Catapult", "only england builds siege workshops")

	karakorum := m.Regions[2]
	assert.Equal(t, []string{"Mongol Horse Archers"}, karakorum.Units,
		"war elephants need the elephants hidden resource")
}

func TestResolve_RegionHiddenResourceUnlocks(t *testing.T) {
	in := fixtureInputs(t)
	in.Regions[2].Resources = append(in.Regions[2].Resources, "elephants")
	r, err := New(in, fixtureOptions())
	require.NoError(t, err)

	m, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mongol Horse Archers", "War Elephants"}, m.Regions[2].Units)
	assert.Equal(t, []string{"elephants"}, m.Regions[2].HiddenResources)
}

func TestResolve_Pools(t *testing.T) {
	m := resolveFixture(t)
	require.Len(t, m.Pools, 2)
	assert.Equal(t, "Peasants", m.Pools[0].Units[0].Name)
	assert.Equal(t, "Longbowmen", m.Pools[0].Units[1].Name)
	assert.True(t, m.Pools[0].Units[1].Crusading)
	assert.Equal(t, "Mongol Horse Archers", m.Pools[1].Units[0].Unit)

	in := fixtureInputs(t)
	in.Pools[0].Units[0].Unit = "Ghost Riders"
	r, err := New(in, fixtureOptions())
	require.NoError(t, err)
	_, err = r.Resolve()
	var refErr *ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "Ghost Riders", refErr.Name)
}

func TestResolve_ExcludedFactionAndBuildID(t *testing.T) {
	opts := fixtureOptions()
	opts.ExcludeFactions = []string{"MONGOLS"}
	opts.BuildID = ""

	r, err := New(fixtureInputs(t), opts)
	require.NoError(t, err)
	m, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, []string{"england", "france"}, m.Factions.Keys())
	assert.Len(t, m.BuildID, 36, "a uuid is generated")
}

func TestNew_AliasErrors(t *testing.T) {
	cyclic := &Inputs{Buildings: &raw.BuildingSet{Aliases: []requires.AliasDef{
		{Name: "a", Requires: requires.Alias{Name: "b"}},
		{Name: "b", Requires: requires.Alias{Name: "a"}},
	}}}
	_, err := New(cyclic, Options{})
	var cycleErr *requires.CycleError
	require.True(t, errors.As(err, &cycleErr))

	undefined := &Inputs{Buildings: &raw.BuildingSet{Aliases: []requires.AliasDef{
		{Name: "a", Requires: requires.Alias{Name: "nowhere"}},
	}}}
	_, err = New(undefined, Options{})
	var lookupErr *requires.LookupError
	require.True(t, errors.As(err, &lookupErr))
}

func TestResolve_ValidationFailure(t *testing.T) {
	opts := fixtureOptions()
	opts.Name = ""
	r, err := New(fixtureInputs(t), opts)
	require.NoError(t, err)

	_, err = r.Resolve()
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
}
