package raw

import (
	"errors"
	"testing"

	"github.com/jonathan/mod-roster/internal/modtest"
	"github.com/jonathan/mod-roster/internal/records"
	"github.com/jonathan/mod-roster/internal/requires"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildings_Fixture(t *testing.T) {
	set, err := ParseBuildings(modtest.Buildings, "export_descr_buildings.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{"london", "elephants"}, set.HiddenResources)

	require.Len(t, set.Aliases, 1)
	assert.Equal(t, "northern", set.Aliases[0].Name)
	assert.Equal(t, requires.Factions{IDs: []string{"northern_european"}}, set.Aliases[0].Requires)
	assert.Equal(t, "export_descr_buildings.txt", set.Aliases[0].Source)

	require.Len(t, set.Buildings, 4)
	barracks := set.Buildings[0]
	assert.Equal(t, "barracks", barracks.ID)
	require.Len(t, barracks.Levels, 2)

	watch := barracks.Levels[0]
	assert.Equal(t, "town_watch", watch.Name)
	assert.Equal(t, "city", watch.Settlement)
	assert.Equal(t, TierVillage, watch.Tier)
	assert.Equal(t, requires.Alias{Name: "northern"}, watch.Requires)
	require.Len(t, watch.Recruits, 2)
	assert.Equal(t, RecruitOption{
		Unit:     "Peasants",
		Pool:     true,
		Initial:  1,
		PerTurn:  0.5,
		Max:      2,
		Requires: requires.Factions{IDs: []string{"england", "france"}},
		Line:     watch.Recruits[0].Line,
	}, watch.Recruits[0])

	assert.Equal(t, TierCity, barracks.Levels[1].Tier)

	bowyer := set.Buildings[1].Levels[0]
	assert.Equal(t, "", bowyer.Settlement)
	assert.Equal(t, TierTown, bowyer.Tier)
	require.Len(t, bowyer.Recruits, 1)
	assert.False(t, bowyer.Recruits[0].Pool)
	assert.Equal(t, requires.None{}, bowyer.Recruits[0].Requires)

	stable := set.Buildings[2].Levels[0]
	assert.Len(t, stable.Recruits, 3, "non-recruit capability lines are ignored")

	workshop := set.Buildings[3].Levels[0]
	assert.Equal(t, TierLargeCity, workshop.Tier)
	assert.Equal(t, requires.None{}, workshop.Recruits[0].Requires)
}

func TestParseBuildings_UnexpectedLineInLevels(t *testing.T) {
	text := `building b
{
    levels one
    {
        stray_line 5
        one requires none
        {
            settlement_min town
        }
    }
}
`
	_, err := ParseBuildings(text, "edb")
	var extractErr *records.ExtractError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, "unexpected line", extractErr.Message)
	assert.Equal(t, "stray_line 5", extractErr.Context)
	assert.Equal(t, 5, extractErr.Line)
}

func TestParseBuildings_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "missing closing brace",
			text: "building b\n{\n levels one\n {\n one\n {\n }\n }\n",
		},
		{
			name: "bad requires grammar",
			text: "building b\n{\n levels one\n {\n one requires factions england\n {\n }\n }\n}\n",
		},
		{
			name: "recruit without quoted name",
			text: "building b\n{\n levels one\n {\n one\n {\n capability\n {\n recruit Peasants 0\n }\n }\n }\n}\n",
		},
		{
			name: "recruit_pool with too few numbers",
			text: "building b\n{\n levels one\n {\n one\n {\n capability\n {\n recruit_pool \"Peasants\" 1 2\n }\n }\n }\n}\n",
		},
		{
			name: "alias without requires",
			text: "alias a\n{\n display_string x\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBuildings(tt.text, "edb")
			assert.Error(t, err)
		})
	}
}

func TestParseTier(t *testing.T) {
	assert.Equal(t, TierHugeCity, ParseTier("huge_city"))
	assert.Equal(t, TierLargeTown, ParseTier("LARGE_TOWN"))
	assert.Equal(t, TierUnknown, ParseTier("metropolis"))
	assert.Equal(t, "unknown", TierUnknown.String())
}
