package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildingSample = `
building barracks
{
    levels militia_drill_square militia_barracks
    {
        militia_drill_square city requires factions { england, france, }
        {
            capability
            {
                recruit_pool "Peasants" 1 0.1 2 0 requires factions { england, }
            }
            settlement_min village
        }
        militia_barracks city
        {
            capability {
                recruit_pool "Spearmen" 1 0.1 2 0
            }
            settlement_min town
        }
    }
    plugins
    {
    }
}
`

func TestParseBlocks_NestedStructure(t *testing.T) {
	lines, err := CleanLines(buildingSample, DefaultCommentMarker)
	require.NoError(t, err)

	nodes, err := ParseBlocks(lines)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	building := nodes[0]
	assert.Equal(t, "building", building.Key())
	assert.Equal(t, "barracks", building.Value())
	assert.True(t, building.Block)

	levels, ok := building.Child("levels")
	require.True(t, ok)
	require.Len(t, levels.Children, 2)

	first := levels.Children[0]
	assert.Equal(t, "militia_drill_square", first.Key())
	assert.True(t, first.Block)

	capability, ok := first.Child("capability")
	require.True(t, ok)
	require.Len(t, capability.Children, 1)
	assert.Equal(t, "recruit_pool", capability.Children[0].Key())

	second := levels.Children[1]
	capability, ok = second.Child("capability")
	require.True(t, ok)
	require.Len(t, capability.Children, 1, "header ending in { opens a block")

	plugins, ok := building.Child("plugins")
	require.True(t, ok)
	assert.True(t, plugins.Block)
	assert.Empty(t, plugins.Children)
}

func TestParseBlocks_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing closing brace", input: "a\n{\nb\n"},
		{name: "stray closing brace", input: "a\n}\n"},
		{name: "brace without header", input: "{\n}\n"},
		{name: "unbalanced inline", input: "a { b {\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := CleanLines(tt.input, DefaultCommentMarker)
			require.NoError(t, err)
			_, err = ParseBlocks(lines)
			assert.Error(t, err)
		})
	}
}
