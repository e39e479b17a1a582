package resolve

import (
	"testing"

	"github.com/jonathan/mod-roster/internal/fields"
	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/types"
	"github.com/stretchr/testify/assert"
)

func attrs(names ...raw.Attribute) []fields.Token[raw.Attribute] {
	out := make([]fields.Token[raw.Attribute], len(names))
	for i, n := range names {
		out[i] = fields.Token[raw.Attribute]{Value: n, Raw: string(n), Known: true}
	}
	return out
}

func spearWeapon() raw.Weapon {
	return raw.Weapon{Attributes: []fields.Token[raw.WeaponAttr]{{Value: raw.WeaponLongPike, Raw: "long_pike", Known: true}}}
}

func TestClassify_Priority(t *testing.T) {
	tests := []struct {
		name  string
		unit  raw.Unit
		mount raw.MountClass
		want  types.Class
	}{
		{
			name: "ship beats general",
			unit: raw.Unit{Category: "ship", Attributes: attrs(raw.AttrGeneralUnit)},
			want: types.ClassShip,
		},
		{
			name: "general beats cavalry",
			unit: raw.Unit{Category: "cavalry", Attributes: attrs(raw.AttrGeneralUnit)},
			want: types.ClassGeneral,
		},
		{
			name: "siege is artillery even when missile",
			unit: raw.Unit{Category: "siege", Class: "missile"},
			want: types.ClassArtillery,
		},
		{
			name:  "cavalry beats elephant mount",
			unit:  raw.Unit{Category: "cavalry"},
			mount: raw.MountElephant,
			want:  types.ClassCavalry,
		},
		{
			name: "handler is animal",
			unit: raw.Unit{Category: "handler", Class: "missile"},
			want: types.ClassAnimal,
		},
		{
			name:  "elephant mounted infantry is animal",
			unit:  raw.Unit{Category: "infantry"},
			mount: raw.MountElephant,
			want:  types.ClassAnimal,
		},
		{
			name: "missile by projectile",
			unit: raw.Unit{Category: "infantry", Class: "light", Primary: raw.Weapon{Projectile: "javelin"}},
			want: types.ClassMissile,
		},
		{
			name: "spear by class",
			unit: raw.Unit{Category: "infantry", Class: "spearmen"},
			want: types.ClassSpear,
		},
		{
			name: "spear by weapon attribute",
			unit: raw.Unit{Category: "infantry", Class: "heavy", Primary: spearWeapon()},
			want: types.ClassSpear,
		},
		{
			name: "sword otherwise",
			unit: raw.Unit{Category: "infantry", Class: "heavy"},
			want: types.ClassSword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.unit, tt.mount))
		})
	}
}

func TestAbilities_HideCollapse(t *testing.T) {
	tests := []struct {
		name  string
		attrs []raw.Attribute
		want  []types.Ability
	}{
		{name: "no hide attribute", attrs: nil, want: []types.Ability{types.AbilityCantHide}},
		{name: "forest only", attrs: []raw.Attribute{raw.AttrHideForest}, want: []types.Ability{}},
		{
			name:  "long grass",
			attrs: []raw.Attribute{raw.AttrHideForest, raw.AttrHideLongGrass},
			want:  []types.Ability{types.AbilityHideLongGrass},
		},
		{
			name:  "improved forest beats long grass",
			attrs: []raw.Attribute{raw.AttrHideLongGrass, raw.AttrHideImprovedForest},
			want:  []types.Ability{types.AbilityHideImprovedForest},
		},
		{
			name:  "anywhere beats everything",
			attrs: []raw.Attribute{raw.AttrHideImprovedForest, raw.AttrHideAnywhere, raw.AttrHideLongGrass},
			want:  []types.Ability{types.AbilityHideAnywhere},
		},
		{
			name:  "chant from either attribute",
			attrs: []raw.Attribute{raw.AttrHideForest, raw.AttrScreechingWomen, raw.AttrDruid},
			want:  []types.Ability{types.AbilityChant},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Abilities(raw.Unit{Attributes: attrs(tt.attrs...)}))
		})
	}
}

func TestStamina_Additive(t *testing.T) {
	assert.Equal(t, uint32(0), Stamina(raw.Unit{}))
	assert.Equal(t, uint32(2), Stamina(raw.Unit{Attributes: attrs(raw.AttrHardy)}))
	assert.Equal(t, uint32(14), Stamina(raw.Unit{Attributes: attrs(raw.AttrHardy, raw.AttrVeryHardy, raw.AttrExtremelyHardy)}))
}

func TestWeapon(t *testing.T) {
	assert.Nil(t, weapon(raw.Weapon{Type: fields.Token[raw.WeaponType]{Value: raw.WeaponNone, Raw: "no", Known: true}}))

	w := weapon(raw.Weapon{
		Attack:    7,
		Lethality: 1,
		Damage:    fields.Token[raw.DamageType]{Value: raw.DamageFire, Raw: "fire", Known: true},
		Tech:      fields.Token[raw.TechType]{Raw: "gunpowder"},
		Attributes: []fields.Token[raw.WeaponAttr]{
			{Value: raw.WeaponThrownAttr, Raw: "thrown", Known: true},
			{Value: raw.WeaponBP, Raw: "bp", Known: true},
		},
	})
	assert.Equal(t, &types.Weapon{
		Class:        "gunpowder",
		Factor:       7,
		Lethality:    1,
		BodyPiercing: true,
		PreCharge:    true,
		Fire:         true,
	}, w)
}
