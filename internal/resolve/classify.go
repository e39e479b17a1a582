package resolve

import (
	"strings"

	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/types"
)

var spearAttrs = []raw.WeaponAttr{raw.WeaponSpear, raw.WeaponLongPike, raw.WeaponShortPike, raw.WeaponLightSpear}

// Classify picks the unit's role. The first matching rule wins: ship,
// general, artillery, cavalry, animal, missile, spear, sword.
func Classify(u raw.Unit, mount raw.MountClass) types.Class {
	category := strings.ToLower(u.Category)
	class := strings.ToLower(u.Class)
	switch {
	case category == "ship":
		return types.ClassShip
	case u.IsGeneral():
		return types.ClassGeneral
	case category == "siege":
		return types.ClassArtillery
	case category == "cavalry":
		return types.ClassCavalry
	case category == "handler" || mount == raw.MountElephant:
		return types.ClassAnimal
	case class == "missile" || u.Primary.IsMissile():
		return types.ClassMissile
	case strings.Contains(class, "spear") || hasAnyAttr(u.Primary, spearAttrs):
		return types.ClassSpear
	}
	return types.ClassSword
}

func hasAnyAttr(w raw.Weapon, attrs []raw.WeaponAttr) bool {
	for _, a := range attrs {
		if w.Has(a) {
			return true
		}
	}
	return false
}

// Stamina is the additive stamina bonus of the hardiness attributes.
func Stamina(u raw.Unit) uint32 {
	var s uint32
	if u.Has(raw.AttrHardy) {
		s += 2
	}
	if u.Has(raw.AttrVeryHardy) {
		s += 4
	}
	if u.Has(raw.AttrExtremelyHardy) {
		s += 8
	}
	return s
}

var abilityTable = []struct {
	attr    raw.Attribute
	ability types.Ability
}{
	{raw.AttrWarcry, types.AbilityWarcry},
	{raw.AttrFrightenFoot, types.AbilityFrightenFoot},
	{raw.AttrFrightenMounted, types.AbilityFrightenMounted},
	{raw.AttrCanRunAmok, types.AbilityCanRunAmok},
	{raw.AttrCantabrianCircle, types.AbilityCantabrianCircle},
	{raw.AttrCommand, types.AbilityCommand},
	{raw.AttrPowerCharge, types.AbilityPowerCharge},
	{raw.AttrFormedCharge, types.AbilityFormedCharge},
	{raw.AttrStakes, types.AbilityStakes},
	{raw.AttrFeignRout, types.AbilityFeignRout},
	{raw.AttrCanSap, types.AbilityCanSap},
	{raw.AttrCanSwim, types.AbilityCanSwim},
	{raw.AttrKnight, types.AbilityKnight},
}

// Abilities derives the ability set: one hide ability at most, chant, then
// the one-to-one attribute abilities in table order.
func Abilities(u raw.Unit) []types.Ability {
	out := []types.Ability{}
	if hide, ok := hideAbility(u); ok {
		out = append(out, hide)
	}
	if u.Has(raw.AttrDruid) || u.Has(raw.AttrScreechingWomen) {
		out = append(out, types.AbilityChant)
	}
	for _, row := range abilityTable {
		if u.Has(row.attr) {
			out = append(out, row.ability)
		}
	}
	return out
}

// hideAbility collapses the hide attributes to the most permissive one.
// Plain hide_forest is the default for most units and yields nothing.
func hideAbility(u raw.Unit) (types.Ability, bool) {
	switch {
	case u.Has(raw.AttrHideAnywhere):
		return types.AbilityHideAnywhere, true
	case u.Has(raw.AttrHideImprovedForest):
		return types.AbilityHideImprovedForest, true
	case u.Has(raw.AttrHideLongGrass):
		return types.AbilityHideLongGrass, true
	case u.Has(raw.AttrHideForest):
		return "", false
	}
	return types.AbilityCantHide, true
}
