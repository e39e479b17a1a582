package raw

import "github.com/jonathan/mod-roster/internal/fields"

// stringVocab builds a vocabulary whose values are their own spelling.
// Unrecognized tokens decode to the zero value.
func stringVocab[T ~string](values ...T) fields.Vocabulary[T] {
	table := make(map[string]T, len(values))
	for _, v := range values {
		table[string(v)] = v
	}
	var unknown T
	return fields.NewVocabulary(unknown, table)
}

// Attribute is a unit attribute keyword.
type Attribute string

const (
	AttrSeaFaring          Attribute = "sea_faring"
	AttrHideForest         Attribute = "hide_forest"
	AttrHideImprovedForest Attribute = "hide_improved_forest"
	AttrHideLongGrass      Attribute = "hide_long_grass"
	AttrHideAnywhere       Attribute = "hide_anywhere"
	AttrCanSap             Attribute = "can_sap"
	AttrFrightenFoot       Attribute = "frighten_foot"
	AttrFrightenMounted    Attribute = "frighten_mounted"
	AttrCanRunAmok         Attribute = "can_run_amok"
	AttrGeneralUnit        Attribute = "general_unit"
	AttrGeneralUpgrade     Attribute = "general_unit_upgrade"
	AttrCantabrianCircle   Attribute = "cantabrian_circle"
	AttrNoCustom           Attribute = "no_custom"
	AttrCommand            Attribute = "command"
	AttrMercenaryUnit      Attribute = "mercenary_unit"
	AttrIsPeasant          Attribute = "is_peasant"
	AttrDruid              Attribute = "druid"
	AttrScreechingWomen    Attribute = "screeching_women"
	AttrWarcry             Attribute = "warcry"
	AttrPowerCharge        Attribute = "power_charge"
	AttrFormedCharge       Attribute = "can_formed_charge"
	AttrHardy              Attribute = "hardy"
	AttrVeryHardy          Attribute = "very_hardy"
	AttrExtremelyHardy     Attribute = "extremely_hardy"
	AttrInexhaustible      Attribute = "inexhaustible"
	AttrInfiniteAmmo       Attribute = "infinite_ammo"
	AttrCanWithdraw        Attribute = "can_withdraw"
	AttrKnight             Attribute = "knight"
	AttrStakes             Attribute = "stakes"
	AttrFreeUpkeep         Attribute = "free_upkeep_unit"
	AttrCanSwim            Attribute = "can_swim"
	AttrFeignRout          Attribute = "can_feign_rout"
	AttrLegionaryName      Attribute = "legionary_name"
	AttrCannotSkirmish     Attribute = "cannot_skirmish"
	AttrGunpowder          Attribute = "gunpowder_unit"
	AttrFireByRank         Attribute = "fire_by_rank"
	AttrStartNotSkirmish   Attribute = "start_not_skirmishing"
	AttrUniqueUnit         Attribute = "unique_unit"
)

var attributeVocab = stringVocab(
	AttrSeaFaring, AttrHideForest, AttrHideImprovedForest, AttrHideLongGrass,
	AttrHideAnywhere, AttrCanSap, AttrFrightenFoot, AttrFrightenMounted,
	AttrCanRunAmok, AttrGeneralUnit, AttrGeneralUpgrade, AttrCantabrianCircle,
	AttrNoCustom, AttrCommand, AttrMercenaryUnit, AttrIsPeasant, AttrDruid,
	AttrScreechingWomen, AttrWarcry, AttrPowerCharge, AttrFormedCharge,
	AttrHardy, AttrVeryHardy, AttrExtremelyHardy, AttrInexhaustible,
	AttrInfiniteAmmo, AttrCanWithdraw, AttrKnight, AttrStakes, AttrFreeUpkeep,
	AttrCanSwim, AttrFeignRout, AttrLegionaryName, AttrCannotSkirmish,
	AttrGunpowder, AttrFireByRank, AttrStartNotSkirmish, AttrUniqueUnit,
)

// WeaponType is the delivery kind of a weapon.
type WeaponType string

const (
	WeaponMelee        WeaponType = "melee"
	WeaponThrown       WeaponType = "thrown"
	WeaponMissile      WeaponType = "missile"
	WeaponSiegeMissile WeaponType = "siege_missile"
	WeaponNone         WeaponType = "no"
)

var weaponTypeVocab = stringVocab(WeaponMelee, WeaponThrown, WeaponMissile, WeaponSiegeMissile, WeaponNone)

// TechType is the technology class of a weapon.
type TechType string

const (
	TechSimple  TechType = "simple"
	TechOther   TechType = "other"
	TechBlade   TechType = "blade"
	TechArchery TechType = "archery"
	TechSiege   TechType = "siege"
)

var techTypeVocab = stringVocab(TechSimple, TechOther, TechBlade, TechArchery, TechSiege)

// DamageType is how a weapon wounds.
type DamageType string

const (
	DamagePiercing DamageType = "piercing"
	DamageBlunt    DamageType = "blunt"
	DamageSlashing DamageType = "slashing"
	DamageFire     DamageType = "fire"
)

var damageTypeVocab = stringVocab(DamagePiercing, DamageBlunt, DamageSlashing, DamageFire)

// WeaponAttr is a stat_*_attr keyword. spear_bonus_N is decoded separately.
type WeaponAttr string

const (
	WeaponAP         WeaponAttr = "ap"
	WeaponBP         WeaponAttr = "bp"
	WeaponSpear      WeaponAttr = "spear"
	WeaponLongPike   WeaponAttr = "long_pike"
	WeaponShortPike  WeaponAttr = "short_pike"
	WeaponLightSpear WeaponAttr = "light_spear"
	WeaponPrec       WeaponAttr = "prec"
	WeaponThrownAttr WeaponAttr = "thrown"
	WeaponLaunching  WeaponAttr = "launching"
	WeaponArea       WeaponAttr = "area"
	WeaponFire       WeaponAttr = "fire"
)

var weaponAttrVocab = stringVocab(
	WeaponAP, WeaponBP, WeaponSpear, WeaponLongPike, WeaponShortPike,
	WeaponLightSpear, WeaponPrec, WeaponThrownAttr, WeaponLaunching,
	WeaponArea, WeaponFire,
)

// FormationKind is a special formation a unit can adopt.
type FormationKind string

const (
	FormationSquare     FormationKind = "square"
	FormationHorde      FormationKind = "horde"
	FormationSchiltrom  FormationKind = "schiltrom"
	FormationPhalanx    FormationKind = "phalanx"
	FormationTestudo    FormationKind = "testudo"
	FormationWedge      FormationKind = "wedge"
	FormationShieldWall FormationKind = "shield_wall"
)

var formationVocab = stringVocab(
	FormationSquare, FormationHorde, FormationSchiltrom, FormationPhalanx,
	FormationTestudo, FormationWedge, FormationShieldWall,
)

type Discipline string

const (
	DisciplineLow         Discipline = "low"
	DisciplineNormal      Discipline = "normal"
	DisciplineDisciplined Discipline = "disciplined"
	DisciplineImpetuous   Discipline = "impetuous"
	DisciplineBerserker   Discipline = "berserker"
)

var disciplineVocab = stringVocab(
	DisciplineLow, DisciplineNormal, DisciplineDisciplined, DisciplineImpetuous, DisciplineBerserker,
)

type Training string

const (
	TrainingUntrained     Training = "untrained"
	TrainingTrained       Training = "trained"
	TrainingHighlyTrained Training = "highly_trained"
)

var trainingVocab = stringVocab(TrainingUntrained, TrainingTrained, TrainingHighlyTrained)

// MountClass is the descr_mount class of a mount.
type MountClass string

const (
	MountHorse    MountClass = "horse"
	MountCamel    MountClass = "camel"
	MountElephant MountClass = "elephant"
	MountChariot  MountClass = "chariot"
)

var mountClassVocab = stringVocab(MountHorse, MountCamel, MountElephant, MountChariot)

// Tier is a settlement development level. Lower tiers unlock earlier.
type Tier uint8

const (
	TierVillage   Tier = 0
	TierTown      Tier = 1
	TierLargeTown Tier = 2
	TierCity      Tier = 3
	TierLargeCity Tier = 4
	TierHugeCity  Tier = 5
	TierUnknown   Tier = 99
)

var tierNames = map[Tier]string{
	TierVillage:   "village",
	TierTown:      "town",
	TierLargeTown: "large_town",
	TierCity:      "city",
	TierLargeCity: "large_city",
	TierHugeCity:  "huge_city",
	TierUnknown:   "unknown",
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return "unknown"
}

var tierVocab = fields.NewVocabulary(TierUnknown, map[string]Tier{
	"village":    TierVillage,
	"town":       TierTown,
	"large_town": TierLargeTown,
	"city":       TierCity,
	"large_city": TierLargeCity,
	"huge_city":  TierHugeCity,
})

// ParseTier decodes a settlement_min value. Unknown names are TierUnknown.
func ParseTier(s string) Tier {
	return tierVocab.Value(s)
}

// ParseMountClass decodes a mount class name.
func ParseMountClass(s string) fields.Token[MountClass] {
	return mountClassVocab.Lookup(s)
}
