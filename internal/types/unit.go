package types

// Class is the battlefield role of a unit.
type Class string

const (
	ClassSword     Class = "sword"
	ClassSpear     Class = "spear"
	ClassMissile   Class = "missile"
	ClassCavalry   Class = "cavalry"
	ClassGeneral   Class = "general"
	ClassAnimal    Class = "animal"
	ClassArtillery Class = "artillery"
	ClassShip      Class = "ship"
)

// Ability is a derived special ability.
type Ability string

const (
	AbilityCantHide           Ability = "cant_hide"
	AbilityHideImprovedForest Ability = "hide_improved_forest"
	AbilityHideLongGrass      Ability = "hide_long_grass"
	AbilityHideAnywhere       Ability = "hide_anywhere"
	AbilityChant              Ability = "chant"
	AbilityWarcry             Ability = "warcry"
	AbilityFrightenFoot       Ability = "frighten_foot"
	AbilityFrightenMounted    Ability = "frighten_mounted"
	AbilityCanRunAmok         Ability = "can_run_amok"
	AbilityCantabrianCircle   Ability = "cantabrian_circle"
	AbilityCommand            Ability = "command"
	AbilityPowerCharge        Ability = "power_charge"
	AbilityFormedCharge       Ability = "formed_charge"
	AbilityStakes             Ability = "stakes"
	AbilityFeignRout          Ability = "feign_rout"
	AbilityCanSap             Ability = "can_sap"
	AbilityCanSwim            Ability = "can_swim"
	AbilityKnight             Ability = "knight"
)

// Unit is a resolved unit as recruited by one faction.
type Unit struct {
	ID         string   `json:"id" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	Key        string   `json:"key" validate:"required"`
	Image      string   `json:"image,omitempty"`
	Class      Class    `json:"class" validate:"required,oneof=sword spear missile cavalry general animal artillery ship"`
	Soldiers   uint32   `json:"soldiers" validate:"gt=0"`
	Officers   uint32   `json:"officers"`
	Mount      string   `json:"mount,omitempty"`
	Formations []string `json:"formations"`

	HP      uint32 `json:"hp"`
	HPMount uint32 `json:"hp_mount"`

	Primary      *Weapon  `json:"primary,omitempty"`
	Secondary    *Weapon  `json:"secondary,omitempty"`
	Defense      Defense  `json:"defense"`
	DefenseMount *Defense `json:"defense_mount,omitempty"`

	Heat       int32  `json:"heat"`
	Ground     Ground `json:"ground"`
	Morale     uint32 `json:"morale"`
	Discipline string `json:"discipline"`

	BuildTurns uint32 `json:"build_turns"`
	Cost       uint32 `json:"cost"`
	Upkeep     uint32 `json:"upkeep"`

	Stamina       uint32    `json:"stamina"`
	Inexhaustible bool      `json:"inexhaustible"`
	InfiniteAmmo  bool      `json:"infinite_ammo"`
	Scaling       bool      `json:"scaling"`
	Abilities     []Ability `json:"abilities"`

	Horde         bool `json:"horde"`
	General       bool `json:"general"`
	Mercenary     bool `json:"mercenary"`
	LegionaryName bool `json:"legionary_name"`

	MoveSpeed float64  `json:"move_speed" validate:"gte=0"`
	TechTier  uint8    `json:"tech_tier"`
	Eras      []string `json:"eras"`
}

// Weapon is a resolved attack.
type Weapon struct {
	Class         string  `json:"class"`
	Factor        uint32  `json:"factor"`
	IsMissile     bool    `json:"is_missile"`
	Charge        uint32  `json:"charge"`
	Range         uint32  `json:"range"`
	Ammo          uint32  `json:"ammo"`
	Lethality     float64 `json:"lethality" validate:"gte=0,lte=1"`
	ArmorPiercing bool    `json:"armor_piercing"`
	BodyPiercing  bool    `json:"body_piercing"`
	PreCharge     bool    `json:"pre_charge"`
	Launching     bool    `json:"launching"`
	Area          bool    `json:"area"`
	Fire          bool    `json:"fire"`
	SpearBonus    uint32  `json:"spear_bonus"`
}

type Defense struct {
	Armour uint32 `json:"armour"`
	Skill  uint32 `json:"skill"`
	Shield uint32 `json:"shield"`
}

type Ground struct {
	Scrub  int32 `json:"scrub"`
	Sand   int32 `json:"sand"`
	Forest int32 `json:"forest"`
	Snow   int32 `json:"snow"`
}
