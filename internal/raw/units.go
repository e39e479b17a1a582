package raw

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/mod-roster/internal/fields"
	"github.com/jonathan/mod-roster/internal/records"
)

// Unit is one export_descr_unit entry.
type Unit struct {
	ID       string
	Key      string
	Category string
	Class    string

	Soldier      Soldier
	Officers     []string
	Mount        string
	MountEffects []MountEffect
	Attributes   []fields.Token[Attribute]
	// UpgradeEvent is the event after which this unit guards new generals
	UpgradeEvent string
	Formation    Formation

	Health      uint32
	HealthMount uint32
	Primary     Weapon
	Secondary   *Weapon

	Armour      Armour
	MountArmour *Armour
	Heat        int32
	Ground      Ground
	Mental      Mental
	Charge      uint32
	Cost        Cost

	Ownership    []string
	Eras         []UnitEra
	MoveSpeedMod float64

	Line int
}

type Soldier struct {
	Model  string
	Count  uint32
	Extras uint32
	Mass   float64
}

type MountEffect struct {
	Target   string
	Modifier int32
}

type Formation struct {
	// Spacing is side, front-back, loose side, loose front-back
	Spacing [4]float64
	Ranks   uint32
	Kinds   []fields.Token[FormationKind]
}

type Weapon struct {
	Attack     uint32
	Charge     uint32
	Projectile string
	Range      uint32
	Ammo       uint32
	Type       fields.Token[WeaponType]
	Tech       fields.Token[TechType]
	Damage     fields.Token[DamageType]
	Sound      string
	Attributes []fields.Token[WeaponAttr]
	SpearBonus uint32
	Lethality  float64
}

// IsMissile reports whether the weapon fires projectiles.
func (w Weapon) IsMissile() bool {
	return w.Projectile != "" && !strings.EqualFold(w.Projectile, "no")
}

// Has reports whether the weapon carries attr.
func (w Weapon) Has(attr WeaponAttr) bool {
	for _, a := range w.Attributes {
		if a.Known && a.Value == attr {
			return true
		}
	}
	return false
}

type Armour struct {
	Armour uint32
	Skill  uint32
	Shield uint32
}

type Ground struct {
	Scrub  int32
	Sand   int32
	Forest int32
	Snow   int32
}

type Mental struct {
	Morale     uint32
	Discipline fields.Token[Discipline]
	Training   fields.Token[Training]
	LockMorale bool
}

type Cost struct {
	BuildTurns      uint32
	Cost            uint32
	Upkeep          uint32
	WeaponUpgrade   uint32
	ArmourUpgrade   uint32
	CustomBattle    uint32
	CustomPenalty   uint32
	CustomIncrement uint32
}

// UnitEra is one `era N factions...` line.
type UnitEra struct {
	Index    uint32
	Factions []string
}

// Has reports whether the unit carries attr.
func (u Unit) Has(attr Attribute) bool {
	for _, a := range u.Attributes {
		if a.Known && a.Value == attr {
			return true
		}
	}
	return false
}

// IsGeneral reports whether the unit is a general's bodyguard.
func (u Unit) IsGeneral() bool {
	return u.Has(AttrGeneralUnit)
}

var unitRequired = []string{
	"dictionary", "category", "class", "soldier", "stat_health",
	"stat_pri", "stat_pri_armour", "stat_mental", "stat_cost", "ownership",
}

// ParseUnits decodes export_descr_unit text.
func ParseUnits(text string) ([]Unit, error) {
	recs, err := records.SplitText(text, records.StartsWith("type"))
	if err != nil {
		return nil, err
	}

	units := make([]Unit, 0, len(recs))
	for _, rec := range recs {
		if records.FirstToken(rec.Head().Text) != "type" {
			slog.Debug("skipping unit file preamble", "line", rec.Head().Number)
			continue
		}
		u, err := decodeUnit(fields.New(rec))
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	slog.Debug("decoded units", "count", len(units))
	return units, nil
}

func decodeUnit(f fields.Fields) (Unit, error) {
	for _, key := range unitRequired {
		if _, err := f.Required(key); err != nil {
			return Unit{}, err
		}
	}

	u := Unit{
		ID:       f.OptionalString("type"),
		Key:      f.OptionalString("dictionary"),
		Category: strings.ToLower(f.OptionalString("category")),
		Class:    strings.ToLower(f.OptionalString("class")),
		Mount:    f.OptionalString("mount"),
		Line:     f.Record().Head().Number,
	}
	for _, p := range f.All("officer") {
		u.Officers = append(u.Officers, p.Value)
	}

	steps := []func(fields.Fields, *Unit) error{
		decodeSoldier,
		decodeMountEffects,
		decodeAttributes,
		decodeFormation,
		decodeHealth,
		decodeWeapons,
		decodeArmour,
		decodeEnvironment,
		decodeMental,
		decodeCost,
		decodeOwnership,
	}
	for _, step := range steps {
		if err := step(f, &u); err != nil {
			return Unit{}, err
		}
	}
	return u, nil
}

func decodeSoldier(f fields.Fields, u *Unit) error {
	pos, p, err := f.Positional("soldier")
	if err != nil {
		return err
	}
	u.Soldier.Model = pos.String(0)
	if u.Soldier.Count, err = pos.Uint(1); err != nil {
		return f.Error(p, err)
	}
	if u.Soldier.Extras, err = pos.Uint(2); err != nil {
		return f.Error(p, err)
	}
	if u.Soldier.Mass, err = pos.Float(3, 1); err != nil {
		return f.Error(p, err)
	}
	return nil
}

func decodeMountEffects(f fields.Fields, u *Unit) error {
	p, ok := f.Optional("mount_effect")
	if !ok {
		return nil
	}
	for _, item := range fields.SplitList(p.Value, fields.CommaSpace) {
		target, mod := records.SplitPair(item)
		n, err := fields.MaybeFloatAsSigned(strings.TrimPrefix(mod, "+"))
		if err != nil {
			return f.Error(p, err)
		}
		u.MountEffects = append(u.MountEffects, MountEffect{Target: target, Modifier: n})
	}
	return nil
}

func decodeAttributes(f fields.Fields, u *Unit) error {
	for _, item := range f.List("attributes", fields.CommaSpace) {
		if name, event, ok := strings.Cut(item, " "); ok && name == string(AttrGeneralUpgrade) {
			u.UpgradeEvent = fields.Unquote(event)
		}
		tok := attributeVocab.Lookup(records.FirstToken(item))
		tok.Raw = item
		u.Attributes = append(u.Attributes, tok)
	}
	if p, ok := f.Optional(string(AttrGeneralUpgrade)); ok {
		u.UpgradeEvent = fields.Unquote(p.Value)
	}
	return nil
}

func decodeFormation(f fields.Fields, u *Unit) error {
	pos, p, ok := f.OptionalPositional("formation")
	if !ok {
		return nil
	}
	for i := 0; i < 4; i++ {
		v, err := pos.Float(i, 0)
		if err != nil {
			return f.Error(p, err)
		}
		u.Formation.Spacing[i] = v
	}
	ranks, err := pos.Uint(4)
	if err != nil {
		return f.Error(p, err)
	}
	u.Formation.Ranks = ranks
	u.Formation.Kinds = formationVocab.LookupAll(pos.Items(5))
	return nil
}

func decodeHealth(f fields.Fields, u *Unit) error {
	pos, p, err := f.Positional("stat_health")
	if err != nil {
		return err
	}
	if u.Health, err = pos.Uint(0); err != nil {
		return f.Error(p, err)
	}
	if u.HealthMount, err = pos.Uint(1); err != nil {
		return f.Error(p, err)
	}
	return nil
}

func decodeWeapons(f fields.Fields, u *Unit) error {
	pri, err := decodeWeapon(f, "stat_pri", true)
	if err != nil {
		return err
	}
	u.Primary = *pri

	sec, err := decodeWeapon(f, "stat_sec", false)
	if err != nil {
		return err
	}
	if sec != nil && (sec.Attack > 0 || (sec.Type.Known && sec.Type.Value != WeaponNone)) {
		u.Secondary = sec
	}
	return nil
}

// decodeWeapon reads stat_pri/stat_sec and their _attr and _ex lines.
//
//	stat_pri  attack, charge, projectile, range, ammo, type, tech, damage, sound, ...
func decodeWeapon(f fields.Fields, key string, required bool) (*Weapon, error) {
	var (
		pos fields.Positional
		p   records.Pair
	)
	if required {
		var err error
		if pos, p, err = f.Positional(key); err != nil {
			return nil, err
		}
	} else {
		var ok bool
		if pos, p, ok = f.OptionalPositional(key); !ok {
			return nil, nil
		}
	}

	w := &Weapon{
		Projectile: pos.String(2),
		Type:       weaponTypeVocab.Lookup(pos.String(5)),
		Tech:       techTypeVocab.Lookup(pos.String(6)),
		Damage:     damageTypeVocab.Lookup(pos.String(7)),
		Sound:      pos.String(8),
		Lethality:  1,
	}
	var err error
	if w.Attack, err = pos.Uint(0); err != nil {
		return nil, f.Error(p, err)
	}
	if w.Charge, err = pos.Uint(1); err != nil {
		return nil, f.Error(p, err)
	}
	if w.Range, err = pos.Uint(3); err != nil {
		return nil, f.Error(p, err)
	}
	if w.Ammo, err = pos.Uint(4); err != nil {
		return nil, f.Error(p, err)
	}

	if attrs, ok := f.Optional(key + "_attr"); ok {
		for _, item := range fields.SplitList(attrs.Value, fields.CommaOrWhitespace) {
			if n, found := strings.CutPrefix(item, "spear_bonus_"); found {
				bonus, err := fields.MaybeFloatAsInt(n)
				if err != nil {
					return nil, f.Error(attrs, err)
				}
				w.SpearBonus = bonus
				continue
			}
			if strings.EqualFold(item, "no") {
				continue
			}
			w.Attributes = append(w.Attributes, weaponAttrVocab.Lookup(item))
		}
	}

	if ex, exPair, ok := f.OptionalPositional(key + "_ex"); ok {
		lethality, err := ex.Float(2, 1)
		if err != nil {
			return nil, f.Error(exPair, err)
		}
		w.Lethality = clamp01(lethality)
	}
	return w, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func decodeArmour(f fields.Fields, u *Unit) error {
	pos, p, err := f.Positional("stat_pri_armour")
	if err != nil {
		return err
	}
	if u.Armour.Armour, err = pos.Uint(0); err != nil {
		return f.Error(p, err)
	}
	if u.Armour.Skill, err = pos.Uint(1); err != nil {
		return f.Error(p, err)
	}
	if u.Armour.Shield, err = pos.Uint(2); err != nil {
		return f.Error(p, err)
	}

	sec, sp, ok := f.OptionalPositional("stat_sec_armour")
	if !ok {
		return nil
	}
	ma := &Armour{}
	if ma.Armour, err = sec.Uint(0); err != nil {
		return f.Error(sp, err)
	}
	if ma.Skill, err = sec.Uint(1); err != nil {
		return f.Error(sp, err)
	}
	if ma.Armour > 0 || ma.Skill > 0 {
		u.MountArmour = ma
	}
	return nil
}

func decodeEnvironment(f fields.Fields, u *Unit) error {
	if p, ok := f.Optional("stat_heat"); ok {
		heat, err := fields.MaybeFloatAsSigned(p.Value)
		if err != nil {
			return f.Error(p, err)
		}
		u.Heat = heat
	}

	if pos, p, ok := f.OptionalPositional("stat_ground"); ok {
		dst := []*int32{&u.Ground.Scrub, &u.Ground.Sand, &u.Ground.Forest, &u.Ground.Snow}
		for i, d := range dst {
			v, err := pos.Int(i)
			if err != nil {
				return f.Error(p, err)
			}
			*d = v
		}
	}

	charge, err := f.OptionalUint("stat_charge_dist", 0)
	if err != nil {
		return err
	}
	u.Charge = charge

	u.MoveSpeedMod, err = f.OptionalFloat("move_speed_mod", 1)
	return err
}

func decodeMental(f fields.Fields, u *Unit) error {
	pos, p, err := f.Positional("stat_mental")
	if err != nil {
		return err
	}
	if u.Mental.Morale, err = pos.Uint(0); err != nil {
		return f.Error(p, err)
	}
	u.Mental.Discipline = disciplineVocab.Lookup(pos.String(1))
	u.Mental.Training = trainingVocab.Lookup(pos.String(2))
	u.Mental.LockMorale = strings.EqualFold(pos.String(3), "lock_morale")
	return nil
}

func decodeCost(f fields.Fields, u *Unit) error {
	pos, p, err := f.Positional("stat_cost")
	if err != nil {
		return err
	}
	dst := []*uint32{
		&u.Cost.BuildTurns, &u.Cost.Cost, &u.Cost.Upkeep, &u.Cost.WeaponUpgrade,
		&u.Cost.ArmourUpgrade, &u.Cost.CustomBattle, &u.Cost.CustomPenalty, &u.Cost.CustomIncrement,
	}
	for i, d := range dst {
		if *d, err = pos.Uint(i); err != nil {
			return f.Error(p, err)
		}
	}
	return nil
}

func decodeOwnership(f fields.Fields, u *Unit) error {
	u.Ownership = f.List("ownership", fields.CommaSpace)

	for _, p := range f.All("era") {
		idx, list := records.SplitPair(p.Value)
		n, err := fields.MaybeFloatAsInt(idx)
		if err != nil {
			return f.Error(p, fmt.Errorf("era index: %w", err))
		}
		u.Eras = append(u.Eras, UnitEra{Index: n, Factions: fields.SplitList(list, fields.CommaSpace)})
	}
	return nil
}
