package resolve

import (
	"strings"

	"github.com/jonathan/mod-roster/internal/fields"
	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/types"
)

// unit derives the resolved stat block. Availability fields (eras, tech
// tier) are filled in by the caller.
func (r *Resolver) unit(u raw.Unit, factionID string) types.Unit {
	mountClass := r.mountClass(u)
	out := types.Unit{
		ID:            u.ID,
		Name:          r.in.UnitNames.LookupOr(u.Key, u.ID),
		Key:           u.Key,
		Image:         r.unitImage(u, factionID),
		Class:         Classify(u, mountClass),
		Soldiers:      u.Soldier.Count,
		Officers:      uint32(len(u.Officers)),
		Mount:         string(mountClass),
		Formations:    formations(u.Formation.Kinds),
		HP:            u.Health,
		HPMount:       u.HealthMount,
		Primary:       weapon(u.Primary),
		Defense:       defense(u.Armour),
		Heat:          u.Heat,
		Ground:        types.Ground(u.Ground),
		Morale:        u.Mental.Morale,
		Discipline:    tokenString(u.Mental.Discipline),
		BuildTurns:    u.Cost.BuildTurns,
		Cost:          u.Cost.Cost,
		Upkeep:        u.Cost.Upkeep,
		Stamina:       Stamina(u),
		Inexhaustible: u.Has(raw.AttrInexhaustible),
		InfiniteAmmo:  u.Has(raw.AttrInfiniteAmmo),
		Scaling:       scales(u),
		Abilities:     Abilities(u),
		Horde:         hasFormation(u, raw.FormationHorde),
		General:       u.IsGeneral(),
		Mercenary:     u.Has(raw.AttrMercenaryUnit),
		LegionaryName: u.Has(raw.AttrLegionaryName),
		MoveSpeed:     r.moveSpeed(u, mountClass),
	}
	if u.Secondary != nil {
		out.Secondary = weapon(*u.Secondary)
	}
	if u.MountArmour != nil {
		d := defense(*u.MountArmour)
		out.DefenseMount = &d
	}
	return out
}

func (r *Resolver) mountClass(u raw.Unit) raw.MountClass {
	if u.Mount == "" {
		return ""
	}
	m, ok := r.mounts[strings.ToLower(u.Mount)]
	if !ok || !m.Class.Known {
		return ""
	}
	return m.Class.Value
}

func (r *Resolver) unitImage(u raw.Unit, factionID string) string {
	if r.opts.UnitImage == "" {
		return ""
	}
	return strings.NewReplacer(
		"{faction}", strings.ToLower(factionID),
		"{id}", u.ID,
		"{key}", strings.ToLower(u.Key),
	).Replace(r.opts.UnitImage)
}

func (r *Resolver) factionImage(f raw.Faction) *types.Image {
	if s, ok := r.in.Sprites.Lookup(f.ID); ok {
		return &types.Image{
			Path:   s.Page.File,
			Left:   int(s.Left),
			Top:    int(s.Top),
			Width:  s.Width(),
			Height: s.Height(),
		}
	}
	if f.LoadingLogo != "" {
		return &types.Image{Path: f.LoadingLogo}
	}
	return nil
}

func weapon(w raw.Weapon) *types.Weapon {
	if w.Attack == 0 && (!w.Type.Known || w.Type.Value == raw.WeaponNone) {
		return nil
	}
	return &types.Weapon{
		Class:         tokenString(w.Tech),
		Factor:        w.Attack,
		IsMissile:     w.IsMissile(),
		Charge:        w.Charge,
		Range:         w.Range,
		Ammo:          w.Ammo,
		Lethality:     w.Lethality,
		ArmorPiercing: w.Has(raw.WeaponAP),
		BodyPiercing:  w.Has(raw.WeaponBP),
		PreCharge:     w.Has(raw.WeaponThrownAttr),
		Launching:     w.Has(raw.WeaponLaunching),
		Area:          w.Has(raw.WeaponArea),
		Fire:          w.Has(raw.WeaponFire) || (w.Damage.Known && w.Damage.Value == raw.DamageFire),
		SpearBonus:    w.SpearBonus,
	}
}

func defense(a raw.Armour) types.Defense {
	return types.Defense{Armour: a.Armour, Skill: a.Skill, Shield: a.Shield}
}

func formations(kinds []fields.Token[raw.FormationKind]) []string {
	out := []string{}
	for _, k := range kinds {
		if k.Known {
			out = append(out, string(k.Value))
		}
	}
	return out
}

func hasFormation(u raw.Unit, kind raw.FormationKind) bool {
	for _, k := range u.Formation.Kinds {
		if k.Known && k.Value == kind {
			return true
		}
	}
	return false
}

// scales reports whether the unit size follows the battle unit scale
// setting. Ships and siege engines keep their crew size.
func scales(u raw.Unit) bool {
	switch strings.ToLower(u.Category) {
	case "ship", "siege":
		return false
	}
	return true
}

func tokenString[T ~string](t fields.Token[T]) string {
	if t.Known {
		return string(t.Value)
	}
	return t.Raw
}
