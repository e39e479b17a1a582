// Package modtest provides a small, self-consistent mod data set for tests.
package modtest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

// Units is an export_descr_unit with infantry, missile, cavalry, animal,
// artillery and two generations of general units.
const Units = `; export_descr_unit
; comment-only preamble

type             Peasants
dictionary       Peasants      ; Peasants
category         infantry
class            light
soldier          Peasants, 60, 0, 1
attributes       sea_faring, hide_forest, can_sap, is_peasant
formation        1.2, 1.2, 2.4, 2.4, 4, square
stat_health      1, 0
stat_pri         3, 1, no, 0, 0, melee, simple, piercing, spear, 25, 1
stat_pri_attr    no
stat_sec         0, 0, no, 0, 0, no, no, no, none, 25, 1
stat_sec_attr    no
stat_pri_armour  0, 1, 0, flesh
stat_sec_armour  0, 0, flesh
stat_heat        1
stat_ground      0, 0, 0, 0
stat_mental      1, low, untrained
stat_charge_dist 30
stat_cost        1, 100, 100, 50, 50, 100, 4, 80
ownership        england, france
era 0            england, france
era 1            england, france

type             Spearmen
dictionary       Spearmen
category         infantry
class            spearmen
soldier          Spearmen, 60, 0, 1.0
attributes       sea_faring, hide_improved_forest, hide_long_grass, hardy
formation        1, 1, 2, 2, 3, square, schiltrom
stat_health      1, 0
stat_pri         5, 2, no, 0, 0, melee, simple, piercing, spear, 25, 1
stat_pri_attr    spear, spear_bonus_4
stat_pri_armour  3, 5, 4, metal
stat_heat        2
stat_ground      0, 0, -1, -2
stat_mental      5, normal, trained
stat_cost        1, 300, 150, 60, 60, 300, 4, 80
ownership        england

type             Dismounted Knights
dictionary       Dismounted_Knights
category         infantry
class            heavy
soldier          Dismounted_Knights, 40, 0, 1.2
attributes       sea_faring, very_hardy, extremely_hardy, warcry, knight
formation        1, 1, 2, 2, 3, square
stat_health      1, 0
stat_pri         11, 3, no, 0, 0, melee, blade, slashing, sword, 25, 1
stat_pri_attr    ap
stat_pri_ex      0, 0, 0.5
stat_pri_armour  8, 6, 0, metal
stat_heat        4
stat_ground      0, -1, 0, 0
stat_mental      9, disciplined, highly_trained, lock_morale
stat_cost        2, 800.5, 250, 80, 80, 800, 4, 80
ownership        england, france

type             Archers
dictionary       Archers
category         infantry
class            missile
soldier          Archers, 60, 0, 1
attributes       sea_faring, hide_anywhere, stakes, druid, glittering
stat_health      1, 0
stat_pri         4, 2, arrow, 160, 30, missile, archery, piercing, none, 25, 1
stat_pri_attr    prec, fire
stat_sec         3, 1, no, 0, 0, melee, simple, piercing, knife, 25, 1
stat_sec_attr    no
stat_pri_armour  1, 2, 0, leather
stat_mental      4, normal, trained
stat_cost        1, 250, 120, 50, 50, 250, 4, 80
ownership        england, france

type             Mounted Knights
dictionary       Mounted_Knights
category         cavalry
class            heavy
soldier          Mounted_Knights, 30, 0, 1.5
mount            heavy horse
mount_effect     elephant -2, camel +4
attributes       sea_faring, power_charge
stat_health      1, 1
stat_pri         9, 8, no, 0, 0, melee, simple, piercing, lance, 25, 1
stat_pri_attr    no
stat_pri_armour  7, 4, 3, metal
stat_sec_armour  2, 1, flesh
stat_mental      9, impetuous, highly_trained
stat_cost        2, 1000, 300, 80, 80, 1000, 4, 80
ownership        england, france
move_speed_mod   1.1

type             Mongol Horse Archers
dictionary       Mongol_Horse_Archers
category         cavalry
class            missile
soldier          Mongol_Horse_Archers, 30, 0, 1
mount            pony
attributes       cantabrian_circle, can_feign_rout
stat_health      1, 1
stat_pri         5, 3, arrow, 120, 35, missile, archery, piercing, none, 25, 1
stat_pri_attr    no
stat_pri_armour  2, 2, 0, leather
stat_mental      7, normal, trained
stat_cost        1, 500, 180, 60, 60, 500, 4, 80
ownership        mongols

type             War Elephants
dictionary       War_Elephants
category         cavalry
class            heavy
soldier          War_Elephants, 6, 0, 8
mount            elephant
attributes       frighten_foot, frighten_mounted, can_run_amok
stat_health      1, 20
stat_pri         10, 12, no, 0, 0, melee, simple, piercing, none, 25, 1
stat_pri_attr    ap, area
stat_pri_armour  4, 2, 0, leather
stat_mental      8, normal, trained
stat_cost        2, 1500, 400, 100, 100, 1500, 4, 80
ownership        mongols

type             Catapult
dictionary       Catapult
category         siege
class            missile
soldier          Catapult_Crew, 16, 1, 1
attributes       can_withdraw
stat_health      1, 0
stat_pri         63, 0, boulder, 300, 40, siege_missile, siege, blunt, none, 25, 1
stat_pri_attr    area, launching
stat_pri_armour  0, 1, 0, flesh
stat_mental      3, normal, untrained
stat_cost        2, 600, 200, 0, 0, 600, 4, 80
ownership        england

type             NE Bodyguard
dictionary       NE_Bodyguard
category         cavalry
class            heavy
soldier          NE_Bodyguard, 20, 0, 1.5
mount            heavy horse
attributes       general_unit, command
stat_health      2, 1
stat_pri         8, 8, no, 0, 0, melee, simple, piercing, lance, 25, 1
stat_pri_attr    no
stat_pri_armour  6, 4, 3, metal
stat_mental      10, disciplined, highly_trained
stat_cost        1, 1200, 200, 80, 80, 1200, 4, 80
ownership        england, france

type             NE Late Bodyguard
dictionary       NE_Late_Bodyguard
category         cavalry
class            heavy
soldier          NE_Bodyguard, 20, 0, 1.5
mount            heavy horse
attributes       general_unit, command, general_unit_upgrade "heavy_mail"
stat_health      2, 1
stat_pri         10, 8, no, 0, 0, melee, simple, piercing, lance, 25, 1
stat_pri_attr    no
stat_pri_armour  9, 4, 3, metal
stat_mental      12, disciplined, highly_trained
stat_cost        1, 1400, 200, 80, 80, 1400, 4, 80
ownership        england, france
`

// Buildings has hidden resources, an alias used before its definition,
// M2TW recruit_pool lines and one RTW recruit line.
const Buildings = `hidden_resources london elephants

building barracks
{
    levels town_watch town_guard
    {
        town_watch city requires northern
        {
            capability
            {
                recruit_pool "Peasants"  1   0.5   2  0  requires factions { england, france, }
                recruit_pool "Spearmen"  1   0.5   2  0  requires factions { england, }
            }
            construction  1
            cost  400
            settlement_min village
            upgrades
            {
                town_guard
            }
        }
        town_guard city requires northern
        {
            capability
            {
                recruit_pool "Peasants"  1   0.5   2  0  requires factions { england, france, }
                recruit_pool "Dismounted Knights"  1   0.2   1  0  requires factions { england, france, } and event_counter heavy_mail 1
            }
            settlement_min city
        }
    }
    plugins
    {
    }
}

alias northern
{
    requires factions { northern_european, }
    display_string "Northern factions"
}

building archery_range
{
    levels bowyer
    {
        bowyer requires factions { england, france, }
        {
            capability {
                recruit "Archers"  0  requires none
            }
            settlement_min town
        }
    }
}

building stables
{
    levels stable
    {
        stable city requires factions { all, }
        {
            capability
            {
                recruit_pool "Mounted Knights"  1   0.3   1  0  requires factions { england, france, }
                recruit_pool "Mongol Horse Archers"  1   0.3   2  0  requires factions { mongols, }
                recruit_pool "War Elephants"  1   0.1   1  0  requires factions { mongols, } and hidden_resource elephants
                horse_breeding 1
            }
            settlement_min large_town
        }
    }
}

building siege
{
    levels workshop
    {
        workshop city requires factions { england, }
        {
            capability
            {
                recruit_pool "Catapult"  1   0.2   1  0
            }
            settlement_min large_city
        }
    }
}
`

const Factions = `; descr_sm_factions
faction			england
culture			northern_european
religion		catholic
symbol			models_strat/symbol_england.CAS
loading_logo		loading_screen/symbols/symbol128_england.tga
standard_index		0
logo_index		1
small_logo_index	245
custom_battle_availability	yes

faction			france
culture			northern_european
religion		catholic
loading_logo		loading_screen/symbols/symbol128_france.tga
standard_index		2
logo_index		3
custom_battle_availability	yes

faction			mongols, spawned_on_event
culture			middle_eastern
religion		pagan
loading_logo		loading_screen/symbols/symbol128_mongols.tga
horde_min_units		10
horde_max_units		20
horde_unit_per_settlement_population	250
custom_battle_availability	no
`

const Mercenaries = `pool British_Isles
	regions London_Province
	unit Peasants,			exp 0 cost 300 replenish 0.1 - 0.2 max 2 initial 1 religions { catholic }
	unit Archers,			exp 1 cost 450 replenish 0.05 - 0.1 max 1 initial 0 events { heavy_mail } crusading

pool Steppe
	regions Karakorum_Province
	unit Mongol Horse Archers,	exp 2 cost 700 replenish 0.1 - 0.2 max 3 initial 2
`

const Regions = `; descr_regions
London_Province
	London
	england
	English_Rebels
	255 0 0
	wool, london
	5
	3
	religions { catholic 90 pagan 10 }
Paris_Province
	Paris
	france
	French_Rebels
	0 0 255
	wine
	5
	4
	religions { catholic 100 }
Karakorum_Province
	Karakorum
	mongols
	Mongol_Rebels
	120 120 0
	none
	3
	1
	religions { pagan 100 }
`

const Mounts = `type		heavy horse
class		horse
model		mount_heavy_horse

type		pony
class		horse

type		elephant
class		elephant
`

const Models = `serialization 1

type		Peasants
skeleton	fs_spearman, fs_swordsman

type		Spearmen
skeleton	fs_spearman

type		Dismounted_Knights
skeleton	fs_swordsman

type		Archers
skeleton	fs_archer, fs_dagger

type		Catapult_Crew
skeleton	fs_engineer
`

// UnitNames is the export_units text table.
var UnitNames = map[string]string{
	"Peasants":             "Peasants",
	"Spearmen":             "Spearmen",
	"Dismounted_Knights":   "Dismounted Knights",
	"Archers":              "Longbowmen",
	"Mounted_Knights":      "Mounted Knights",
	"Mongol_Horse_Archers": "Mongol Horse Archers",
	"War_Elephants":        "War Elephants",
	"Catapult":             "Catapult",
	"NE_Bodyguard":         "Bodyguard",
	"NE_Late_Bodyguard":    "Feudal Bodyguard",
}

// FactionNames is the expanded text table.
var FactionNames = map[string]string{
	"ENGLAND": "Kingdom of England",
	"FRANCE":  "Kingdom of France",
	"MONGOLS": "Mongol Horde",
}

// Manifest is a manifest for the files written by WriteMod.
const Manifest = `id: testmod
name: Test Mod
banner: banner.png
data_dir: data
files:
  units: export_descr_unit.txt
  buildings: export_descr_buildings.txt
  factions: descr_sm_factions.txt
  mercenaries: descr_mercenaries.txt
  regions: descr_regions.txt
  mounts: descr_mount.txt
  models: descr_model_battle.txt
  unit_names: text/export_units.txt
  faction_names: text/expanded.txt.strings.bin
  sprites: faction_icons.sd
eras:
  - id: early
    name: Early
  - id: late
    name: Late
    events: [heavy_mail]
    counters:
      heavy_mail: 1
speed_overrides:
  pony: 12
unit_image: "units/{faction}/#{key}.tga"
`

// TextTable encodes entries as a UTF-16LE text table with a BOM, one
// `{key}value` line per entry in the given key order.
func TextTable(t testing.TB, keys []string, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("¬ generated\r\n")
	for _, k := range keys {
		buf.WriteString("{" + k + "}" + entries[k] + "\r\n")
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	out, err := enc.Bytes(buf.Bytes())
	if err != nil {
		t.Fatalf("encode text table: %v", err)
	}
	return out
}

// StringsBin encodes entries in the binary string table format.
func StringsBin(t testing.TB, keys []string, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	le := binary.LittleEndian
	_ = binary.Write(&buf, le, uint16(2))
	_ = binary.Write(&buf, le, uint16(0x0800))
	_ = binary.Write(&buf, le, uint32(len(keys)))
	writeStr := func(s string) {
		units := utf16.Encode([]rune(s))
		_ = binary.Write(&buf, le, uint16(len(units)))
		_ = binary.Write(&buf, le, units)
	}
	for _, k := range keys {
		writeStr(k)
		writeStr(entries[k])
	}
	return buf.Bytes()
}

// SpritePage and SpriteEntry describe a catalog for Catalog.
type SpritePage struct {
	File          string
	Width, Height uint32
	Mask          []byte
}

type SpriteEntry struct {
	Key                      string
	Page                     uint16
	Left, Top, Right, Bottom uint16
	Alpha, Cursor            uint8
	X, Y                     uint16
}

// Catalog encodes a sprite catalog.
func Catalog(pages []SpritePage, entries []SpriteEntry) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	w := func(v any) { _ = binary.Write(&buf, le, v) }
	w(uint32(6))
	w(uint32(len(pages)))
	w(uint32(len(entries)))
	for _, p := range pages {
		w(uint16(len(p.File)))
		buf.WriteString(p.File)
		w(p.Width)
		w(p.Height)
		w(uint32(len(p.Mask)))
		buf.Write(p.Mask)
	}
	for _, e := range entries {
		w(uint16(len(e.Key)))
		buf.WriteString(e.Key)
		w(e.Page)
		w([]uint16{e.Left, e.Top, e.Right, e.Bottom})
		w(e.Alpha)
		w(e.Cursor)
		w([]uint16{e.X, e.Y})
	}
	return buf.Bytes()
}

// FactionIcons is the sprite catalog written by WriteMod.
func FactionIcons() []byte {
	return Catalog(
		[]SpritePage{{File: "faction_icons.tga", Width: 256, Height: 128}},
		[]SpriteEntry{
			{Key: "england", Page: 0, Left: 0, Top: 0, Right: 64, Bottom: 64, Alpha: 1},
			{Key: "FRANCE", Page: 0, Left: 64, Top: 0, Right: 128, Bottom: 64, Alpha: 1},
		},
	)
}

var unitNameKeys = []string{
	"Peasants", "Spearmen", "Dismounted_Knights", "Archers", "Mounted_Knights",
	"Mongol_Horse_Archers", "War_Elephants", "Catapult", "NE_Bodyguard", "NE_Late_Bodyguard",
}

var factionNameKeys = []string{"ENGLAND", "FRANCE", "MONGOLS"}

// WriteMod writes the whole data set and its manifest under dir and returns
// the manifest path.
func WriteMod(t testing.TB, dir string) string {
	t.Helper()
	data := filepath.Join(dir, "data")
	files := map[string][]byte{
		"export_descr_unit.txt":         []byte(Units),
		"export_descr_buildings.txt":    []byte(Buildings),
		"descr_sm_factions.txt":         []byte(Factions),
		"descr_mercenaries.txt":         []byte(Mercenaries),
		"descr_regions.txt":             []byte(Regions),
		"descr_mount.txt":               []byte(Mounts),
		"descr_model_battle.txt":        []byte(Models),
		"text/export_units.txt":         TextTable(t, unitNameKeys, UnitNames),
		"text/expanded.txt.strings.bin": StringsBin(t, factionNameKeys, FactionNames),
		"faction_icons.sd":              FactionIcons(),
	}
	for name, body := range files {
		path := filepath.Join(data, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, body, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	manifest := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(manifest, []byte(Manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return manifest
}
