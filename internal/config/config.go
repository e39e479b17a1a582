// Package config provides mod manifest loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override manifest values.
const (
	EnvDataDir     = "ROSTER_DATA_DIR"
	EnvDatabaseURL = "DATABASE_URL"
)

// Files names the mod's data files, relative to the data directory.
type Files struct {
	Units        string `yaml:"units" validate:"required"`        // export_descr_unit
	Buildings    string `yaml:"buildings" validate:"required"`    // export_descr_buildings
	Factions     string `yaml:"factions" validate:"required"`     // descr_sm_factions
	Mercenaries  string `yaml:"mercenaries,omitempty"`            // descr_mercenaries
	Regions      string `yaml:"regions,omitempty"`                // descr_regions
	Mounts       string `yaml:"mounts,omitempty"`                 // descr_mount
	Models       string `yaml:"models,omitempty"`                 // descr_model_battle
	UnitNames    string `yaml:"unit_names,omitempty"`             // text table or strings.bin
	FactionNames string `yaml:"faction_names,omitempty"`          // text table or strings.bin
	Sprites      string `yaml:"sprites,omitempty"`                // .sd sprite catalog
}

// Era is a campaign period and the events that have happened by then.
type Era struct {
	ID       string            `yaml:"id" validate:"required"`
	Name     string            `yaml:"name,omitempty"`
	Events   []string          `yaml:"events,omitempty"`
	Counters map[string]uint32 `yaml:"counters,omitempty"`
}

// Manifest describes one mod. Paths are resolved against the manifest's
// directory.
type Manifest struct {
	ID      string `yaml:"id" validate:"required"`
	Name    string `yaml:"name" validate:"required"`
	Banner  string `yaml:"banner,omitempty"`
	DataDir string `yaml:"data_dir,omitempty"`
	Files   Files  `yaml:"files"`

	Eras            []Era              `yaml:"eras,omitempty" validate:"dive"`
	SpeedOverrides  map[string]float64 `yaml:"speed_overrides,omitempty" validate:"dive,gt=0"`
	UnitImage       string             `yaml:"unit_image,omitempty"`
	FactionAliases  map[string]string  `yaml:"faction_aliases,omitempty"`
	ExcludeFactions []string           `yaml:"exclude_factions,omitempty"`

	DatabaseURL string `yaml:"database_url,omitempty"`

	dir string
}

// DefaultManifest holds the stock file names of an M2TW data directory.
func DefaultManifest() Manifest {
	return Manifest{
		DataDir: "data",
		Files: Files{
			Units:        "export_descr_unit.txt",
			Buildings:    "export_descr_buildings.txt",
			Factions:     "descr_sm_factions.txt",
			Mercenaries:  "descr_mercenaries.txt",
			Regions:      "world/maps/base/descr_regions.txt",
			Mounts:       "descr_mount.txt",
			Models:       "unit_models/battle_models.modeldb",
			UnitNames:    "text/export_units.txt.strings.bin",
			FactionNames: "text/expanded.txt.strings.bin",
		},
	}
}

// LoadManifest loads a manifest from a YAML file and applies environment
// overrides. Returns an error if the file cannot be read or parsed.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}
	m.dir = filepath.Dir(path)
	m.ApplyEnv()
	return &m, nil
}

// ApplyEnv overrides the data directory and database URL from the
// environment when set.
func (m *Manifest) ApplyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		m.DataDir = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		m.DatabaseURL = v
	}
}

// Validate checks struct tags, then the rules tags cannot express.
func (m *Manifest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("manifest error: %w", err)
	}

	seen := map[string]bool{}
	for _, e := range m.Eras {
		if seen[e.ID] {
			return fmt.Errorf("manifest error: duplicate era %q", e.ID)
		}
		seen[e.ID] = true
	}

	if dir := m.DataPath(); dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("manifest error: data directory not found: %s", dir)
		}
	}
	return nil
}

// DataPath is the absolute data directory.
func (m *Manifest) DataPath() string {
	if m.DataDir == "" {
		return m.dir
	}
	if filepath.IsAbs(m.DataDir) {
		return m.DataDir
	}
	return filepath.Join(m.dir, m.DataDir)
}

// Path resolves a data file name, or returns "" for an unset file.
func (m *Manifest) Path(file string) string {
	if file == "" {
		return ""
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(m.DataPath(), file)
}

// MergeWithDefaults returns a new Manifest with empty fields filled from
// defaults.
func (m *Manifest) MergeWithDefaults(defaults Manifest) Manifest {
	result := *m

	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.Banner == "" {
		result.Banner = defaults.Banner
	}
	if result.UnitImage == "" {
		result.UnitImage = defaults.UnitImage
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	f, d := &result.Files, defaults.Files
	for _, pair := range []struct {
		dst *string
		def string
	}{
		{&f.Units, d.Units},
		{&f.Buildings, d.Buildings},
		{&f.Factions, d.Factions},
		{&f.Mercenaries, d.Mercenaries},
		{&f.Regions, d.Regions},
		{&f.Mounts, d.Mounts},
		{&f.Models, d.Models},
		{&f.UnitNames, d.UnitNames},
		{&f.FactionNames, d.FactionNames},
		{&f.Sprites, d.Sprites},
	} {
		if *pair.dst == "" {
			*pair.dst = pair.def
		}
	}

	if len(result.Eras) == 0 {
		result.Eras = defaults.Eras
	}
	if len(result.SpeedOverrides) == 0 {
		result.SpeedOverrides = defaults.SpeedOverrides
	}
	return result
}
