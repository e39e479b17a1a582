// Package resolve turns decoded mod data into the resolved roster model.
package resolve

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/mod-roster/internal/availability"
	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/requires"
	"github.com/jonathan/mod-roster/internal/sprites"
	"github.com/jonathan/mod-roster/internal/text"
	"github.com/jonathan/mod-roster/internal/types"
)

// Inputs is everything decoded from one mod.
type Inputs struct {
	Units        []raw.Unit
	Buildings    *raw.BuildingSet
	Factions     []raw.Faction
	Pools        []raw.Pool
	Regions      []raw.Region
	Mounts       []raw.Mount
	Models       []raw.Model
	UnitNames    *text.Table
	FactionNames *text.Table
	Sprites      *sprites.Catalog
}

// Era is a campaign period as configured for a mod.
type Era struct {
	ID       string
	Name     string
	Events   []string
	Counters map[string]uint32
}

// Options carries the mod settings that are not part of the data files.
type Options struct {
	ID     string
	Name   string
	Banner string
	// BuildID is generated when empty
	BuildID        string
	Eras           []Era
	SpeedOverrides map[string]float64
	// UnitImage is a path pattern with {faction}, {id} and {key} placeholders
	UnitImage       string
	FactionAliases  map[string]string
	ExcludeFactions []string
}

// Resolver evaluates availability and derives the resolved model.
type Resolver struct {
	in        *Inputs
	opts      Options
	aliases   *requires.AliasTable
	agg       *availability.Aggregator
	mounts    map[string]raw.Mount
	skeletons map[string][]string
	hidden    map[string]bool
}

// New indexes the inputs. Undefined or cyclic aliases and recruit options
// naming unknown units fail here, before any evaluation.
func New(in *Inputs, opts Options) (*Resolver, error) {
	buildings := in.Buildings
	if buildings == nil {
		buildings = &raw.BuildingSet{}
	}
	aliases, err := requires.NewAliasTable(buildings.Aliases)
	if err != nil {
		return nil, fmt.Errorf("failed to build alias table: %w", err)
	}
	if err := aliases.Check(); err != nil {
		return nil, fmt.Errorf("failed to check aliases: %w", err)
	}
	agg, err := availability.Build(in.Units, buildings.Buildings)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate recruitment: %w", err)
	}

	r := &Resolver{
		in:        in,
		opts:      opts,
		aliases:   aliases,
		agg:       agg,
		mounts:    make(map[string]raw.Mount, len(in.Mounts)),
		skeletons: make(map[string][]string, len(in.Models)),
		hidden:    make(map[string]bool, len(buildings.HiddenResources)),
	}
	for _, m := range in.Mounts {
		r.mounts[strings.ToLower(m.ID)] = m
	}
	for _, m := range in.Models {
		r.skeletons[strings.ToLower(m.ID)] = m.Skeletons
	}
	for _, h := range buildings.HiddenResources {
		r.hidden[strings.ToLower(h)] = true
	}
	return r, nil
}

// Aliases returns the alias table built from the building file.
func (r *Resolver) Aliases() *requires.AliasTable {
	return r.aliases
}

// Aggregator returns the recruitment index.
func (r *Resolver) Aggregator() *availability.Aggregator {
	return r.agg
}

// Resolve builds and validates the model.
func (r *Resolver) Resolve() (*types.Module, error) {
	buildID := r.opts.BuildID
	if buildID == "" {
		buildID = uuid.NewString()
	}
	m := &types.Module{
		ID:       r.opts.ID,
		Name:     r.opts.Name,
		Banner:   r.opts.Banner,
		BuildID:  buildID,
		Eras:     types.NewOrderedMap[types.Era](),
		Factions: types.NewOrderedMap[types.Faction](),
	}
	for _, e := range r.opts.Eras {
		m.Eras.Set(e.ID, types.Era{ID: e.ID, Name: e.Name, Events: e.Events, Counters: e.Counters})
	}

	for _, f := range r.in.Factions {
		if r.excluded(f.ID) {
			continue
		}
		faction, err := r.faction(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve faction %s: %w", f.ID, err)
		}
		m.Factions.Set(f.ID, faction)
	}

	regions, err := r.regions()
	if err != nil {
		return nil, err
	}
	m.Regions = regions

	pools, err := r.pools()
	if err != nil {
		return nil, err
	}
	m.Pools = pools

	if err := m.Validate(); err != nil {
		return nil, &ValidationError{Cause: err}
	}
	slog.Debug("resolved model",
		"factions", m.Factions.Len(),
		"eras", m.Eras.Len(),
		"regions", len(m.Regions),
		"pools", len(m.Pools))
	return m, nil
}

func (r *Resolver) excluded(id string) bool {
	for _, x := range r.opts.ExcludeFactions {
		if strings.EqualFold(x, id) {
			return true
		}
	}
	return false
}

// Available evaluates a unit's aggregated requirement under ctx.
func (r *Resolver) Available(unitID string, ctx *requires.Context) (bool, error) {
	return requires.Evaluate(r.agg.Requirement(unitID), r.aliases, ctx)
}

// EraContext is the faction context with an era's events applied.
func EraContext(f raw.Faction, e Era) *requires.Context {
	return requires.Merge(f.ID+"@"+e.ID,
		requires.ForFaction(f.ID, f.Culture),
		requires.ForEra(e.ID, e.Events, e.Counters))
}

func (r *Resolver) faction(f raw.Faction) (types.Faction, error) {
	ctx := requires.ForFaction(f.ID, f.Culture)
	out := types.Faction{
		ID:      f.ID,
		Name:    r.in.FactionNames.LookupOr(f.ID, f.ID),
		Culture: f.Culture,
		Image:   r.factionImage(f),
		Alias:   r.alias(f.ID),
		IsHorde: f.Horde,
		Roster:  []types.Unit{},
	}

	var eraSets [][]string
	for _, u := range r.agg.Units() {
		ok, err := r.Available(u.ID, ctx)
		if err != nil {
			return types.Faction{}, fmt.Errorf("unit %s: %w", u.ID, err)
		}
		if !ok {
			continue
		}

		eras := []string{}
		for _, e := range r.opts.Eras {
			in, err := r.Available(u.ID, EraContext(f, e))
			if err != nil {
				return types.Faction{}, fmt.Errorf("unit %s era %s: %w", u.ID, e.ID, err)
			}
			if in {
				eras = append(eras, e.ID)
			}
		}

		unit := r.unit(u, f.ID)
		unit.Eras = eras
		unit.TechTier = uint8(r.agg.TechTier(u.ID))
		out.Roster = append(out.Roster, unit)
		eraSets = append(eraSets, eras)
	}
	out.Eras = r.pruneEras(eraSets)

	slog.Debug("resolved faction", "faction", f.ID, "units", len(out.Roster), "eras", out.Eras)
	return out, nil
}

func (r *Resolver) alias(factionID string) string {
	for k, v := range r.opts.FactionAliases {
		if strings.EqualFold(k, factionID) {
			return v
		}
	}
	return ""
}

// pruneEras keeps the eras some but not all roster units belong to, in
// configured order. Eras shared by every unit say nothing about the roster.
func (r *Resolver) pruneEras(sets [][]string) []string {
	out := []string{}
	if len(sets) == 0 {
		return out
	}
	for _, e := range r.opts.Eras {
		count := 0
		for _, s := range sets {
			if contains(s, e.ID) {
				count++
			}
		}
		if count > 0 && count < len(sets) {
			out = append(out, e.ID)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}
