package resolve

import (
	"fmt"
	"strings"

	"github.com/jonathan/mod-roster/internal/raw"
	"github.com/jonathan/mod-roster/internal/requires"
	"github.com/jonathan/mod-roster/internal/types"
)

func (r *Resolver) factionByID(id string) (raw.Faction, bool) {
	for _, f := range r.in.Factions {
		if strings.EqualFold(f.ID, id) {
			return f, true
		}
	}
	return raw.Faction{}, false
}

// RegionContext judges the creator faction with the region's hidden
// resources present and its religion shares.
func (r *Resolver) RegionContext(reg raw.Region) *requires.Context {
	culture := ""
	if f, ok := r.factionByID(reg.Creator); ok {
		culture = f.Culture
	}
	_, hidden := r.splitResources(reg.Resources)
	percent := make(map[string]uint32, len(reg.Religions))
	for _, rel := range reg.Religions {
		percent[rel.ID] = rel.Percent
	}
	return requires.Merge("region:"+reg.Name,
		requires.ForFaction(reg.Creator, culture),
		requires.ForRegion(reg.Name, hidden).WithReligions(percent))
}

func (r *Resolver) splitResources(all []string) (resources, hidden []string) {
	resources, hidden = []string{}, []string{}
	for _, res := range all {
		if r.hidden[strings.ToLower(res)] {
			hidden = append(hidden, res)
		} else {
			resources = append(resources, res)
		}
	}
	return resources, hidden
}

func (r *Resolver) regions() ([]types.Region, error) {
	out := make([]types.Region, 0, len(r.in.Regions))
	for _, reg := range r.in.Regions {
		resources, hidden := r.splitResources(reg.Resources)
		region := types.Region{
			Name:            reg.Name,
			Settlement:      reg.Settlement,
			Creator:         reg.Creator,
			Rebels:          reg.Rebels,
			Colour:          reg.Colour,
			Resources:       resources,
			HiddenResources: hidden,
			Units:           []string{},
		}
		if len(reg.Religions) > 0 {
			region.Religions = make(map[string]uint32, len(reg.Religions))
			for _, rel := range reg.Religions {
				region.Religions[rel.ID] = rel.Percent
			}
		}

		ctx := r.RegionContext(reg)
		for _, u := range r.agg.Units() {
			ok, err := r.Available(u.ID, ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve region %s: unit %s: %w", reg.Name, u.ID, err)
			}
			if ok {
				region.Units = append(region.Units, u.ID)
			}
		}
		out = append(out, region)
	}
	return out, nil
}

func (r *Resolver) pools() ([]types.Pool, error) {
	out := make([]types.Pool, 0, len(r.in.Pools))
	for _, p := range r.in.Pools {
		pool := types.Pool{ID: p.ID, Regions: p.Regions, Units: make([]types.PoolUnit, 0, len(p.Units))}
		for _, pu := range p.Units {
			u, ok := r.agg.Unit(pu.Unit)
			if !ok {
				return nil, &ReferenceError{Kind: "unit", Name: pu.Unit, From: fmt.Sprintf("pool %s (line %d)", p.ID, pu.Line)}
			}
			pool.Units = append(pool.Units, types.PoolUnit{
				Unit:         u.ID,
				Name:         r.in.UnitNames.LookupOr(u.Key, u.ID),
				Experience:   pu.Experience,
				Cost:         pu.Cost,
				ReplenishMin: pu.ReplenishMin,
				ReplenishMax: pu.ReplenishMax,
				Max:          pu.Max,
				Initial:      pu.Initial,
				Events:       pu.Events,
				Religions:    pu.Religions,
				Crusading:    pu.Crusading,
			})
		}
		out = append(out, pool)
	}
	return out, nil
}
