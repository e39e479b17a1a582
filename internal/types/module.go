// Package types defines the resolved roster model written by the resolver.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Module is the resolved model of one mod.
type Module struct {
	ID       string               `json:"id" validate:"required"`
	Name     string               `json:"name" validate:"required"`
	Banner   string               `json:"banner,omitempty"`
	BuildID  string               `json:"build_id" validate:"required,uuid"`
	Eras     *OrderedMap[Era]     `json:"eras"`
	Factions *OrderedMap[Faction] `json:"factions" validate:"required"`
	Regions  []Region             `json:"regions" validate:"dive"`
	Pools    []Pool               `json:"pools" validate:"dive"`
}

// Era is a campaign period with the events that have happened by then.
type Era struct {
	ID       string            `json:"id" validate:"required"`
	Name     string            `json:"name"`
	Events   []string          `json:"events,omitempty"`
	Counters map[string]uint32 `json:"counters,omitempty"`
}

// Image locates a picture, optionally as a rectangle of a sprite page.
type Image struct {
	Path   string `json:"path" validate:"required"`
	Left   int    `json:"left,omitempty"`
	Top    int    `json:"top,omitempty"`
	Width  int    `json:"width,omitempty" validate:"gte=0"`
	Height int    `json:"height,omitempty" validate:"gte=0"`
}

// Faction is a playable faction with its roster in unit file order.
type Faction struct {
	ID      string   `json:"id" validate:"required"`
	Name    string   `json:"name" validate:"required"`
	Culture string   `json:"culture"`
	Image   *Image   `json:"image,omitempty"`
	Alias   string   `json:"alias,omitempty"`
	// Eras lists only the eras that change the roster
	Eras    []string `json:"eras"`
	IsHorde bool     `json:"is_horde"`
	Roster  []Unit   `json:"roster" validate:"dive"`
}

// Region is a province with the units its creator can raise there.
type Region struct {
	Name            string            `json:"name" validate:"required"`
	Settlement      string            `json:"settlement"`
	Creator         string            `json:"creator"`
	Rebels          string            `json:"rebels"`
	Colour          [3]uint32         `json:"colour"`
	Resources       []string          `json:"resources"`
	HiddenResources []string          `json:"hidden_resources"`
	Religions       map[string]uint32 `json:"religions,omitempty"`
	Units           []string          `json:"units"`
}

// Pool is a mercenary pool.
type Pool struct {
	ID      string     `json:"id" validate:"required"`
	Regions []string   `json:"regions"`
	Units   []PoolUnit `json:"units" validate:"dive"`
}

type PoolUnit struct {
	Unit         string   `json:"unit" validate:"required"`
	Name         string   `json:"name"`
	Experience   uint32   `json:"experience" validate:"lte=9"`
	Cost         uint32   `json:"cost"`
	ReplenishMin float64  `json:"replenish_min" validate:"gte=0"`
	ReplenishMax float64  `json:"replenish_max" validate:"gtefield=ReplenishMin"`
	Max          uint32   `json:"max"`
	Initial      uint32   `json:"initial"`
	Events       []string `json:"events,omitempty"`
	Religions    []string `json:"religions,omitempty"`
	Crusading    bool     `json:"crusading,omitempty"`
}
