package resolve

import (
	"strings"

	"github.com/jonathan/mod-roster/internal/raw"
)

const (
	defaultFootSpeed    = 8.0
	defaultMountedSpeed = 15.0
)

// mountSpeeds is the base run speed per mount class.
var mountSpeeds = map[raw.MountClass]float64{
	raw.MountHorse:    15,
	raw.MountCamel:    13,
	raw.MountElephant: 11,
	raw.MountChariot:  14,
}

// skeletonSpeeds is the base run speed of common infantry skeletons.
var skeletonSpeeds = map[string]float64{
	"fs_spearman":            8,
	"fs_fast_spearman":       9,
	"fs_semi_fast_spearman":  8.5,
	"fs_slow_spearman":       7,
	"fs_swordsman":           8,
	"fs_fast_swordsman":      9,
	"fs_semi_fast_swordsman": 8.5,
	"fs_slow_swordsman":      7,
	"fs_2handed":             8,
	"fs_archer":              8,
	"fs_slow_archer":         7,
	"fs_crossbow":            7.5,
	"fs_dagger":              8.5,
	"fs_engineer":            6,
	"fs_peasant":             8,
}

// moveSpeed looks up the base speed by mount, or by the first skeleton of
// the soldier model, and scales it by the unit's move_speed_mod. Manifest
// overrides win over the built-in tables.
func (r *Resolver) moveSpeed(u raw.Unit, class raw.MountClass) float64 {
	return r.baseSpeed(u, class) * u.MoveSpeedMod
}

func (r *Resolver) baseSpeed(u raw.Unit, class raw.MountClass) float64 {
	if u.Mount != "" {
		if v, ok := r.override(u.Mount); ok {
			return v
		}
		if class != "" {
			if v, ok := r.override(string(class)); ok {
				return v
			}
			if v, ok := mountSpeeds[class]; ok {
				return v
			}
		}
		return defaultMountedSpeed
	}

	skeletons := r.skeletons[strings.ToLower(u.Soldier.Model)]
	if len(skeletons) == 0 {
		return defaultFootSpeed
	}
	first := strings.ToLower(skeletons[0])
	if v, ok := r.override(first); ok {
		return v
	}
	if v, ok := skeletonSpeeds[first]; ok {
		return v
	}
	return defaultFootSpeed
}

func (r *Resolver) override(key string) (float64, bool) {
	for k, v := range r.opts.SpeedOverrides {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return 0, false
}
