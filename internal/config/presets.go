package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/threebody/internal/physics"
)

var earthMoonNames = [3]string{"earth", "moon", "spacecraft"}

var presets = map[string]func() *Config{
	"earth-moon": DefaultConfig,
	"leo-hour": func() *Config {
		return FromPhysics("leo-hour", physics.EarthMoon(3600, 1), earthMoonNames)
	},
	"lunar-month": func() *Config {
		cfg := FromPhysics("lunar-month", physics.EarthMoon(60, 43200), earthMoonNames)
		cfg.FrameMs = 5
		return cfg
	},
	"accretion": func() *Config {
		cfg := FromPhysics("accretion", physics.EarthMoon(10, 3000), earthMoonNames)
		cfg.MassDeltas = []float64{0, 0, 5}
		cfg.FrameMs = 10
		return cfg
	},
	"figure-eight": func() *Config {
		cfg := FromPhysics("figure-eight", physics.FigureEight(1e-3, 6300), [3]string{"a", "b", "c"})
		cfg.FrameMs = 5
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (*Config, error) {
	mk, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return mk(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
