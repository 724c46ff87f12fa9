package config

import (
	"sort"

	"github.com/san-kum/ballistics/internal/physics"
)

// Presets are named starting points; GetPreset returns a fresh copy built
// on DefaultConfig.
var Presets = map[string]func(*Config){
	"handguns": func(c *Config) {},
	"handguns_3d": func(c *Config) {
		c.Dimension = 3
	},
	"vacuum": func(c *Config) {
		c.Environment = c.Environment.Vacuum()
		c.Solver.T1 = 60
	},
	"downward": func(c *Config) {
		c.AngleDeg = -45
	},
	"sweep_full": func(c *Config) {
		c.Dimension = 3
		c.Sweep = SweepConfig{FromDeg: -180, ToDeg: 180, Count: 100}
	},
	"sweep_elevation": func(c *Config) {
		c.Sweep = SweepConfig{FromDeg: -90, ToDeg: 90, Count: 37}
	},
	"dense_air": func(c *Config) {
		c.Environment.AirDensity = 2 * physics.DefaultAirDensity
	},
	"precise": func(c *Config) {
		c.Solver.Tolerance = 1e-9
		c.Solver.AbsTolerance = 1e-12
		c.Solver.Samples = 4000
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
