package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballistics/internal/dynamo"
	"github.com/san-kum/ballistics/internal/physics"
	"github.com/san-kum/ballistics/internal/sim"
)

const (
	DefaultDimension      = 2
	DefaultAngleDeg       = 45.0
	DefaultTargetHeight   = 50.0
	DefaultTargetDistance = 1546.0
)

type Config struct {
	Dimension   int                 `yaml:"dimension"`
	AngleDeg    float64             `yaml:"angle_deg"`
	AzimuthDeg  float64             `yaml:"azimuth_deg"`
	Sweep       SweepConfig         `yaml:"sweep"`
	Target      sim.Target          `yaml:"target"`
	Environment physics.Environment `yaml:"environment"`
	Solver      dynamo.SolverConfig `yaml:"solver"`
	RangeMethod string              `yaml:"range_method"`
	Workers     int                 `yaml:"workers"`
	Projectiles []sim.Projectile    `yaml:"projectiles"`
}

// SweepConfig describes Count launch angles from FromDeg to ToDeg.
type SweepConfig struct {
	FromDeg float64 `yaml:"from_deg"`
	ToDeg   float64 `yaml:"to_deg"`
	Count   int     `yaml:"count"`
}

// Handguns are the reference projectiles used when no list is given.
func Handguns() []sim.Projectile {
	return []sim.Projectile{
		{Name: "Glock 17", MuzzleVelocity: 343, Mass: 0.00745},
		{Name: "Smith & Wesson M&P Shield", MuzzleVelocity: 300, Mass: 0.01166},
		{Name: "Colt 1911", MuzzleVelocity: 259, Mass: 0.0149},
		{Name: "SIG Sauer P226", MuzzleVelocity: 411, Mass: 0.00804},
		{Name: "Ruger LCP II", MuzzleVelocity: 290, Mass: 0.00583},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Dimension: DefaultDimension,
		AngleDeg:  DefaultAngleDeg,
		Sweep: SweepConfig{
			FromDeg: -180,
			ToDeg:   180,
			Count:   100,
		},
		Target: sim.Target{
			Height:   DefaultTargetHeight,
			Distance: DefaultTargetDistance,
		},
		Environment: physics.DefaultEnvironment(),
		Solver:      dynamo.DefaultSolverConfig(),
		RangeMethod: string(physics.RangeTimeOfFlight),
		Projectiles: Handguns(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Projectiles = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.Projectiles) == 0 {
		cfg.Projectiles = Handguns()
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options converts the file settings into runner options.
func (c *Config) Options() (sim.Options, error) {
	method, err := physics.ParseRangeMethod(c.RangeMethod)
	if err != nil {
		return sim.Options{}, dynamo.Invalid("%v", err)
	}
	opts := sim.Options{
		Dim:         physics.Dimension(c.Dimension),
		Solver:      c.Solver,
		RangeMethod: method,
		Azimuth:     sim.Radians(c.AzimuthDeg),
		Workers:     c.Workers,
	}
	return opts, opts.Validate()
}

func (c *Config) Angle() float64 {
	return sim.Radians(c.AngleDeg)
}

func (c *Config) Angles() []float64 {
	return sim.Linspace(sim.Radians(c.Sweep.FromDeg), sim.Radians(c.Sweep.ToDeg), c.Sweep.Count)
}

func (c *Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}
	if err := c.Target.Validate(); err != nil {
		return err
	}
	if err := c.Environment.Validate(); err != nil {
		return err
	}
	if len(c.Projectiles) == 0 {
		return dynamo.Invalid("no projectiles configured")
	}
	return nil
}
