package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ballistics/internal/dynamo"
	"github.com/san-kum/ballistics/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Projectiles) != 5 {
		t.Errorf("expected 5 handguns, got %d", len(cfg.Projectiles))
	}
	if cfg.Solver.T1 != 20 || cfg.Solver.Samples != 1000 {
		t.Errorf("unexpected solver defaults: %+v", cfg.Solver)
	}
	if math.Abs(cfg.Angle()-math.Pi/4) > 1e-15 {
		t.Errorf("expected 45° default angle, got %g rad", cfg.Angle())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte(`
dimension: 3
angle_deg: 30
target:
  height: 75
environment:
  air_density: 0
solver:
  samples: 250
projectiles:
  - name: test round
    muzzle_velocity: 400
    mass: 0.01
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Dimension != 3 || cfg.AngleDeg != 30 || cfg.Target.Height != 75 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Environment.AirDensity != 0 || cfg.Environment.Gravity != physics.DefaultGravity {
		t.Errorf("environment not merged with defaults: %+v", cfg.Environment)
	}
	if cfg.Solver.Samples != 250 || cfg.Solver.T1 != 20 {
		t.Errorf("solver not merged with defaults: %+v", cfg.Solver)
	}
	if len(cfg.Projectiles) != 1 || cfg.Projectiles[0].Name != "test round" {
		t.Errorf("unexpected projectiles: %+v", cfg.Projectiles)
	}
}

func TestLoadKeepsHandgunsWhenUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("angle_deg: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Projectiles) != 5 {
		t.Errorf("expected default handguns, got %d projectiles", len(cfg.Projectiles))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := GetPreset("handguns_3d")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Dimension != 3 || loaded.Projectiles[3].MuzzleVelocity != 411 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RangeMethod = "level_ground"
	cfg.AzimuthDeg = 90

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opts.RangeMethod != physics.RangeLevelGround || opts.Dim != physics.Planar {
		t.Errorf("unexpected options: %+v", opts)
	}
	if math.Abs(opts.Azimuth-math.Pi/2) > 1e-15 {
		t.Errorf("azimuth = %g", opts.Azimuth)
	}

	cfg.RangeMethod = "bogus"
	if _, err := cfg.Options(); !errors.Is(err, dynamo.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad range method, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dimension = 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for dimension 1")
	}

	cfg = DefaultConfig()
	cfg.Projectiles = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty projectile list")
	}
}

func TestAngles(t *testing.T) {
	angles := DefaultConfig().Angles()
	if len(angles) != 100 || math.Abs(angles[0]+math.Pi) > 1e-12 || math.Abs(angles[99]-math.Pi) > 1e-12 {
		t.Errorf("unexpected sweep: %d angles from %g to %g", len(angles), angles[0], angles[len(angles)-1])
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("vacuum")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if !cfg.Environment.DragFree() {
		t.Error("vacuum preset should disable drag")
	}
	if DefaultConfig().Environment.DragFree() {
		t.Error("preset leaked into defaults")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
