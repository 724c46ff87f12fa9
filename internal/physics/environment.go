package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/ballistics/internal/dynamo"
)

const (
	DefaultGravity          = 9.81
	DefaultAirDensity       = 1.225
	DefaultDragCoefficient  = 0.4
	DefaultCrossSectionArea = 7e-5
)

// Environment holds the physical constants of one run. It is passed by
// value into every call; nothing in the package keeps global state.
type Environment struct {
	Gravity          float64 `yaml:"gravity" json:"gravity"`
	AirDensity       float64 `yaml:"air_density" json:"air_density"`
	DragCoefficient  float64 `yaml:"drag_coefficient" json:"drag_coefficient"`
	CrossSectionArea float64 `yaml:"cross_section_area" json:"cross_section_area"`
}

func DefaultEnvironment() Environment {
	return Environment{
		Gravity:          DefaultGravity,
		AirDensity:       DefaultAirDensity,
		DragCoefficient:  DefaultDragCoefficient,
		CrossSectionArea: DefaultCrossSectionArea,
	}
}

// Vacuum returns a copy of e with drag disabled.
func (e Environment) Vacuum() Environment {
	e.AirDensity = 0
	return e
}

// DragForce evaluates the drag model with e's constants.
func (e Environment) DragForce(speed float64) float64 {
	return DragForce(speed, e.AirDensity, e.DragCoefficient, e.CrossSectionArea)
}

// DragFree reports whether the drag term is identically zero.
func (e Environment) DragFree() bool {
	return e.AirDensity == 0 || e.DragCoefficient == 0 || e.CrossSectionArea == 0
}

func (e Environment) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"gravity", e.Gravity},
		{"air_density", e.AirDensity},
		{"drag_coefficient", e.DragCoefficient},
		{"cross_section_area", e.CrossSectionArea},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return dynamo.Invalid("%s must be finite and non-negative, got %g", f.name, f.value)
		}
	}
	return nil
}

func (e Environment) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":            e.Gravity,
		"air_density":        e.AirDensity,
		"drag_coefficient":   e.DragCoefficient,
		"cross_section_area": e.CrossSectionArea,
	}
}

func (e *Environment) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		e.Gravity = value
	case "air_density":
		e.AirDensity = value
	case "drag_coefficient":
		e.DragCoefficient = value
	case "cross_section_area":
		e.CrossSectionArea = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
