// Package tuning defines the numeric parameters that shape scroll feel
// (fling velocity bounds, friction, spring constants, settle tolerances)
// and loads them from an optional yaml file so they can be adjusted
// without recompiling.
package tuning

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/kinetic/pkg/animation"
)

// Spec is a set of physics tuning parameters. The zero value of any field
// means "use the default"; Normalize fills defaults in.
type Spec struct {
	// MinFlingVelocity is the slowest release velocity, in logical pixels
	// per second, that still starts a fling. Slower releases stop dead.
	MinFlingVelocity float64 `yaml:"minFlingVelocity,omitempty"`
	// MaxFlingVelocity caps the velocity a fling may start with.
	MaxFlingVelocity float64 `yaml:"maxFlingVelocity,omitempty"`
	// FrictionDrag is the per-second drag coefficient of the fling
	// deceleration, in (0, 1). Smaller stops sooner.
	FrictionDrag float64 `yaml:"frictionDrag,omitempty"`
	// SpringMass, SpringStiffness and SpringDampingRatio describe the
	// spring that settles out-of-range positions.
	SpringMass         float64 `yaml:"springMass,omitempty"`
	SpringStiffness    float64 `yaml:"springStiffness,omitempty"`
	SpringDampingRatio float64 `yaml:"springDampingRatio,omitempty"`
	// ToleranceDistance and ToleranceVelocity are the settle thresholds.
	ToleranceDistance float64 `yaml:"toleranceDistance,omitempty"`
	ToleranceVelocity float64 `yaml:"toleranceVelocity,omitempty"`
	// OverscrollResistance scales how quickly drags stiffen while out of
	// range with bouncing physics; OverscrollResistanceFloor is the
	// minimum fraction of a drag that still gets through.
	OverscrollResistance      float64 `yaml:"overscrollResistance,omitempty"`
	OverscrollResistanceFloor float64 `yaml:"overscrollResistanceFloor,omitempty"`
}

// Default returns the stock tuning.
func Default() Spec {
	return Spec{
		MinFlingVelocity:          50,
		MaxFlingVelocity:          4500,
		FrictionDrag:              0.135,
		SpringMass:                0.5,
		SpringStiffness:           100,
		SpringDampingRatio:        1.1,
		ToleranceDistance:         animation.DefaultTolerance.Distance,
		ToleranceVelocity:         animation.DefaultTolerance.Velocity,
		OverscrollResistance:      2.4,
		OverscrollResistanceFloor: 0.12,
	}
}

// Normalize fills zero fields with defaults and returns the result.
func (s Spec) Normalize() Spec {
	d := Default()
	if s.MinFlingVelocity <= 0 {
		s.MinFlingVelocity = d.MinFlingVelocity
	}
	if s.MaxFlingVelocity <= 0 {
		s.MaxFlingVelocity = d.MaxFlingVelocity
	}
	if s.FrictionDrag <= 0 {
		s.FrictionDrag = d.FrictionDrag
	}
	if s.SpringMass <= 0 {
		s.SpringMass = d.SpringMass
	}
	if s.SpringStiffness <= 0 {
		s.SpringStiffness = d.SpringStiffness
	}
	if s.SpringDampingRatio <= 0 {
		s.SpringDampingRatio = d.SpringDampingRatio
	}
	if s.ToleranceDistance <= 0 {
		s.ToleranceDistance = d.ToleranceDistance
	}
	if s.ToleranceVelocity <= 0 {
		s.ToleranceVelocity = d.ToleranceVelocity
	}
	if s.OverscrollResistance <= 0 {
		s.OverscrollResistance = d.OverscrollResistance
	}
	if s.OverscrollResistanceFloor <= 0 {
		s.OverscrollResistanceFloor = d.OverscrollResistanceFloor
	}
	return s
}

// Validate reports whether the spec describes usable physics.
func (s Spec) Validate() error {
	if s.FrictionDrag <= 0 || s.FrictionDrag >= 1 {
		return fmt.Errorf("frictionDrag must be in (0, 1), got %g", s.FrictionDrag)
	}
	if s.MinFlingVelocity < 0 {
		return fmt.Errorf("minFlingVelocity must be non-negative, got %g", s.MinFlingVelocity)
	}
	if s.MaxFlingVelocity < s.MinFlingVelocity {
		return fmt.Errorf("maxFlingVelocity %g is below minFlingVelocity %g",
			s.MaxFlingVelocity, s.MinFlingVelocity)
	}
	if s.SpringMass <= 0 || s.SpringStiffness <= 0 {
		return fmt.Errorf("spring mass and stiffness must be positive, got %g and %g",
			s.SpringMass, s.SpringStiffness)
	}
	if s.OverscrollResistanceFloor > 1 {
		return fmt.Errorf("overscrollResistanceFloor must not exceed 1, got %g",
			s.OverscrollResistanceFloor)
	}
	return nil
}

// Spring returns the spring description the spec configures.
func (s Spec) Spring() animation.SpringDescription {
	return animation.SpringWithDampingRatio(s.SpringMass, s.SpringStiffness, s.SpringDampingRatio)
}

// Tolerance returns the settle tolerance the spec configures.
func (s Spec) Tolerance() animation.Tolerance {
	return animation.Tolerance{Distance: s.ToleranceDistance, Velocity: s.ToleranceVelocity}
}

// Load reads a tuning file if present. A missing file yields the default
// spec; a present but invalid file is an error.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Spec{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes, normalizes and validates a yaml tuning document.
func Parse(data []byte) (Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Spec{}, fmt.Errorf("failed to parse tuning spec: %w", err)
	}
	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}
