package dynamo

import (
	"fmt"
	"math"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Div(s float64) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v has zero length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Body is a point mass. Mass must be positive; the integrator divides by it.
type Body struct {
	Position Vec2
	Velocity Vec2
	Mass     float64
}

type Population []Body

func (p Population) Clone() Population {
	c := make(Population, len(p))
	copy(c, p)
	return c
}

// IsValid reports whether every position, velocity and mass is finite.
func (p Population) IsValid() bool {
	for _, b := range p {
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return false
		}
		if math.IsNaN(b.Mass) || math.IsInf(b.Mass, 0) {
			return false
		}
	}
	return true
}

// Validate checks the mass precondition of the integrator.
func (p Population) Validate() error {
	for i, b := range p {
		if !(b.Mass > 0) {
			return fmt.Errorf("body %d has mass %g: %w", i, b.Mass, ErrNonPositiveMass)
		}
	}
	return nil
}

func (p Population) TotalMass() float64 {
	m := 0.0
	for _, b := range p {
		m += b.Mass
	}
	return m
}
