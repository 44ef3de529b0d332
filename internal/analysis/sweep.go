package analysis

import (
	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/physics"
)

type SweepPoint struct {
	G      float64
	Spread float64
}

// SweepG steps a copy of pop for ticks under each of steps evenly spaced
// values of G in [gMin, gMax] and records the final spread. Other gravity
// settings are taken from base.
func SweepG(base *physics.Gravity, pop dynamo.Population, gMin, gMax float64, steps, ticks int) []SweepPoint {
	if steps <= 0 {
		return nil
	}

	points := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		g := gMin
		if steps > 1 {
			g = gMin + (gMax-gMin)*float64(i)/float64(steps-1)
		}

		grav := *base
		grav.G = g

		p := pop.Clone()
		for t := 0; t < ticks; t++ {
			grav.Step(p)
		}
		points = append(points, SweepPoint{G: g, Spread: Spread(&grav, p)})
	}
	return points
}

// Spread is the largest distance of any body from the center of mass.
func Spread(g *physics.Gravity, pop dynamo.Population) float64 {
	com := g.CenterOfMass(pop)
	spread := 0.0
	for _, b := range pop {
		if d := b.Position.Sub(com).Len(); d > spread {
			spread = d
		}
	}
	return spread
}
