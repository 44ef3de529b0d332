package physics

import (
	"math"

	"github.com/san-kum/planets/internal/dynamo"
)

// Energy returns kinetic plus pairwise potential energy. The force has
// magnitude G*mi*mj/r, so the potential is G*mi*mj*ln(r). Inside
// MinDistance the force is linear in |d| and the potential is the matching
// harmonic well, continuous with ln at the floor.
func (g *Gravity) Energy(pop dynamo.Population) float64 {
	ke := 0.0
	pe := 0.0

	for i := range pop {
		v := pop[i].Velocity
		ke += 0.5 * pop[i].Mass * (v.X*v.X + v.Y*v.Y)

		for j := i + 1; j < len(pop); j++ {
			d := pop[j].Position.Sub(pop[i].Position).Len()
			pe += g.G * pop[i].Mass * pop[j].Mass * g.pairPotential(d)
		}
	}

	return ke + pe
}

// pairPotential is the potential per unit G*mi*mj at distance d.
func (g *Gravity) pairPotential(d float64) float64 {
	if d >= g.MinDistance {
		return math.Log(d)
	}
	q := d / g.MinDistance
	return math.Log(g.MinDistance) + (q*q-1)/2
}

func (g *Gravity) Momentum(pop dynamo.Population) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range pop {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

func (g *Gravity) CenterOfMass(pop dynamo.Population) dynamo.Vec2 {
	total := pop.TotalMass()
	if total == 0 {
		return dynamo.Vec2{}
	}
	var c dynamo.Vec2
	for _, b := range pop {
		c = c.Add(b.Position.Scale(b.Mass))
	}
	return c.Div(total)
}
