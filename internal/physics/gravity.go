package physics

import (
	"math"

	"github.com/san-kum/planets/internal/dynamo"
)

const (
	// DefaultG is the gravitational coefficient. It is tuned for visual
	// scale, not calibrated to physical units.
	DefaultG = 0.0006

	// DefaultMinDistance floors pair distances so coincident bodies feel a
	// finite force.
	DefaultMinDistance = 1.0

	// ParallelThreshold is the smallest population the parallel pass is
	// used for. Below it goroutine overhead dominates.
	ParallelThreshold = 64
)

type Gravity struct {
	G           float64
	MinDistance float64
	Workers     int
}

func NewGravity() *Gravity {
	return &Gravity{
		G:           DefaultG,
		MinDistance: DefaultMinDistance,
		Workers:     1,
	}
}

// Step advances pop by exactly one tick in place. Mass is never modified.
func (g *Gravity) Step(pop dynamo.Population) {
	n := len(pop)
	if n < 2 {
		return
	}

	if g.Workers > 1 && n >= ParallelThreshold {
		g.stepParallel(pop)
		return
	}

	for i := 0; i < n; i++ {
		pi := pop[i].Position
		mi := pop[i].Mass

		for j := i + 1; j < n; j++ {
			f := g.pairForce(pi, pop[j].Position, mi, pop[j].Mass)
			pop[i].Velocity = pop[i].Velocity.Add(f.Div(mi))
			pop[j].Velocity = pop[j].Velocity.Sub(f.Div(pop[j].Mass))
		}
	}

	for i := range pop {
		pop[i].Position = pop[i].Position.Add(pop[i].Velocity)
	}
}

// stepParallel partitions bodies across workers. Each worker owns the
// velocities of its range and evaluates the full row of every body in it,
// so no velocity is written by two goroutines. Positions are read from a
// snapshot taken before the velocity pass.
func (g *Gravity) stepParallel(pop dynamo.Population) {
	n := len(pop)
	snapshot := make([]dynamo.Vec2, n)
	for i := range pop {
		snapshot[i] = pop[i].Position
	}

	dynamo.ParallelFor(n, g.Workers, ParallelThreshold/4, func(start, end int) {
		for i := start; i < end; i++ {
			mi := pop[i].Mass
			dv := dynamo.Vec2{}
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				f := g.pairForce(snapshot[i], snapshot[j], mi, pop[j].Mass)
				dv = dv.Add(f)
			}
			pop[i].Velocity = pop[i].Velocity.Add(dv.Div(mi))
		}
	})

	dynamo.ParallelFor(n, g.Workers, ParallelThreshold/4, func(start, end int) {
		for i := start; i < end; i++ {
			pop[i].Position = pop[i].Position.Add(pop[i].Velocity)
		}
	})
}

// pairForce returns the force on the body at a exerted by the body at b.
func (g *Gravity) pairForce(a, b dynamo.Vec2, ma, mb float64) dynamo.Vec2 {
	d := b.Sub(a)
	r := math.Max(d.Len(), g.MinDistance)
	return d.Div(r).Scale(g.G * ma * mb / r)
}

// Force exposes the pairwise law for callers inspecting a single pair.
func (g *Gravity) Force(a, b dynamo.Body) dynamo.Vec2 {
	return g.pairForce(a.Position, b.Position, a.Mass, b.Mass)
}
