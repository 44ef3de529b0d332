package analysis

import (
	"math"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/physics"
)

// LyapunovExponent estimates the largest Lyapunov exponent per tick by
// trajectory separation: body 0 of a copy is displaced along x by
// perturbation, both copies are stepped, and the separation in phase
// space is renormalized back to perturbation every tick.
//
// pop is not modified.
func LyapunovExponent(g *physics.Gravity, pop dynamo.Population, ticks int, perturbation float64) float64 {
	if len(pop) == 0 || ticks <= 0 || perturbation <= 0 {
		return 0
	}

	a := pop.Clone()
	b := pop.Clone()
	b[0].Position.X += perturbation

	sumLog := 0.0
	count := 0

	for t := 0; t < ticks; t++ {
		g.Step(a)
		g.Step(b)

		sep := separation(a, b)
		if !(sep > 0) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / perturbation)
		count++

		scale := perturbation / sep
		for i := range b {
			b[i].Position = a[i].Position.Add(b[i].Position.Sub(a[i].Position).Scale(scale))
			b[i].Velocity = a[i].Velocity.Add(b[i].Velocity.Sub(a[i].Velocity).Scale(scale))
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / float64(count)
}

func separation(a, b dynamo.Population) float64 {
	sum := 0.0
	for i := range a {
		dp := b[i].Position.Sub(a[i].Position)
		dv := b[i].Velocity.Sub(a[i].Velocity)
		sum += dp.X*dp.X + dp.Y*dp.Y + dv.X*dv.X + dv.Y*dv.Y
	}
	return math.Sqrt(sum)
}
