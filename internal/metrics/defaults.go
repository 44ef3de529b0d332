package metrics

import (
	"github.com/san-kum/planets/internal/physics"
	"github.com/san-kum/planets/internal/sim"
)

// DefaultStabilityRadius is several scenario spreads out; bodies beyond it
// are treated as ejected.
const DefaultStabilityRadius = 4000.0

// Defaults returns a fresh metric set for one run.
func Defaults(g *physics.Gravity) []sim.Metric {
	return []sim.Metric{
		NewEnergy(g),
		NewEnergyDrift(g),
		NewMomentum(g),
		NewStability(DefaultStabilityRadius),
	}
}
