package metrics

import (
	"math"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/physics"
)

// Momentum tracks the peak magnitude of total linear momentum. With pairwise
// equal and opposite impulses it stays at its initial value up to rounding.
type Momentum struct {
	gravity *physics.Gravity
	peak    float64
}

func NewMomentum(g *physics.Gravity) *Momentum {
	return &Momentum{gravity: g}
}

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(pop dynamo.Population, tick int) {
	m.peak = math.Max(m.peak, m.gravity.Momentum(pop).Len())
}

func (m *Momentum) Value() float64 { return m.peak }

func (m *Momentum) Reset() { m.peak = 0 }
