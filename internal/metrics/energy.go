package metrics

import (
	"math"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/physics"
)

// Energy reports the mean total energy over the observed ticks.
type Energy struct {
	name        string
	gravity     *physics.Gravity
	samples     int
	totalEnergy float64
}

func NewEnergy(g *physics.Gravity) *Energy {
	return &Energy{name: "energy", gravity: g}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(pop dynamo.Population, tick int) {
	e.totalEnergy += e.gravity.Energy(pop)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative deviation from the energy seen
// on the first observed tick.
type EnergyDrift struct {
	name          string
	gravity       *physics.Gravity
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(g *physics.Gravity) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", gravity: g}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(pop dynamo.Population, tick int) {
	energy := e.gravity.Energy(pop)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
