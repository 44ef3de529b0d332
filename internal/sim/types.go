package sim

import "github.com/san-kum/planets/internal/dynamo"

// Stepper advances a population by one tick in place.
type Stepper interface {
	Step(pop dynamo.Population)
}

type Metric interface {
	Name() string
	Observe(pop dynamo.Population, tick int)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(pop dynamo.Population, tick int)
}

type Config struct {
	Ticks         int
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:         1000,
		SampleEvery:   1,
		ValidateState: true,
	}
}

// Result holds sampled snapshots. Snapshots[k] is the population after
// Ticks[k] ticks; the first entry is the initial state.
type Result struct {
	Snapshots  []dynamo.Population
	Ticks      []int
	Metrics    map[string]float64
	TicksTaken int
}
