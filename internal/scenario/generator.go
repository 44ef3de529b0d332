// Package scenario builds the initial population from a seeded random
// stream. Generation is a pure function of its configuration.
package scenario

import (
	"math/rand"

	"github.com/san-kum/planets/internal/dynamo"
)

const (
	DefaultCount        = 5
	DefaultSeed         = 5
	DefaultSpread       = 400.0
	DefaultInitialSpeed = 0.0
	DefaultMassMin      = 100.0
	DefaultMassMax      = 1000.0
	DefaultMassScale    = 10.0
)

type Config struct {
	Count        int     `yaml:"count" json:"count"`
	Seed         int64   `yaml:"seed" json:"seed"`
	Spread       float64 `yaml:"spread" json:"spread"`
	InitialSpeed float64 `yaml:"initial_speed" json:"initial_speed"`
	MassMin      float64 `yaml:"mass_min" json:"mass_min"`
	MassMax      float64 `yaml:"mass_max" json:"mass_max"`
	MassScale    float64 `yaml:"mass_scale" json:"mass_scale"`
}

func DefaultConfig() Config {
	return Config{
		Count:        DefaultCount,
		Seed:         DefaultSeed,
		Spread:       DefaultSpread,
		InitialSpeed: DefaultInitialSpeed,
		MassMin:      DefaultMassMin,
		MassMax:      DefaultMassMax,
		MassScale:    DefaultMassScale,
	}
}

// Generate seeds a fresh generator from cfg.Seed and builds the population.
func Generate(cfg Config) dynamo.Population {
	return GenerateFrom(rand.New(rand.NewSource(cfg.Seed)), cfg)
}

// GenerateFrom builds cfg.Count bodies from rng. Per body the draws are
// consumed in a fixed order: position x, position y, direction x,
// direction y, mass. The direction is drawn even when InitialSpeed is zero
// so that later draws do not shift.
func GenerateFrom(rng *rand.Rand, cfg Config) dynamo.Population {
	if cfg.Count <= 0 {
		return dynamo.Population{}
	}

	pop := make(dynamo.Population, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		pos := dynamo.Vec2{X: symmetric(rng), Y: symmetric(rng)}.Scale(cfg.Spread)

		dir := dynamo.Vec2{X: symmetric(rng), Y: symmetric(rng)}
		vel := dir.Normalize().Scale(cfg.InitialSpeed)

		mass := rng.Float64()*(cfg.MassMax-cfg.MassMin) + cfg.MassMin

		pop = append(pop, dynamo.Body{
			Position: pos,
			Velocity: vel,
			Mass:     mass * cfg.MassScale,
		})
	}

	return pop
}

// symmetric draws uniformly from [-1, 1).
func symmetric(rng *rand.Rand) float64 {
	return 2*rng.Float64() - 1
}
