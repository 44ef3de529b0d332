package sim

import (
	"context"
	"sync"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/scenario"
)

// Ensemble runs the same scenario under consecutive seeds concurrently.
// Every run gets its own stepper, metrics and population.
type Ensemble struct {
	scenario   scenario.Config
	numRuns    int
	seedStart  int64
	newStepper func() Stepper
	newMetrics func() []Metric
}

func NewEnsemble(sc scenario.Config, numRuns int, seedStart int64, newStepper func() Stepper, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{
		scenario:   sc,
		numRuns:    numRuns,
		seedStart:  seedStart,
		newStepper: newStepper,
		newMetrics: newMetrics,
	}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sc := e.scenario
			sc.Seed = e.seedStart + int64(idx)
			pop := scenario.Generate(sc)

			s := New(e.newStepper())
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, pop, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Seeds returns the seed each run index used.
func (e *Ensemble) Seeds() []int64 {
	seeds := make([]int64, e.numRuns)
	for i := range seeds {
		seeds[i] = e.seedStart + int64(i)
	}
	return seeds
}

var _ Stepper = stepFunc(nil)

// stepFunc adapts a plain function to Stepper.
type stepFunc func(dynamo.Population)

func (f stepFunc) Step(pop dynamo.Population) { f(pop) }

// StepperFunc wraps fn as a Stepper.
func StepperFunc(fn func(dynamo.Population)) Stepper { return stepFunc(fn) }
