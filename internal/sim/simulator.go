package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/planets/internal/dynamo"
)

type Simulator struct {
	stepper   Stepper
	metrics   []Metric
	observers []Observer
	validate  bool
	tick      int
}

func New(stepper Stepper) *Simulator {
	return &Simulator{
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetValidate turns on the NaN/Inf check after every tick.
func (s *Simulator) SetValidate(v bool) { s.validate = v }

// TickCount returns how many ticks have been applied since the last Reset.
func (s *Simulator) TickCount() int { return s.tick }

// Reset zeroes the tick counter and all metrics.
func (s *Simulator) Reset() {
	s.tick = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Tick applies exactly one step to pop and notifies metrics and observers.
func (s *Simulator) Tick(pop dynamo.Population) error {
	s.stepper.Step(pop)
	s.tick++

	if s.validate && !pop.IsValid() {
		return &dynamo.SimulationError{Tick: s.tick, Wrapped: dynamo.ErrInvalidState}
	}

	for _, m := range s.metrics {
		m.Observe(pop, s.tick)
	}
	for _, obs := range s.observers {
		obs.OnTick(pop, s.tick)
	}
	return nil
}

// Run resets the simulator and advances pop by cfg.Ticks ticks in place.
// Cancellation is checked between ticks. On error the partial result is
// returned alongside it.
func (s *Simulator) Run(ctx context.Context, pop dynamo.Population, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.ValidateState {
		if err := pop.Validate(); err != nil {
			return nil, err
		}
	}

	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	samples := cfg.Ticks/every + 1
	result := &Result{
		Snapshots: make([]dynamo.Population, 0, samples),
		Ticks:     make([]int, 0, samples),
		Metrics:   make(map[string]float64),
	}

	s.Reset()
	s.validate = cfg.ValidateState

	result.Snapshots = append(result.Snapshots, pop.Clone())
	result.Ticks = append(result.Ticks, 0)

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		if err := s.Tick(pop); err != nil {
			s.collect(result)
			return result, err
		}
		result.TicksTaken++

		if s.tick%every == 0 || i == cfg.Ticks-1 {
			result.Snapshots = append(result.Snapshots, pop.Clone())
			result.Ticks = append(result.Ticks, s.tick)
		}
	}

	s.collect(result)
	return result, nil
}

// RunWithCallback steps pop until cfg.Ticks is reached or callback returns
// false. The callback sees the population before each tick.
func (s *Simulator) RunWithCallback(ctx context.Context, pop dynamo.Population, cfg Config, callback func(dynamo.Population, int) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	s.Reset()
	s.validate = cfg.ValidateState

	for s.tick < cfg.Ticks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(pop, s.tick) {
			return nil
		}

		if err := s.Tick(pop); err != nil {
			return err
		}
	}

	return nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d: %w", cfg.Ticks, dynamo.ErrInvalidConfig)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample interval must not be negative, got %d: %w", cfg.SampleEvery, dynamo.ErrInvalidConfig)
	}
	return nil
}
