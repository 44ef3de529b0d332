package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/planets/internal/analysis"
	"github.com/san-kum/planets/internal/config"
	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/metrics"
	"github.com/san-kum/planets/internal/scenario"
	"github.com/san-kum/planets/internal/sim"
	"github.com/san-kum/planets/internal/storage"
)

// Batch is a scripted sequence of runs.
type Batch struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step starts from a preset (classic when empty) and overrides the
// non-zero fields.
type Step struct {
	Name         string  `yaml:"name"`
	Preset       string  `yaml:"preset"`
	Bodies       int     `yaml:"bodies"`
	Seed         int64   `yaml:"seed"`
	Ticks        int     `yaml:"ticks"`
	SampleEvery  int     `yaml:"sample_every"`
	InitialSpeed float64 `yaml:"initial_speed"`
	G            float64 `yaml:"g"`
	Workers      int     `yaml:"workers"`
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &b, nil
}

// Config resolves the step into a validated run configuration.
func (s Step) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = "classic"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if s.Bodies != 0 {
		cfg.Scenario.Count = s.Bodies
	}
	if s.Seed != 0 {
		cfg.Scenario.Seed = s.Seed
	}
	if s.Ticks != 0 {
		cfg.Run.Ticks = s.Ticks
	}
	if s.SampleEvery != 0 {
		cfg.Run.SampleEvery = s.SampleEvery
	}
	if s.InitialSpeed != 0 {
		cfg.Scenario.InitialSpeed = s.InitialSpeed
	}
	if s.G != 0 {
		cfg.Physics.G = s.G
	}
	if s.Workers != 0 {
		cfg.Physics.Workers = s.Workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute generates the configured scenario, runs it with the default
// metrics and saves it. It returns the run ID and the result.
func Execute(ctx context.Context, cfg *config.Config, preset string, st *storage.Store, observers ...sim.Observer) (string, *sim.Result, error) {
	g := cfg.NewGravity()
	pop := scenario.Generate(cfg.Scenario)

	s := sim.New(g)
	for _, m := range metrics.Defaults(g) {
		s.AddMetric(m)
	}
	for _, o := range observers {
		s.AddObserver(o)
	}

	result, err := s.Run(ctx, pop, cfg.SimConfig())
	if err != nil {
		return "", result, err
	}

	runID, err := st.Save(storage.RunMetadata{
		Preset:      preset,
		Seed:        cfg.Scenario.Seed,
		Ticks:       cfg.Run.Ticks,
		SampleEvery: cfg.Run.SampleEvery,
		G:           g.G,
		MinDistance: g.MinDistance,
		Workers:     g.Workers,
	}, result)
	if err != nil {
		return "", result, err
	}
	return runID, result, nil
}

// RunBatch executes every step in order and returns the saved run IDs.
// Progress lines go to out.
func RunBatch(ctx context.Context, b *Batch, st *storage.Store, out io.Writer) ([]string, error) {
	if err := st.Init(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(b.Steps))
	for i, step := range b.Steps {
		label := step.Name
		if label == "" {
			label = step.Preset
		}
		fmt.Fprintf(out, "running step %d/%d: %s\n", i+1, len(b.Steps), label)

		cfg, err := step.Config()
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}

		runID, _, err := Execute(ctx, cfg, step.Preset, st)
		if err != nil {
			return ids, fmt.Errorf("step %d run: %w", i+1, err)
		}
		ids = append(ids, runID)
	}
	return ids, nil
}

// Progress writes a line every Every ticks.
type Progress struct {
	Out   io.Writer
	Every int
	Total int
}

func (p *Progress) OnTick(pop dynamo.Population, tick int) {
	if p.Every <= 0 || tick%p.Every != 0 {
		return
	}
	fmt.Fprintf(p.Out, "tick %d/%d\n", tick, p.Total)
}

type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	Trials       int
	Seed         int64
	Radius       float64
}

type MonteCarloResult struct {
	Trial  int
	Spread float64
	Stable bool
}

// RunMonteCarlo perturbs the base scenario's positions uniformly by up to
// Perturbation per axis and reports whether each trial stays within Radius
// of its center of mass. A trial stops at the first tick it escapes.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, out io.Writer) ([]MonteCarloResult, error) {
	if cfg.Base == nil {
		cfg.Base = config.DefaultConfig()
	}
	radius := cfg.Radius
	if radius <= 0 {
		radius = metrics.DefaultStabilityRadius
	}

	base := scenario.Generate(cfg.Base.Scenario)
	rng := rand.New(rand.NewSource(cfg.Seed))
	simCfg := cfg.Base.SimConfig()
	simCfg.ValidateState = false

	results := make([]MonteCarloResult, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		pop := base.Clone()
		for i := range pop {
			pop[i].Position.X += (rng.Float64()*2 - 1) * cfg.Perturbation
			pop[i].Position.Y += (rng.Float64()*2 - 1) * cfg.Perturbation
		}

		g := cfg.Base.NewGravity()
		escaped := false
		err := sim.New(g).RunWithCallback(ctx, pop, simCfg, func(p dynamo.Population, tick int) bool {
			escaped = !p.IsValid() || analysis.Spread(g, p) > radius
			return !escaped
		})
		if err != nil {
			return results, err
		}
		if !escaped {
			escaped = !pop.IsValid() || analysis.Spread(g, pop) > radius
		}

		results = append(results, MonteCarloResult{
			Trial:  trial,
			Spread: analysis.Spread(g, pop),
			Stable: !escaped,
		})

		if out != nil && (trial+1)%10 == 0 {
			fmt.Fprintf(out, "monte carlo: %d/%d trials complete\n", trial+1, cfg.Trials)
		}
	}
	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stable, unstable int) {
	for _, r := range results {
		if r.Stable {
			stable++
		} else {
			unstable++
		}
	}
	return
}
