package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/physics"
	"github.com/san-kum/planets/internal/scenario"
	"github.com/san-kum/planets/internal/sim"
)

const (
	DefaultFPS         = 60
	DefaultTrailLength = 64
	DefaultAddr        = ":8080"
)

type Config struct {
	Scenario scenario.Config `yaml:"scenario"`
	Physics  PhysicsConfig   `yaml:"physics"`
	Run      RunConfig       `yaml:"run"`
	Live     LiveConfig      `yaml:"live"`
	Stream   StreamConfig    `yaml:"stream"`
}

type PhysicsConfig struct {
	G           float64 `yaml:"g"`
	MinDistance float64 `yaml:"min_distance"`
	Workers     int     `yaml:"workers"`
}

type RunConfig struct {
	Ticks       int  `yaml:"ticks"`
	SampleEvery int  `yaml:"sample_every"`
	Validate    bool `yaml:"validate"`
}

type LiveConfig struct {
	FPS         int `yaml:"fps"`
	TrailLength int `yaml:"trail_length"`
}

type StreamConfig struct {
	Addr string `yaml:"addr"`
	FPS  int    `yaml:"fps"`
}

func DefaultConfig() *Config {
	run := sim.DefaultConfig()
	return &Config{
		Scenario: scenario.DefaultConfig(),
		Physics: PhysicsConfig{
			G:           physics.DefaultG,
			MinDistance: physics.DefaultMinDistance,
			Workers:     1,
		},
		Run: RunConfig{
			Ticks:       run.Ticks,
			SampleEvery: run.SampleEvery,
			Validate:    run.ValidateState,
		},
		Live: LiveConfig{
			FPS:         DefaultFPS,
			TrailLength: DefaultTrailLength,
		},
		Stream: StreamConfig{
			Addr: DefaultAddr,
			FPS:  DefaultFPS,
		},
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Scenario.Count < 0:
		return fmt.Errorf("scenario.count must not be negative: %w", dynamo.ErrInvalidConfig)
	case c.Scenario.MassMin <= 0 || c.Scenario.MassMax < c.Scenario.MassMin:
		return fmt.Errorf("scenario mass range [%g, %g] must be positive and ordered: %w",
			c.Scenario.MassMin, c.Scenario.MassMax, dynamo.ErrInvalidConfig)
	case c.Scenario.MassScale <= 0:
		return fmt.Errorf("scenario.mass_scale must be positive: %w", dynamo.ErrInvalidConfig)
	case c.Physics.MinDistance <= 0:
		return fmt.Errorf("physics.min_distance must be positive: %w", dynamo.ErrInvalidConfig)
	case c.Physics.Workers < 1:
		return fmt.Errorf("physics.workers must be at least 1: %w", dynamo.ErrInvalidConfig)
	case c.Run.Ticks <= 0:
		return fmt.Errorf("run.ticks must be positive: %w", dynamo.ErrInvalidConfig)
	}
	return nil
}

func (c *Config) NewGravity() *physics.Gravity {
	g := physics.NewGravity()
	g.G = c.Physics.G
	g.MinDistance = c.Physics.MinDistance
	g.Workers = c.Physics.Workers
	return g
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Ticks:         c.Run.Ticks,
		SampleEvery:   c.Run.SampleEvery,
		ValidateState: c.Run.Validate,
	}
}
