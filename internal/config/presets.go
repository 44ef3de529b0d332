package config

import "sort"

// Presets are full configurations keyed by name. GetPreset returns a copy,
// so callers may override fields freely.
var Presets = map[string]func() *Config{
	"classic": func() *Config {
		return DefaultConfig()
	},
	"cluster": func() *Config {
		c := DefaultConfig()
		c.Scenario.Count = 50
		c.Scenario.Seed = 42
		c.Run.Ticks = 2000
		c.Run.SampleEvery = 10
		return c
	},
	"drift": func() *Config {
		c := DefaultConfig()
		c.Scenario.Count = 8
		c.Scenario.InitialSpeed = 1.5
		return c
	},
	"heavy": func() *Config {
		c := DefaultConfig()
		c.Scenario.Count = 3
		c.Scenario.MassScale = 50
		c.Scenario.Spread = 600
		return c
	},
	"swarm": func() *Config {
		c := DefaultConfig()
		c.Scenario.Count = 400
		c.Scenario.Spread = 1200
		c.Physics.Workers = 4
		c.Run.Ticks = 500
		c.Run.SampleEvery = 25
		return c
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
