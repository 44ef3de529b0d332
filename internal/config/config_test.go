package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/physics"
	"github.com/san-kum/planets/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario.Count != 5 {
		t.Errorf("expected 5 bodies, got %d", cfg.Scenario.Count)
	}
	if cfg.Scenario.Seed != 5 {
		t.Errorf("expected seed 5, got %d", cfg.Scenario.Seed)
	}
	if cfg.Physics.G != physics.DefaultG {
		t.Errorf("expected G %v, got %v", physics.DefaultG, cfg.Physics.G)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("scenario:\n  count: 12\n  seed: 77\nrun:\n  ticks: 300\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Scenario.Count != 12 || cfg.Scenario.Seed != 77 {
		t.Errorf("scenario not loaded: %+v", cfg.Scenario)
	}
	if cfg.Run.Ticks != 300 {
		t.Errorf("expected 300 ticks, got %d", cfg.Run.Ticks)
	}
	if cfg.Scenario.Spread != 400 {
		t.Errorf("omitted spread should keep default, got %v", cfg.Scenario.Spread)
	}
	if cfg.Physics.MinDistance != 1.0 {
		t.Errorf("omitted min_distance should keep default, got %v", cfg.Physics.MinDistance)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"zero mass", "scenario:\n  mass_min: 0\n"},
		{"no workers", "physics:\n  workers: 0\n"},
		{"no ticks", "run:\n  ticks: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("cluster")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("cluster")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scenario.Count != 50 {
		t.Errorf("expected 50 bodies, got %d", cfg.Scenario.Count)
	}

	cfg.Scenario.Count = 1
	if GetPreset("cluster").Scenario.Count != 50 {
		t.Error("GetPreset returned shared state")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestNewGravity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physics.Workers = 3
	g := cfg.NewGravity()
	if g.G != physics.DefaultG || g.MinDistance != physics.DefaultMinDistance || g.Workers != 3 {
		t.Errorf("gravity not built from config: %+v", g)
	}
	sc := cfg.SimConfig()
	if sc.Ticks != sim.DefaultConfig().Ticks || !sc.ValidateState {
		t.Errorf("sim config not built from config: %+v", sc)
	}
}
