package main

import (
	"testing"

	"github.com/san-kum/planets/internal/config"
	"github.com/spf13/cobra"
)

func scenarioCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "run"}
	addScenarioFlags(cmd)
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set --%s: %v", name, err)
		}
	}
	return cmd
}

func TestResolveConfigPresetAndConfigExclusive(t *testing.T) {
	name := config.ListPresets()[0]
	cmd := scenarioCommand(t, map[string]string{
		"preset": name,
		"config": "planets.yaml",
	})

	if err := cmd.ValidateFlagGroups(); err == nil {
		t.Error("expected flag group validation to reject --preset with --config")
	}
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected resolveConfig to reject --preset with --config")
	}
}

func TestResolveConfigPresetWithOverrides(t *testing.T) {
	name := config.ListPresets()[0]
	cmd := scenarioCommand(t, map[string]string{
		"preset": name,
		"seed":   "99",
	})

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	want := config.GetPreset(name)
	if cfg.Scenario.Count != want.Scenario.Count {
		t.Errorf("bodies = %d, want preset value %d", cfg.Scenario.Count, want.Scenario.Count)
	}
	if cfg.Scenario.Seed != 99 {
		t.Errorf("seed = %d, want flag value 99", cfg.Scenario.Seed)
	}
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	cmd := scenarioCommand(t, map[string]string{"preset": "no-such-preset"})
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
}
