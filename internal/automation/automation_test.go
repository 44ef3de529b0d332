package automation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/planets/internal/config"
	"github.com/san-kum/planets/internal/storage"
)

const batchYAML = `name: smoke
description: two short runs
steps:
  - name: small
    bodies: 3
    ticks: 20
  - preset: drift
    seed: 9
    ticks: 10
    sample_every: 5
`

func writeBatch(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(batchYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBatch(t *testing.T) {
	b, err := LoadBatch(writeBatch(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.Name != "smoke" || len(b.Steps) != 2 {
		t.Fatalf("unexpected batch %+v", b)
	}
	if b.Steps[1].Preset != "drift" || b.Steps[1].SampleEvery != 5 {
		t.Errorf("unexpected step %+v", b.Steps[1])
	}

	if _, err := LoadBatch(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStepConfig(t *testing.T) {
	cfg, err := Step{Preset: "drift", Bodies: 4, Seed: 11, G: 0.001}.Config()
	if err != nil {
		t.Fatal(err)
	}
	drift := config.GetPreset("drift")
	if cfg.Scenario.Count != 4 || cfg.Scenario.Seed != 11 || cfg.Physics.G != 0.001 {
		t.Errorf("overrides not applied: %+v", cfg.Scenario)
	}
	if cfg.Scenario.InitialSpeed != drift.Scenario.InitialSpeed {
		t.Errorf("expected preset speed %v, got %v", drift.Scenario.InitialSpeed, cfg.Scenario.InitialSpeed)
	}

	if _, err := (Step{Preset: "nope"}).Config(); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := (Step{Bodies: -1}).Config(); err == nil {
		t.Error("expected validation error for negative body count")
	}
}

func TestRunBatch(t *testing.T) {
	b, err := LoadBatch(writeBatch(t))
	if err != nil {
		t.Fatal(err)
	}
	st := storage.New(t.TempDir())

	var out bytes.Buffer
	ids, err := RunBatch(context.Background(), b, st, &out)
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 run ids, got %d", len(ids))
	}
	if !strings.Contains(out.String(), "step 2/2") {
		t.Errorf("expected progress output, got %q", out.String())
	}

	meta, err := st.Load(ids[1])
	if err != nil {
		t.Fatal(err)
	}
	if meta.Preset != "drift" || meta.Seed != 9 || meta.Ticks != 10 {
		t.Errorf("unexpected metadata %+v", meta)
	}

	snaps, ticks, err := st.LoadSnapshots(ids[1])
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 3 || ticks[len(ticks)-1] != 10 {
		t.Errorf("expected samples at 0,5,10, got %v", ticks)
	}
}

func TestRunMonteCarloDeterministic(t *testing.T) {
	base := config.DefaultConfig()
	base.Scenario.Count = 3
	base.Run.Ticks = 50

	run := func() []MonteCarloResult {
		res, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{
			Base:         base,
			Perturbation: 5,
			Trials:       4,
			Seed:         7,
		}, nil)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a, b := run(), run()
	if len(a) != 4 {
		t.Fatalf("expected 4 trials, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("trial %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}

	stable, unstable := MonteCarloStats(a)
	if stable+unstable != 4 {
		t.Errorf("expected 4 classified trials, got %d", stable+unstable)
	}
}

func TestExecuteReportsProgress(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Run.Ticks = 30
	cfg.Run.SampleEvery = 10

	var out bytes.Buffer
	runID, result, err := Execute(context.Background(), cfg, "", storage.New(t.TempDir()),
		&Progress{Out: &out, Every: 10, Total: cfg.Run.Ticks})
	if err != nil {
		t.Fatal(err)
	}
	if runID == "" || result.TicksTaken != 30 {
		t.Errorf("unexpected run %q with %d ticks", runID, result.TicksTaken)
	}
	if got := strings.Count(out.String(), "\n"); got != 3 {
		t.Errorf("expected 3 progress lines, got %d: %q", got, out.String())
	}
	if !strings.Contains(out.String(), "tick 30/30") {
		t.Errorf("expected final progress line, got %q", out.String())
	}
}

func TestRunMonteCarloDetectsEscape(t *testing.T) {
	base := config.DefaultConfig()
	base.Scenario.Count = 5
	base.Scenario.InitialSpeed = 50
	base.Run.Ticks = 200

	res, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{
		Base:   base,
		Trials: 2,
		Seed:   1,
		Radius: 1000,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range res {
		if r.Stable {
			t.Errorf("trial %d should escape at speed 50, spread %v", r.Trial, r.Spread)
		}
	}
}

func TestMonteCarloStats(t *testing.T) {
	stable, unstable := MonteCarloStats([]MonteCarloResult{
		{Stable: true}, {Stable: false}, {Stable: true},
	})
	if stable != 2 || unstable != 1 {
		t.Errorf("expected 2/1, got %d/%d", stable, unstable)
	}
}
