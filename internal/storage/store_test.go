package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Snapshots: []dynamo.Population{
			{
				{Position: dynamo.Vec2{X: -50, Y: 0}, Mass: 1000},
				{Position: dynamo.Vec2{X: 50, Y: 0}, Mass: 2500},
			},
			{
				{Position: dynamo.Vec2{X: -49.994, Y: 0}, Velocity: dynamo.Vec2{X: 0.006}, Mass: 1000},
				{Position: dynamo.Vec2{X: 49.9976, Y: 0}, Velocity: dynamo.Vec2{X: -0.0024}, Mass: 2500},
			},
		},
		Ticks:      []int{0, 1},
		TicksTaken: 1,
		Metrics: map[string]float64{
			"energy": -1.5,
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Seed: 42, Ticks: 1, G: 0.0006}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Bodies != 2 || len(meta.Masses) != 2 || meta.Masses[1] != 2500 {
		t.Errorf("masses not recorded: %+v", meta)
	}
	if meta.Metrics["energy"] != -1.5 {
		t.Errorf("expected energy -1.5, got %f", meta.Metrics["energy"])
	}

	snaps, ticks, err := st.LoadSnapshots(runID)
	if err != nil {
		t.Fatalf("load snapshots failed: %v", err)
	}
	if len(snaps) != 2 || len(ticks) != 2 {
		t.Fatalf("expected 2 snapshots, got %d/%d", len(snaps), len(ticks))
	}
	want := testResult().Snapshots
	for i := range want {
		for j := range want[i] {
			if snaps[i][j] != want[i][j] {
				t.Errorf("snapshot %d body %d: got %+v, want %+v", i, j, snaps[i][j], want[i][j])
			}
		}
	}
	if ticks[1] != 1 {
		t.Errorf("expected tick 1, got %d", ticks[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(RunMetadata{Seed: int64(i)}, testResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "states.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreCorruptStates(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	bad := []byte("tick,x0\n0,1\n")
	if err := os.WriteFile(filepath.Join(tmpDir, runID, "states.csv"), bad, 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := st.LoadSnapshots(runID); err == nil {
		t.Error("expected error for short rows")
	}
}

func TestExportJSON(t *testing.T) {
	res := testResult()
	meta := &RunMetadata{ID: "r1", Seed: 5, Masses: []float64{1000, 2500}}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, NewExportData(meta, res.Snapshots, res.Ticks)); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if got.ID != "r1" || len(got.Frames) != 2 || len(got.Frames[1]) != 2 {
		t.Errorf("unexpected export shape: %+v", got)
	}
	if got.Frames[1][0].VX != 0.006 {
		t.Errorf("expected vx 0.006, got %v", got.Frames[1][0].VX)
	}
}
