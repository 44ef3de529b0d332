package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Bodies      int                `json:"bodies"`
	Ticks       int                `json:"ticks"`
	SampleEvery int                `json:"sample_every"`
	G           float64            `json:"g"`
	MinDistance float64            `json:"min_distance"`
	Workers     int                `json:"workers"`
	Masses      []float64          `json:"masses"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and states.csv into a new run directory and
// returns the run ID. Masses are taken from the first snapshot.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("run_%s_%d", now.Format("20060102_150405"), now.UnixNano()%1e9)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Metrics = result.Metrics
	if len(result.Snapshots) > 0 {
		first := result.Snapshots[0]
		meta.Bodies = len(first)
		meta.Masses = make([]float64, len(first))
		for i, b := range first {
			meta.Masses[i] = b.Mass
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if err := writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeStates emits one row per snapshot: tick, then x, y, vx, vy per body.
func writeStates(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if len(result.Snapshots) > 0 {
		if err := w.Write(StateHeader(len(result.Snapshots[0]))); err != nil {
			return err
		}
		for i, pop := range result.Snapshots {
			if err := w.Write(StateRow(result.Ticks[i], pop)); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func StateHeader(n int) []string {
	header := make([]string, 0, 1+n*4)
	header = append(header, "tick")
	for i := 0; i < n; i++ {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	return header
}

func StateRow(tick int, pop dynamo.Population) []string {
	row := make([]string, 0, 1+len(pop)*4)
	row = append(row, strconv.Itoa(tick))
	for _, b := range pop {
		row = append(row,
			formatFloat(b.Position.X), formatFloat(b.Position.Y),
			formatFloat(b.Velocity.X), formatFloat(b.Velocity.Y))
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns saved runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadSnapshots rebuilds the stored populations, restoring masses from the
// run metadata.
func (s *Store) LoadSnapshots(runID string) ([]dynamo.Population, []int, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []dynamo.Population{}, []int{}, nil
	}

	ticks := make([]int, 0, len(records)-1)
	snapshots := make([]dynamo.Population, 0, len(records)-1)

	for line, record := range records[1:] {
		if len(record) != 1+len(meta.Masses)*4 {
			return nil, nil, fmt.Errorf("run %s line %d: expected %d fields, got %d",
				runID, line+2, 1+len(meta.Masses)*4, len(record))
		}

		tick, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
		}

		vals := make([]float64, len(record)-1)
		for j, field := range record[1:] {
			vals[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
			}
		}

		pop := make(dynamo.Population, len(meta.Masses))
		for i := range pop {
			pop[i] = dynamo.Body{
				Position: dynamo.Vec2{X: vals[i*4], Y: vals[i*4+1]},
				Velocity: dynamo.Vec2{X: vals[i*4+2], Y: vals[i*4+3]},
				Mass:     meta.Masses[i],
			}
		}

		ticks = append(ticks, tick)
		snapshots = append(snapshots, pop)
	}

	return snapshots, ticks, nil
}
