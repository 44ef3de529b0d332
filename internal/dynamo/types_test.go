package dynamo

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{4, 6}

	if got := a.Add(b); got != (Vec2{5, 8}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Vec2{3, 4}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := b.Sub(a).Len(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Len = %v, want 5", got)
	}
}

func TestVec2_Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want Vec2
	}{
		{"axis", Vec2{3, 0}, Vec2{1, 0}},
		{"diagonal", Vec2{3, 4}, Vec2{0.6, 0.8}},
		{"zero", Vec2{}, Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalize()
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestPopulation_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		pop   Population
		valid bool
	}{
		{"empty", Population{}, true},
		{"normal", Population{{Position: Vec2{1, 2}, Mass: 10}}, true},
		{"NaN position", Population{{Position: Vec2{math.NaN(), 0}, Mass: 10}}, false},
		{"Inf velocity", Population{{Velocity: Vec2{0, math.Inf(1)}, Mass: 10}}, false},
		{"Inf mass", Population{{Mass: math.Inf(1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pop.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPopulation_Validate(t *testing.T) {
	ok := Population{{Mass: 1}, {Mass: 1000}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, m := range []float64{0, -5, math.NaN()} {
		bad := Population{{Mass: 1}, {Mass: m}}
		err := bad.Validate()
		if !errors.Is(err, ErrNonPositiveMass) {
			t.Errorf("mass %v: expected ErrNonPositiveMass, got %v", m, err)
		}
	}
}

func TestPopulation_Clone(t *testing.T) {
	p := Population{{Position: Vec2{1, 1}, Mass: 2}}
	c := p.Clone()
	c[0].Position.X = 99

	if p[0].Position.X == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestPopulation_TotalMass(t *testing.T) {
	p := Population{
		{Position: Vec2{1, 2}, Mass: 1},
		{Position: Vec2{3, 4}, Mass: 1.5},
	}
	if p.TotalMass() != 2.5 {
		t.Errorf("TotalMass = %v, want 2.5", p.TotalMass())
	}
	if (Population{}).TotalMass() != 0 {
		t.Error("expected zero mass for empty population")
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Tick: 12, Wrapped: ErrInvalidState}
	expected := "tick 12: dynamo: invalid state (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("SimulationError does not unwrap to its cause")
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	tests := []struct {
		n, workers, minChunk int
	}{
		{0, 4, 1},
		{1, 4, 1},
		{10, 1, 1},
		{10, 4, 1},
		{100, 8, 16},
		{7, 3, 2},
	}

	for _, tt := range tests {
		seen := make([]int32, tt.n)
		var calls int32
		ParallelFor(tt.n, tt.workers, tt.minChunk, func(start, end int) {
			atomic.AddInt32(&calls, 1)
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, c := range seen {
			if c != 1 {
				t.Errorf("n=%d workers=%d: index %d visited %d times", tt.n, tt.workers, i, c)
			}
		}
		if int(calls) > tt.workers && tt.workers > 1 {
			t.Errorf("n=%d: %d chunks exceed %d workers", tt.n, calls, tt.workers)
		}
	}
}
