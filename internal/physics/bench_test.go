package physics

import (
	"math"
	"testing"

	"github.com/san-kum/planets/internal/dynamo"
)

func ring(n int) dynamo.Population {
	pop := make(dynamo.Population, n)
	for i := range pop {
		a := float64(i) * 2 * math.Pi / float64(n)
		pop[i] = dynamo.Body{
			Position: dynamo.Vec2{X: 400 * math.Cos(a), Y: 400 * math.Sin(a)},
			Mass:     5000,
		}
	}
	return pop
}

func BenchmarkStep5(b *testing.B) {
	g := NewGravity()
	pop := ring(5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step(pop)
	}
}

func BenchmarkStep512(b *testing.B) {
	g := NewGravity()
	pop := ring(512)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step(pop)
	}
}

func BenchmarkStep512Parallel(b *testing.B) {
	g := NewGravity()
	g.Workers = 4
	pop := ring(512)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step(pop)
	}
}
