package viz

import "github.com/san-kum/planets/internal/dynamo"

// Trail is a fixed-size ring of past positions. A new trail is filled with
// its starting position so it renders from the first frame.
type Trail struct {
	points []dynamo.Vec2
	head   int
}

func NewTrail(length int, start dynamo.Vec2) *Trail {
	if length < 1 {
		length = 1
	}
	points := make([]dynamo.Vec2, length)
	for i := range points {
		points[i] = start
	}
	return &Trail{points: points}
}

func (t *Trail) Push(p dynamo.Vec2) {
	t.head = (t.head + 1) % len(t.points)
	t.points[t.head] = p
}

func (t *Trail) Len() int { return len(t.points) }

// At returns the i-th most recent position; At(0) is the newest.
func (t *Trail) At(i int) dynamo.Vec2 {
	n := len(t.points)
	return t.points[((t.head-i)%n+n)%n]
}
