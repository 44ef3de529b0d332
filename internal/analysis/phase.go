package analysis

import (
	"strings"

	"github.com/san-kum/planets/internal/dynamo"
)

// Trajectory is the sampled path of one body.
type Trajectory struct {
	Body   int
	Points []dynamo.Vec2
}

// TrajectoryOf extracts body's positions from a run's snapshots. It returns
// nil if body is out of range for any snapshot.
func TrajectoryOf(snapshots []dynamo.Population, body int) *Trajectory {
	if body < 0 {
		return nil
	}
	tr := &Trajectory{Body: body, Points: make([]dynamo.Vec2, 0, len(snapshots))}
	for _, snap := range snapshots {
		if body >= len(snap) {
			return nil
		}
		tr.Points = append(tr.Points, snap[body].Position)
	}
	return tr
}

func (t *Trajectory) Bounds() (lo, hi dynamo.Vec2) {
	if t == nil || len(t.Points) == 0 {
		return
	}
	lo, hi = t.Points[0], t.Points[0]
	for _, p := range t.Points {
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
	}
	return
}

// TrajectoryToASCII draws the path in a width x height grid. Early samples
// are '.', middle 'o', late '•'. Axes are drawn where they cross the view.
func TrajectoryToASCII(t *Trajectory, width, height int) string {
	if t == nil || len(t.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	lo, hi := t.Bounds()
	rangeX := hi.X - lo.X
	rangeY := hi.Y - lo.Y
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	lo.X -= rangeX * 0.1
	hi.X += rangeX * 0.1
	lo.Y -= rangeY * 0.1
	hi.Y += rangeY * 0.1
	rangeX = hi.X - lo.X
	rangeY = hi.Y - lo.Y

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	n := len(t.Points)
	for i, p := range t.Points {
		col := int((p.X - lo.X) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-lo.Y)/rangeY*float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch {
		case i < n/3:
			canvas[row][col] = '.'
		case i < 2*n/3:
			canvas[row][col] = 'o'
		default:
			canvas[row][col] = '•'
		}
	}

	if lo.X <= 0 && hi.X >= 0 {
		col := int((0 - lo.X) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if lo.Y <= 0 && hi.Y >= 0 {
		row := height - 1 - int((0-lo.Y)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
