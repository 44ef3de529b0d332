package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/planets/internal/dynamo"
)

// Palette cycles by body index.
var Palette = []string{
	"#4fc3f7", "#ffb74d", "#81c784", "#e57373", "#ba68c8",
	"#fff176", "#4db6ac", "#f06292", "#a1887f", "#90a4ae",
}

type bounds struct {
	minX, minY, rangeX, rangeY float64
}

func boundsOf(snapshots []dynamo.Population) bounds {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, snap := range snapshots {
		for _, b := range snap {
			if !b.Position.IsFinite() {
				continue
			}
			minX = math.Min(minX, b.Position.X)
			maxX = math.Max(maxX, b.Position.X)
			minY = math.Min(minY, b.Position.Y)
			maxY = math.Max(maxY, b.Position.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return bounds{rangeX: 1, rangeY: 1}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1

	// keep aspect ratio square in world units
	rangeX = maxX - minX
	rangeY = maxY - minY
	if rangeX > rangeY {
		minY -= (rangeX - rangeY) / 2
		rangeY = rangeX
	} else {
		minX -= (rangeY - rangeX) / 2
		rangeX = rangeY
	}
	return bounds{minX: minX, minY: minY, rangeX: rangeX, rangeY: rangeY}
}

func (b bounds) project(p dynamo.Vec2, width, height int) (float64, float64) {
	x := (p.X - b.minX) / b.rangeX * float64(width)
	y := float64(height) - (p.Y-b.minY)/b.rangeY*float64(height)
	return x, y
}

// OrbitsToSVG draws every body's path across snapshots, with a disc at its
// final position scaled by sqrt(mass/100). Non-finite samples break the
// path.
func OrbitsToSVG(snapshots []dynamo.Population, width, height int) string {
	if len(snapshots) == 0 || len(snapshots[0]) == 0 {
		return ""
	}

	bb := boundsOf(snapshots)
	n := len(snapshots[0])

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i := 0; i < n; i++ {
		color := Palette[i%len(Palette)]
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.7" d="`, color)
		move := true
		for _, snap := range snapshots {
			if i >= len(snap) || !snap[i].Position.IsFinite() {
				move = true
				continue
			}
			x, y := bb.project(snap[i].Position, width, height)
			if move {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
				move = false
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	last := snapshots[len(snapshots)-1]
	for i, b := range last {
		if !b.Position.IsFinite() {
			continue
		}
		x, y := bb.project(b.Position, width, height)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, math.Max(1.5, math.Sqrt(b.Mass/100)), Palette[i%len(Palette)])
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
