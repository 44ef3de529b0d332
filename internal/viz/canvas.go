package viz

import (
	"math"
	"strings"

	"github.com/san-kum/planets/internal/dynamo"
)

const brailleBase = 0x2800

// Braille patterns: 2x4 dots per cell
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel grid of Width x Height cells, i.e.
// (Width*2) x (Height*4) sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). Out of range points are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// IsSet reports whether sub-pixel (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
}

// Disc fills a circle of radius r sub-pixels around (cx, cy). A radius
// below one still lights the center. Only the part of the circle that
// overlaps the canvas is visited.
func (c *Canvas) Disc(cx, cy int, r float64) {
	c.Set(cx, cy)
	if !(r > 0) {
		return
	}

	ri := math.Ceil(r)
	x0 := int(math.Max(float64(cx)-ri, 0))
	x1 := int(math.Min(float64(cx)+ri, float64(c.Width*2-1)))
	y0 := int(math.Max(float64(cy)-ri, 0))
	y1 := int(math.Min(float64(cy)+ri, float64(c.Height*4-1)))
	r2 := r * r

	for y := y0; y <= y1; y++ {
		dy := float64(y - cy)
		for x := x0; x <= x1; x++ {
			dx := float64(x - cx)
			if dx*dx+dy*dy <= r2 {
				c.Set(x, y)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps world coordinates onto canvas sub-pixels. HalfExtent is the
// world distance from Center to the left/right canvas edge; the y axis
// uses the same scale and points up.
type Viewport struct {
	Center     dynamo.Vec2
	HalfExtent float64
}

func (v Viewport) scale(c *Canvas) float64 {
	return float64(c.Width) / v.HalfExtent
}

// Project returns the sub-pixel for world point p.
func (v Viewport) Project(c *Canvas, p dynamo.Vec2) (int, int) {
	s := v.scale(c)
	x := float64(c.Width) + (p.X-v.Center.X)*s
	y := float64(c.Height*2) - (p.Y-v.Center.Y)*s
	return int(math.Floor(x)), int(math.Floor(y))
}

// Radius converts a world length to sub-pixels.
func (v Viewport) Radius(c *Canvas, r float64) float64 {
	return r * v.scale(c)
}

func (v Viewport) Zoom(factor float64) Viewport {
	v.HalfExtent *= factor
	return v
}

// Pan shifts the center by a fraction of the half extent.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.Center = v.Center.Add(dynamo.Vec2{X: dx, Y: dy}.Scale(v.HalfExtent))
	return v
}
