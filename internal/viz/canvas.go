// Package viz renders particle scenes in the terminal: a braille dot
// canvas for the live view and asciigraph charts for saved runs.
package viz

import "strings"

// Braille cells pack 2x4 dots. Dot bits relative to 0x2800:
// 0x01 0x08
// 0x02 0x10
// 0x04 0x20
// 0x40 0x80
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a braille dot raster. Dot coordinates span
// (Cols*2) x (Rows*4) with the origin at the top left.
type Canvas struct {
	Cols, Rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

// Set lights a single dot. Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row*c.Cols+col] |= dotBits[y%4][x%2]
}

// Dot draws a (2r+1)-wide square blob centered at (x, y).
func (c *Canvas) Dot(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

// Line draws a segment with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Rows * (c.Cols + 1))
	for row := 0; row < c.Rows; row++ {
		b.WriteString(string(c.cells[row*c.Cols : (row+1)*c.Cols]))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps a world-space rectangle onto the canvas dot grid.
// World y grows upward, dot y grows downward.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Project converts world coordinates to dot coordinates on c.
func (v Viewport) Project(c *Canvas, wx, wy float64) (int, int) {
	dw := float64(c.Cols * 2)
	dh := float64(c.Rows * 4)
	x := (wx - v.MinX) / (v.MaxX - v.MinX) * dw
	y := (1 - (wy-v.MinY)/(v.MaxY-v.MinY)) * dh
	return int(x), int(y)
}
