package viz

import (
	"strings"

	"github.com/san-kum/polsim/internal/analysis"
)

const brailleBlank = 0x2800

// Dot bits of a braille cell, 2 columns by 4 rows.
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid of Width x Height cells, addressable in dots
// (2 per cell across, 4 per cell down).
type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBlank
		}
	}
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

// Line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	e := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

// unit maps a share in [0, 1] onto dot coordinates; y grows downwards.
func (c *Canvas) unit(p analysis.Point) (int, int) {
	w, h := c.Width*2-1, c.Height*4-1
	return int(p.X*float64(w) + 0.5), h - int(p.Y*float64(h)+0.5)
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.cells {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderPortrait joins the first n points of a share portrait on the unit
// square. n <= 0 draws every point.
func RenderPortrait(p *analysis.Portrait, n, width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 1 || height < 1 {
		return ""
	}
	if n <= 0 || n > len(p.Points) {
		n = len(p.Points)
	}

	c := NewCanvas(width, height)
	px, py := c.unit(p.Points[0])
	c.Set(px, py)
	for _, pt := range p.Points[1:n] {
		x, y := c.unit(pt)
		c.Line(px, py, x, y)
		px, py = x, y
	}
	return c.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
