package analysis

import (
	"strings"

	"github.com/san-kum/polsim/internal/dynamo"
)

type Point struct{ X, Y float64 }

// Portrait holds the path of two compartment shares through a run.
type Portrait struct {
	XIndex, YIndex int
	Points         []Point
}

// SharePortrait collects the shares of compartments xIdx and yIdx at every
// time point of a result.
func SharePortrait(result *dynamo.Result, xIdx, yIdx int) *Portrait {
	if result == nil || len(result.States) == 0 {
		return nil
	}
	if xIdx < 0 || yIdx < 0 || xIdx >= len(result.States[0]) || yIdx >= len(result.States[0]) {
		return nil
	}

	portrait := &Portrait{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, len(result.States)),
	}
	for _, x := range result.States {
		s := Shares(x)
		portrait.Points = append(portrait.Points, Point{X: s[xIdx], Y: s[yIdx]})
	}
	return portrait
}

// PortraitToASCII draws the portrait on the unit square, with the diagonal
// marking equal shares.
func PortraitToASCII(portrait *Portrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for col := 0; col < width; col++ {
		row := height - 1 - col*(height-1)/(width-1)
		canvas[row][col] = '·'
	}

	plot := func(p Point, mark rune) {
		col := int(p.X * float64(width-1))
		row := height - 1 - int(p.Y*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = mark
		}
	}
	for _, p := range portrait.Points {
		plot(p, '•')
	}
	plot(portrait.Points[0], 'o')
	plot(portrait.Points[len(portrait.Points)-1], 'x')

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
