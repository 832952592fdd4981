package analysis

import (
	"strings"
)

type Point struct{ X, Y float64 }

// PhasePortrait is a trajectory in (value, velocity) space.
type PhasePortrait struct {
	Points []Point
}

// NewPhasePortrait pairs values with velocities; extra samples in the
// longer slice are dropped.
func NewPhasePortrait(values, velocities []float64) *PhasePortrait {
	n := min(len(values), len(velocities))
	p := &PhasePortrait{Points: make([]Point, n)}
	for i := 0; i < n; i++ {
		p.Points[i] = Point{X: values[i], Y: velocities[i]}
	}
	return p
}

// ASCII renders the portrait on a width by height grid with axes drawn
// through zero when they are in view. Earlier points use lighter marks.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	// Add padding
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
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	colOf := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }
	rowOf := func(y float64) int { return height - 1 - int((y-minY)/rangeY*float64(height-1)) }

	if minX <= 0 && maxX >= 0 {
		col := colOf(0)
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := rowOf(0)
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	marks := []rune{'.', 'o', '●'}
	for i, pt := range p.Points {
		col, row := colOf(pt.X), rowOf(pt.Y)
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = marks[i*len(marks)/len(p.Points)]
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
