package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Series is one polyline of a chart.
type Series struct {
	Name string
	X, Y []float64
}

// bounds of every point in series, padded by 10% on each side.
func bounds(series []Series) (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range series {
		for i := range s.X {
			minX, maxX = math.Min(minX, s.X[i]), math.Max(maxX, s.X[i])
			minY, maxY = math.Min(minY, s.Y[i]), math.Max(maxY, s.Y[i])
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return minX - rangeX*0.1, maxX + rangeX*0.1, minY - rangeY*0.1, maxY + rangeY*0.1
}

// Palette returns n evenly spaced hues of equal lightness.
func Palette(n int) []string {
	out := make([]string, n)
	for i := range out {
		h := 360 * float64(i) / float64(max(n, 1))
		out[i] = colorful.Hcl(h, 0.6, 0.7).Clamped().Hex()
	}
	return out
}

// ChartSVG draws the series as polylines on a dark background, with a
// legend when there is more than one. Series shorter than two points or
// with mismatched X and Y are skipped.
func ChartSVG(series []Series, width, height int) string {
	valid := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.X) >= 2 && len(s.X) == len(s.Y) {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return ""
	}

	minX, maxX, minY, maxY := bounds(valid)
	rangeX, rangeY := maxX-minX, maxY-minY
	colors := Palette(len(valid))

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for si, s := range valid {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, colors[si])
		for i := range s.X {
			x := (s.X[i] - minX) / rangeX * float64(width)
			y := float64(height) - (s.Y[i]-minY)/rangeY*float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	if len(valid) > 1 {
		for si, s := range valid {
			fmt.Fprintf(&sb, `<text x="10" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 20+16*si, colors[si], escape(s.Name))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
