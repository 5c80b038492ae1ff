package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"gonum.org/v1/gonum/floats"
)

// Wedge is one slice of a pie chart.
type Wedge struct {
	Label string
	Value float64
	Color color.RGBA
}

// wedgeSpans returns the [start, end) angles in radians of each wedge, starting
// at 3 o'clock and running counter-clockwise. Non-positive values get an
// empty span.
func wedgeSpans(values []float64) [][2]float64 {
	spans := make([][2]float64, len(values))
	pos := make([]float64, len(values))
	for i, v := range values {
		pos[i] = math.Max(v, 0)
	}
	total := floats.Sum(pos)
	if total <= 0 {
		return spans
	}

	start := 0.0
	for i, v := range pos {
		end := start + 2*math.Pi*v/total
		spans[i] = [2]float64{start, end}
		start = end
	}
	return spans
}

// drawPie paints wedges into a circle of the given radius centred at c.
// An all-zero chart is drawn as an outline.
func drawPie(dst *image.RGBA, c image.Point, radius int, wedges []Wedge, face font.Face) {
	values := make([]float64, len(wedges))
	for i, w := range wedges {
		values[i] = w.Value
	}
	spans := wedgeSpans(values)
	total := floats.Sum(values)

	r2 := radius * radius
	inner := (radius - 1) * (radius - 1)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			x, y := c.X+dx, c.Y+dy
			if !(image.Point{x, y}).In(dst.Bounds()) {
				continue
			}
			if total <= 0 {
				if d2 >= inner {
					dst.SetRGBA(x, y, color.RGBA{A: 255})
				}
				continue
			}

			// Screen y grows downwards; flip it for counter-clockwise angles.
			a := math.Atan2(float64(-dy), float64(dx))
			if a < 0 {
				a += 2 * math.Pi
			}
			for i, s := range spans {
				if a >= s[0] && a < s[1] {
					dst.SetRGBA(x, y, wedges[i].Color)
					break
				}
			}
		}
	}

	if total <= 0 || face == nil {
		return
	}

	for i, w := range wedges {
		s := spans[i]
		if s[1] <= s[0] {
			continue
		}
		mid := (s[0] + s[1]) / 2
		cos, sin := math.Cos(mid), -math.Sin(mid)

		pct := fmt.Sprintf("%.1f%%", 100*w.Value/total)
		drawCentered(dst, face, pct,
			c.X+int(cos*0.6*float64(radius)), c.Y+int(sin*0.6*float64(radius)), color.Black)
		drawCentered(dst, face, w.Label,
			c.X+int(cos*1.15*float64(radius)), c.Y+int(sin*1.15*float64(radius)), color.Black)
	}
}
