package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Layout is the static per-speaker placement, derived once per render and
// read-only afterwards.
type Layout struct {
	Positions [][2]float64
	Colors    []colorful.Color
}

// NewLayout places speakers evenly along a half-circle arc (angles from pi
// down to 0) around the frame center, arc radius a quarter of the shorter
// dimension. A single speaker sits in the center. Hues are spaced evenly
// around the wheel so any speaker count stays visually separable.
func NewLayout(numSpeakers, width, height int) Layout {
	cx := float64(width) / 2
	cy := float64(height) / 2
	arc := float64(min(width, height)) / 4

	positions := make([][2]float64, 0, numSpeakers)
	if numSpeakers == 1 {
		positions = append(positions, [2]float64{cx, cy})
	} else {
		for i := 0; i < numSpeakers; i++ {
			angle := math.Pi - math.Pi*float64(i)/float64(numSpeakers-1)
			positions = append(positions, [2]float64{
				cx + arc*math.Cos(angle),
				cy + arc*math.Sin(angle),
			})
		}
	}

	colors := make([]colorful.Color, 0, numSpeakers)
	for i := 0; i < numSpeakers; i++ {
		hue := 360 * float64(i) / float64(numSpeakers)
		colors = append(colors, colorful.Hsv(hue, 200.0/255.0, 1.0))
	}

	return Layout{Positions: positions, Colors: colors}
}

// shade shifts every channel by delta (in [-1,1]) and clamps, used for the
// darker core and brighter glow variants of a speaker color.
func shade(c colorful.Color, delta float64) colorful.Color {
	return colorful.Color{
		R: clamp01(c.R + delta),
		G: clamp01(c.G + delta),
		B: clamp01(c.B + delta),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
