package render

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"gotest.tools/assert"
)

func TestLayoutSingleSpeakerCentered(t *testing.T) {
	l := NewLayout(1, 1920, 1080)
	assert.DeepEqual(t, l.Positions, [][2]float64{{960, 540}})
	assert.Equal(t, len(l.Colors), 1)
}

func TestLayoutHalfCircle(t *testing.T) {
	l := NewLayout(3, 1920, 1080)

	// arc radius is a quarter of the shorter dimension (270), angles run
	// from pi down to 0 around the frame center
	want := [][2]float64{
		{960 - 270, 540},
		{960, 540 + 270},
		{960 + 270, 540},
	}
	assert.DeepEqual(t, l.Positions, want, cmpopts.EquateApprox(0, 1e-9))
}

func TestLayoutEndpointsSpanTheArc(t *testing.T) {
	l := NewLayout(5, 1280, 720)

	first := l.Positions[0]
	last := l.Positions[4]
	assert.DeepEqual(t, first, [2]float64{640 - 180, 360}, cmpopts.EquateApprox(0, 1e-9))
	assert.DeepEqual(t, last, [2]float64{640 + 180, 360}, cmpopts.EquateApprox(0, 1e-9))
}

func TestLayoutColorsDistinct(t *testing.T) {
	l := NewLayout(6, 640, 480)
	for i := 0; i < len(l.Colors); i++ {
		for j := i + 1; j < len(l.Colors); j++ {
			assert.Assert(t, l.Colors[i] != l.Colors[j], "colors %d and %d collide", i, j)
		}
	}
}

func TestShadeClamps(t *testing.T) {
	c := shade(NewLayout(1, 64, 64).Colors[0], 20.0/255.0)
	assert.Assert(t, c.R <= 1 && c.G <= 1 && c.B <= 1)

	d := shade(c, -2)
	assert.Equal(t, d.R, 0.0)
	assert.Equal(t, d.G, 0.0)
	assert.Equal(t, d.B, 0.0)
}
