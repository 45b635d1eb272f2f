package render

import (
	"testing"

	"gotest.tools/assert"
)

func TestOutlineDeterministic(t *testing.T) {
	a := fluidOutline(100, 100, 40, 0.7, 1.5, 42)
	b := fluidOutline(100, 100, 40, 0.7, 1.5, 42)
	assert.DeepEqual(t, a, b)
	assert.Equal(t, len(a), outlinePoints)
}

func TestOutlineEvolvesWithFrame(t *testing.T) {
	a := fluidOutline(100, 100, 40, 0.7, 1.5, 0)
	b := fluidOutline(100, 100, 40, 0.7, 1.5, 1)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	assert.Assert(t, !same, "outline should wobble between frames")
}

func TestEnergyScaleMapping(t *testing.T) {
	approx := func(a, b float64) bool { d := a - b; return d < 1e-9 && d > -1e-9 }

	// floored range [0.1, 1.0] maps linearly onto [1.0, maxScale]
	assert.Assert(t, approx(energyScale(0.1, 1.5), 1.0))
	assert.Assert(t, approx(energyScale(1.0, 1.5), 1.5))
	assert.Assert(t, approx(energyScale(0.55, 1.5), 1.25))
}

func TestEnergyScaleMonotone(t *testing.T) {
	prev := 0.0
	for e := 0.1; e <= 1.0; e += 0.05 {
		s := energyScale(e, 1.5)
		assert.Assert(t, s >= prev, "scale not monotone at energy %v", e)
		prev = s
	}
}

func TestCoreScaleMonotone(t *testing.T) {
	assert.Assert(t, coreScale(0.1) < coreScale(0.5))
	assert.Assert(t, coreScale(0.5) < coreScale(1.0))
}

func TestGlowIsStepFunction(t *testing.T) {
	assert.Assert(t, !glowVisible(0.29))
	assert.Assert(t, !glowVisible(0.3))
	assert.Assert(t, glowVisible(0.31))
}
