package render

import "math"

const (
	outlinePoints = 80

	// glowThreshold is a hard step: at or below it the glow ring is not
	// drawn at all, above it the ring appears at full strength.
	glowThreshold = 0.3
)

// energyScale maps floored energy in [0.1, 1.0] linearly onto
// [1.0, maxScale].
func energyScale(energy, maxScale float64) float64 {
	return 1.0 + (energy-0.1)*(maxScale-1.0)/0.9
}

// wobble is the multi-frequency perturbation giving the outline its fluid
// look. Phase is a pure function of the frame index, so the same frame
// always produces the same silhouette.
func wobble(angle, phase float64) float64 {
	return math.Sin(angle*3+phase)*0.1 +
		math.Sin(angle*5+phase*1.3)*0.05 +
		math.Sin(angle*7+phase*0.7)*0.03
}

// fluidOutline samples the deformed blob boundary around (cx, cy). Wobble
// amplitude scales with energy, so louder moments deform more.
func fluidOutline(cx, cy, baseRadius, energy, maxScale float64, frameIdx int) [][2]float64 {
	phase := float64(frameIdx) * 0.1
	scale := energyScale(energy, maxScale)

	pts := make([][2]float64, outlinePoints)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / outlinePoints
		r := baseRadius*scale + wobble(angle, phase)*baseRadius*energy
		pts[i] = [2]float64{
			cx + r*math.Cos(angle),
			cy + r*math.Sin(angle),
		}
	}
	return pts
}

// coreScale is the extra growth applied to the inner core and glow ring;
// it tracks energy with a fixed 0.5 gain, independent of maxScale.
func coreScale(energy float64) float64 {
	return 1.0 + (energy-0.1)*0.5
}

func glowVisible(energy float64) bool {
	return energy > glowThreshold
}
