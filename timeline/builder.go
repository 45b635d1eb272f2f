package timeline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

const (
	windowLength = 2048 // RMS analysis window, samples
	hopLength    = 512  // hop between windows, samples

	// EnergyFloor keeps a silent speaker's blob from collapsing to nothing.
	EnergyFloor = 0.1

	defaultAlpha = 0.2
)

// ErrNoChunks is returned by BuildTimeline when nothing was ingested.
var ErrNoChunks = errors.New("no chunks ingested, add chunks before building timeline")

// Chunk is one segment's RMS envelope placed on the global clock.
type Chunk struct {
	Speaker  int
	Start    float64 // sec, global
	End      float64 // sec, global
	Duration float64 // sec
	Energy   []float64
	Times    []float64 // global-clock seconds, one per Energy entry
}

// Builder accumulates per-speaker audio segments and lays them end-to-end
// on a running global clock. One Builder per timeline; the clock is owned
// state, not a package global.
type Builder struct {
	chunks     []*Chunk
	clock      float64
	sampleRate int
	fps        int
	alpha      float64
}

// NewBuilder returns a builder for the given sample rate and target video
// fps. alpha is the smoothing coefficient; <=0 selects the default 0.2.
func NewBuilder(sampleRate, fps int, alpha float64) *Builder {
	if alpha <= 0 {
		alpha = defaultAlpha
	}
	return &Builder{sampleRate: sampleRate, fps: fps, alpha: alpha}
}

// Ingest computes the RMS envelope of one segment and appends it at the
// current end of the timeline. An empty segment is skipped with a warning
// and returns nil; the clock does not advance.
func (b *Builder) Ingest(speaker int, samples []float64) *Chunk {
	if len(samples) == 0 {
		logrus.WithField("speaker", speaker).Warn("empty audio chunk, skipping")
		return nil
	}

	env := rmsEnvelope(samples)
	times := make([]float64, len(env))
	for i := range times {
		times[i] = b.clock + float64(i*hopLength)/float64(b.sampleRate)
	}

	duration := float64(len(samples)) / float64(b.sampleRate)
	c := &Chunk{
		Speaker:  speaker,
		Start:    b.clock,
		End:      b.clock + duration,
		Duration: duration,
		Energy:   env,
		Times:    times,
	}
	b.chunks = append(b.chunks, c)
	b.clock += duration

	logrus.WithFields(logrus.Fields{
		"speaker":  speaker,
		"duration": duration,
		"windows":  len(env),
	}).Debug("chunk added")
	return c
}

// BuildTimeline resamples every speaker's envelopes onto the video frame
// grid, smooths, normalizes per speaker and applies the energy floor.
// numSpeakers must be at least max ingested speaker id + 1; speakers with
// no chunks come out all-floor.
func (b *Builder) BuildTimeline(numSpeakers int) (*Timeline, error) {
	if len(b.chunks) == 0 {
		return nil, ErrNoChunks
	}

	totalDuration := b.clock
	fps := float64(b.fps)
	interval := 1.0 / fps
	totalFrames := int(math.Ceil(totalDuration * fps))

	speakers := make(map[int][]float64, numSpeakers)
	for id := 0; id < numSpeakers; id++ {
		speakers[id] = make([]float64, totalFrames)
	}

	for _, c := range b.chunks {
		startFrame := int(math.Floor(c.Start * fps))
		endFrame := int(math.Ceil(c.End * fps))
		if endFrame > totalFrames {
			endFrame = totalFrames
		}
		if startFrame >= totalFrames {
			continue
		}

		row, ok := speakers[c.Speaker]
		if !ok {
			return nil, fmt.Errorf("chunk for speaker %d but numSpeakers=%d", c.Speaker, numSpeakers)
		}
		if len(c.Energy) > 1 {
			for f := startFrame; f < endFrame; f++ {
				row[f] = interp(c.Times, c.Energy, float64(f)*interval)
			}
		} else {
			// A sub-window chunk has a single envelope sample; it lands on
			// its start frame only, not the whole covered range.
			row[startFrame] = c.Energy[0]
		}
	}

	for id := 0; id < numSpeakers; id++ {
		speakers[id] = shape(speakers[id], b.alpha)
	}

	logrus.WithFields(logrus.Fields{
		"frames":   totalFrames,
		"duration": totalDuration,
	}).Info("timeline built")

	return &Timeline{
		FrameInterval: interval,
		TotalFrames:   totalFrames,
		TotalDuration: totalDuration,
		Speakers:      speakers,
	}, nil
}

// rmsEnvelope computes RMS over overlapping windows at every hop offset,
// zero-padding the final partial window.
func rmsEnvelope(samples []float64) []float64 {
	n := len(samples)
	env := make([]float64, 0, (n+hopLength-1)/hopLength)
	for start := 0; start < n; start += hopLength {
		end := start + windowLength
		if end > n {
			end = n
		}
		sum := 0.0
		for _, s := range samples[start:end] {
			sum += s * s
		}
		env = append(env, math.Sqrt(sum/float64(windowLength)))
	}
	return env
}

// interp linearly interpolates (times, values) at t; queries outside the
// sampled range yield 0, never an extrapolation.
func interp(times, values []float64, t float64) float64 {
	if t < times[0] || t > times[len(times)-1] {
		return 0
	}
	i := sort.SearchFloat64s(times, t)
	if i < len(times) && times[i] == t {
		return values[i]
	}
	t0, t1 := times[i-1], times[i]
	frac := (t - t0) / (t1 - t0)
	return values[i-1] + frac*(values[i]-values[i-1])
}

// smooth is a first-order causal low-pass: smooth[0] equals raw[0], later
// frames blend toward the raw signal at rate alpha.
func smooth(raw []float64, alpha float64) []float64 {
	out := make([]float64, len(raw))
	if len(raw) == 0 {
		return out
	}
	out[0] = raw[0]
	for i := 1; i < len(raw); i++ {
		out[i] = alpha*raw[i] + (1-alpha)*out[i-1]
	}
	return out
}

// shape runs causal exponential smoothing, per-speaker max normalization
// and the energy floor over one raw frame row.
func shape(raw []float64, alpha float64) []float64 {
	if len(raw) == 0 {
		return raw
	}
	out := smooth(raw, alpha)

	max := 0.0
	for _, v := range out {
		if v > max {
			max = v
		}
	}
	if max > 0 {
		for i := range out {
			out[i] /= max
		}
	}

	for i := range out {
		if out[i] < EnergyFloor {
			out[i] = EnergyFloor
		}
	}
	return out
}
