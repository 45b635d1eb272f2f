package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"gotest.tools/assert"
)

type toneStreamer struct {
	n, pos     int
	sampleRate int
}

func (s *toneStreamer) Stream(samples [][2]float64) (int, bool) {
	n := 0
	for i := range samples {
		if s.pos >= s.n {
			break
		}
		v := 0.5 * math.Sin(2*math.Pi*440*float64(s.pos)/float64(s.sampleRate))
		samples[i][0], samples[i][1] = v, v
		s.pos++
		n++
	}
	return n, n > 0
}

func (s *toneStreamer) Err() error { return nil }

func writeTone(t *testing.T, path string, seconds float64, sampleRate int) {
	t.Helper()
	f, err := os.Create(path)
	assert.NilError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: beep.SampleRate(sampleRate), NumChannels: 1, Precision: 2}
	err = wav.Encode(f, &toneStreamer{n: int(seconds * float64(sampleRate)), sampleRate: sampleRate}, format)
	assert.NilError(t, err)
}

func TestDecodeTone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeTone(t, path, 1.0, 8000)

	samples, sr, err := Decode(path)
	assert.NilError(t, err)
	assert.Equal(t, sr, 8000)
	assert.Equal(t, len(samples), 8000)

	sum := 0.0
	for _, s := range samples {
		sum += s * s
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	// 0.5-amplitude sine has RMS 0.5/sqrt(2)
	assert.Assert(t, math.Abs(rms-0.3536) < 0.01, "rms %v", rms)
}

func TestDecodeMissing(t *testing.T) {
	_, _, err := Decode(filepath.Join(t.TempDir(), "nope.wav"))
	assert.Assert(t, err != nil)
}

func TestConcatNoValidFiles(t *testing.T) {
	dir := t.TempDir()
	err := Concat([]string{
		filepath.Join(dir, "missing1.wav"),
		filepath.Join(dir, "missing2.wav"),
	}, filepath.Join(dir, "out.wav"))
	assert.ErrorContains(t, err, "no valid audio files")
}

func TestConcatReencode(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.wav")
	b := filepath.Join(dir, "b.wav")
	writeTone(t, a, 0.5, 8000)
	writeTone(t, b, 0.25, 8000)

	out := filepath.Join(dir, "merged.wav")
	// missing segments are skipped with a warning, not fatal
	err := concatReencode([]string{a, filepath.Join(dir, "gone.wav"), b}, out)
	assert.NilError(t, err)

	samples, sr, err := Decode(out)
	assert.NilError(t, err)
	assert.Equal(t, sr, 8000)
	assert.Equal(t, len(samples), 6000)
}
