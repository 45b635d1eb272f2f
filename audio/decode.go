package audio

import (
	"fmt"
	"os"

	"github.com/gopxl/beep/wav"
)

// Decode reads a WAV file into mono float64 samples in [-1, 1] plus the
// file's sample rate. Stereo channels are averaged down.
func Decode(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	samples := make([]float64, 0, streamer.Len())
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			samples = append(samples, (buf[i][0]+buf[i][1])/2)
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return samples, int(format.SampleRate), nil
}
