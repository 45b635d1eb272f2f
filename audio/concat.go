package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Concat merges ordered WAV segments into one continuous track. Missing
// files are logged and skipped; merging nothing is an error. The primary
// path is ffmpeg's concat demuxer with stream copy; if that fails the
// segments are decoded and re-encoded instead.
func Concat(paths []string, outPath string) error {
	valid := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			logrus.WithField("path", p).Warn("audio file not found, skipping")
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return fmt.Errorf("no valid audio files to merge")
	}

	logrus.WithField("segments", len(valid)).Info("merging audio")

	if err := concatCopy(valid, outPath); err != nil {
		logrus.WithError(err).Warn("ffmpeg concat failed, falling back to re-encode")
		return concatReencode(valid, outPath)
	}
	return nil
}

func concatCopy(paths []string, outPath string) error {
	list, err := os.CreateTemp("", "concat-*.txt")
	if err != nil {
		return err
	}
	defer os.Remove(list.Name())

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			list.Close()
			return err
		}
		if _, err := fmt.Fprintf(list, "file '%s'\n", abs); err != nil {
			list.Close()
			return err
		}
	}
	if err := list.Close(); err != nil {
		return err
	}

	return ffmpeg.
		Input(list.Name(), ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(outPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().Silent(true).Run()
}

// concatReencode decodes every segment and writes one WAV in the first
// segment's format. Mismatched segment formats get a warning; beep
// resamples nothing here, matching rates are the caller's job.
func concatReencode(paths []string, outPath string) error {
	var (
		streamers []beep.Streamer
		closers   []beep.StreamSeekCloser
		format    beep.Format
	)
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	for i, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			logrus.WithError(err).WithField("path", p).Warn("skipping unreadable segment")
			continue
		}
		s, fmtI, err := wav.Decode(f)
		if err != nil {
			f.Close()
			logrus.WithError(err).WithField("path", p).Warn("skipping undecodable segment")
			continue
		}
		if len(streamers) == 0 {
			format = fmtI
		} else if fmtI.SampleRate != format.SampleRate || fmtI.NumChannels != format.NumChannels {
			logrus.WithFields(logrus.Fields{
				"segment":  i,
				"rate":     fmtI.SampleRate,
				"channels": fmtI.NumChannels,
			}).Warn("segment format differs from first segment")
		}
		streamers = append(streamers, s)
		closers = append(closers, s)
	}
	if len(streamers) == 0 {
		return fmt.Errorf("no valid audio segments to merge")
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := wav.Encode(out, beep.Seq(streamers...), format); err != nil {
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	return nil
}
