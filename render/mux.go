package render

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// durationTolerance is the audio/video length mismatch we pass through
// unmodified; beyond it audio is truncated or padded to the video length.
const durationTolerance = 0.1

// MuxError reports a failed audio/video combine. The video-only artifact is
// never deleted on this path; VideoPath tells the operator where it is.
type MuxError struct {
	VideoPath string
	Err       error
}

func (e *MuxError) Error() string {
	return fmt.Sprintf("combining audio: %v (video-only file kept at %s)", e.Err, e.VideoPath)
}

func (e *MuxError) Unwrap() error { return e.Err }

// mux combines the rendered video with the pre-mixed audio track, then
// removes the video-only intermediate on success.
func (r *Renderer) mux(videoPath, outputPath string) error {
	info, err := os.Stat(r.audioPath)
	if err != nil {
		return fmt.Errorf("audio file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("audio file is empty: %s", r.audioPath)
	}

	videoDur, err := probeDuration(videoPath)
	if err != nil {
		return err
	}
	audioDur, err := probeDuration(r.audioPath)
	if err != nil {
		return err
	}

	video := ffmpeg.Input(videoPath)
	audio := ffmpeg.Input(r.audioPath)
	out := ffmpeg.KwArgs{
		"c:v": "copy",
		"c:a": "aac",
		"b:a": "192k",
	}

	diff := audioDur - videoDur
	switch {
	case diff > durationTolerance:
		logrus.WithFields(logrus.Fields{
			"audio": audioDur,
			"video": videoDur,
		}).Info("trimming audio to video length")
		out["t"] = fmt.Sprintf("%.3f", videoDur)
	case diff < -durationTolerance:
		logrus.WithFields(logrus.Fields{
			"audio":   audioDur,
			"video":   videoDur,
			"silence": math.Abs(diff),
		}).Info("padding audio with silence")
		audio = audio.Filter("apad", ffmpeg.Args{}, ffmpeg.KwArgs{
			"whole_dur": fmt.Sprintf("%.3f", videoDur),
		})
	}

	err = ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outputPath, out).
		OverWriteOutput().Silent(true).Run()
	if err != nil {
		return fmt.Errorf("mux %s: %w", outputPath, err)
	}

	if err := os.Remove(videoPath); err != nil {
		logrus.WithError(err).Warn("could not remove intermediate video")
	}
	logrus.WithField("path", outputPath).Info("final video saved")
	return nil
}

func probeDuration(path string) (float64, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	var probed struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &probed); err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	dur, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("probe %s: bad duration %q", path, probed.Format.Duration)
	}
	return dur, nil
}
