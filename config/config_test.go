package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NilError(t, err)

	assert.Equal(t, cfg.Audio.SampleRate, 44100)
	assert.Equal(t, cfg.Video.FPS, 30)
	assert.Equal(t, cfg.Video.Width, 1920)
	assert.Equal(t, cfg.Video.Height, 1080)
	assert.Equal(t, cfg.Video.BaseRadius, 80.0)
	assert.Equal(t, cfg.Video.MaxScale, 1.5)
	assert.Equal(t, cfg.Timeline.SmoothingAlpha, 0.2)
	assert.Equal(t, cfg.Paths.TempAudio, "temp_audio")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
video:
  fps: 24
  width: 640
  height: 480
tts:
  url: http://localhost:9999
`
	assert.NilError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Video.FPS, 24)
	assert.Equal(t, cfg.Video.Width, 640)
	assert.Equal(t, cfg.TTS.URL, "http://localhost:9999")
	// untouched keys keep their defaults
	assert.Equal(t, cfg.Audio.SampleRate, 44100)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("BLOBS_VIDEO_FPS", "60")
	t.Setenv("TTS_API_KEY", "sk-test")

	cfg, err := Load("")
	assert.NilError(t, err)
	assert.Equal(t, cfg.Video.FPS, 60)
	assert.Equal(t, cfg.TTS.APIKey, "sk-test")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Assert(t, err != nil)
}
