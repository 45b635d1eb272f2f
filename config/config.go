package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Pipeline struct {
	Name   string `mapstructure:"name"`
	LogLvl string `mapstructure:"log_level"`
}
type Audio struct {
	SampleRate int `mapstructure:"sample_rate"`
}
type Video struct {
	FPS        int     `mapstructure:"fps"`
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	BaseRadius float64 `mapstructure:"base_radius"`
	MaxScale   float64 `mapstructure:"max_scale"`
}
type Timeline struct {
	SmoothingAlpha float64 `mapstructure:"smoothing_alpha"`
}
type TTS struct {
	URL    string `mapstructure:"url"`
	Model  string `mapstructure:"model"`
	APIKey string `mapstructure:"api_key"`
}
type Paths struct {
	Outputs   string `mapstructure:"outputs"`
	TempAudio string `mapstructure:"temp_audio"`
}

type Root struct {
	Pipeline Pipeline `mapstructure:"pipeline"`
	Audio    Audio    `mapstructure:"audio"`
	Video    Video    `mapstructure:"video"`
	Timeline Timeline `mapstructure:"timeline"`
	TTS      TTS      `mapstructure:"tts"`
	Paths    Paths    `mapstructure:"paths"`
}

// Load reads the yaml config (explicit path, else ./config.yaml or
// config/config.yaml), layered under BLOBS_* env overrides, with working
// defaults for everything but the TTS endpoint. A .env file is honored for
// TTS_API_KEY.
func Load(path string) (*Root, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("pipeline.name", "talking-blobs")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("video.fps", 30)
	v.SetDefault("video.width", 1920)
	v.SetDefault("video.height", 1080)
	v.SetDefault("video.base_radius", 80)
	v.SetDefault("video.max_scale", 1.5)
	v.SetDefault("timeline.smoothing_alpha", 0.2)
	v.SetDefault("tts.model", "sonic-3")
	v.SetDefault("paths.outputs", "outputs")
	v.SetDefault("paths.temp_audio", "temp_audio")

	v.SetEnvPrefix("BLOBS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.TTS.APIKey == "" {
		cfg.TTS.APIKey = os.Getenv("TTS_API_KEY")
	}
	return &cfg, nil
}
