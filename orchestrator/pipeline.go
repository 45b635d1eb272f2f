package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/talking-blobs/pipeline/audio"
	"github.com/talking-blobs/pipeline/clients"
	cfg "github.com/talking-blobs/pipeline/config"
	"github.com/talking-blobs/pipeline/render"
	"github.com/talking-blobs/pipeline/timeline"
)

type Pipeline struct {
	cfg  *cfg.Root
	http *clients.HTTP
	rand *rand.Rand
}

func NewPipeline(c *cfg.Root) *Pipeline {
	return &Pipeline{
		cfg:  c,
		http: clients.NewHTTP(c.TTS.APIKey),
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run drives the whole conversation-to-video pipeline: synthesize each turn,
// merge the audio, build the energy timeline and render the blob video.
func (p *Pipeline) Run(ctx context.Context, scriptPath, outPath string) error {
	script, err := LoadScript(scriptPath)
	if err != nil {
		return err
	}
	numSpeakers := script.NumSpeakers()

	sid, dir, err := mkSessionDir(p.cfg.Paths.TempAudio)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"session":  sid,
		"speakers": numSpeakers,
		"turns":    len(script.Turns),
	}).Info("processing conversation")

	voices, err := p.assignVoices(ctx, numSpeakers)
	if err != nil {
		return err
	}

	builder := timeline.NewBuilder(p.cfg.Audio.SampleRate, p.cfg.Video.FPS, p.cfg.Timeline.SmoothingAlpha)
	chunkPaths := make([]string, 0, len(script.Turns))

	for i, turn := range script.Turns {
		logrus.WithFields(logrus.Fields{
			"turn":    i + 1,
			"of":      len(script.Turns),
			"speaker": turn.Speaker,
		}).Info("synthesizing turn")

		data, err := p.http.Synthesize(ctx, p.cfg.TTS.URL, clients.TTSReq{
			ModelID:    p.cfg.TTS.Model,
			Transcript: turn.Text,
			Voice:      clients.TTSVoice{Mode: "id", ID: voices[turn.Speaker]},
			OutputFormat: clients.OutputFormat{
				Container:  "wav",
				SampleRate: p.cfg.Audio.SampleRate,
				Encoding:   "pcm_f32le",
			},
		})
		if err != nil {
			return fmt.Errorf("turn %d: %w", i, err)
		}

		chunkPath := filepath.Join(dir, fmt.Sprintf("chunk_%04d.wav", i))
		if err := os.WriteFile(chunkPath, data, 0o644); err != nil {
			return err
		}

		samples, sr, err := audio.Decode(chunkPath)
		if err != nil {
			return fmt.Errorf("turn %d: %w", i, err)
		}
		if sr != p.cfg.Audio.SampleRate {
			logrus.WithFields(logrus.Fields{
				"turn": i, "got": sr, "want": p.cfg.Audio.SampleRate,
			}).Warn("unexpected sample rate from tts")
		}

		builder.Ingest(turn.Speaker, samples)
		chunkPaths = append(chunkPaths, chunkPath)
	}

	mergedPath := filepath.Join(dir, "merged_audio.wav")
	if err := audio.Concat(chunkPaths, mergedPath); err != nil {
		return err
	}

	tl, err := builder.BuildTimeline(numSpeakers)
	if err != nil {
		return err
	}
	if err := persist(dir, sid, scriptPath, mergedPath, tl); err != nil {
		return err
	}

	r := render.NewRenderer(
		tl, mergedPath,
		p.cfg.Video.FPS, p.cfg.Video.Width, p.cfg.Video.Height,
		p.cfg.Video.BaseRadius, p.cfg.Video.MaxScale,
	)
	if err := r.Render(ctx, outPath); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"path":    outPath,
		"session": dir,
	}).Info("video generation complete, audio kept for debugging")
	return nil
}

// assignVoices picks a random voice per speaker, alternating between the
// masculine and feminine catalog pools at random.
func (p *Pipeline) assignVoices(ctx context.Context, numSpeakers int) ([]string, error) {
	genders := [...]string{"masculine", "feminine"}
	out := make([]string, numSpeakers)
	for id := 0; id < numSpeakers; id++ {
		g := genders[p.rand.Intn(len(genders))]
		vs, err := p.http.Voices(ctx, p.cfg.TTS.URL, g, 20)
		if err != nil {
			return nil, fmt.Errorf("voices for speaker %d: %w", id, err)
		}
		if len(vs) == 0 {
			return nil, fmt.Errorf("no %s voices available", g)
		}
		v := vs[p.rand.Intn(len(vs))]
		out[id] = v.ID
		logrus.WithFields(logrus.Fields{"speaker": id, "voice": v.ID}).Info("voice assigned")
	}
	return out, nil
}
