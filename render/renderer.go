package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/talking-blobs/pipeline/timeline"
)

// Renderer turns a built timeline into a muxed video. The timeline and
// layout are read-only after construction, so individual frames can be
// rasterized concurrently; only the write into the encoder is ordered.
type Renderer struct {
	tl        *timeline.Timeline
	audioPath string

	fps      int
	width    int
	height   int
	baseRad  float64
	maxScale float64
	layout   Layout
	workers  int
	bg       color.RGBA
}

// NewRenderer builds a renderer and derives the static layout for the
// timeline's speaker count. audioPath must point at the pre-mixed track
// covering the same total duration.
func NewRenderer(tl *timeline.Timeline, audioPath string, fps, width, height int, baseRadius, maxScale float64) *Renderer {
	return &Renderer{
		tl:        tl,
		audioPath: audioPath,
		fps:       fps,
		width:     width,
		height:    height,
		baseRad:   baseRadius,
		maxScale:  maxScale,
		layout:    NewLayout(tl.NumSpeakers(), width, height),
		workers:   runtime.NumCPU(),
		bg:        color.RGBA{R: 26, G: 26, B: 26, A: 255},
	}
}

// Render rasterizes every frame into a video-only file next to outputPath,
// then muxes in the audio track. On mux failure the video-only file is kept
// and its path is surfaced through MuxError.
func (r *Renderer) Render(ctx context.Context, outputPath string) error {
	videoOnly := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_no_audio.mp4"

	logrus.WithFields(logrus.Fields{
		"frames": r.tl.TotalFrames,
		"fps":    r.fps,
		"size":   fmt.Sprintf("%dx%d", r.width, r.height),
	}).Info("rendering frames")

	if err := r.encode(ctx, videoOnly); err != nil {
		return err
	}
	logrus.WithField("path", videoOnly).Info("video rendered (no audio)")

	if err := r.mux(videoOnly, outputPath); err != nil {
		return &MuxError{VideoPath: videoOnly, Err: err}
	}
	return nil
}

// encode streams raw RGBA frames into ffmpeg.
func (r *Renderer) encode(ctx context.Context, videoPath string) error {
	pr, pw := io.Pipe()

	encDone := make(chan error, 1)
	go func() {
		err := ffmpeg.
			Input("pipe:", ffmpeg.KwArgs{
				"format":    "rawvideo",
				"pix_fmt":   "rgba",
				"s":         fmt.Sprintf("%dx%d", r.width, r.height),
				"framerate": r.fps,
			}).
			Output(videoPath, ffmpeg.KwArgs{
				"c:v":     "libx264",
				"pix_fmt": "yuv420p",
				"r":       r.fps,
				"b:v":     "5000k",
			}).
			OverWriteOutput().Silent(true).WithInput(pr).Run()
		// unblock a writer stuck on a dead encoder
		pr.CloseWithError(io.ErrClosedPipe)
		encDone <- err
	}()

	writeErr := r.writeFrames(ctx, pw)
	pw.Close()
	encErr := <-encDone

	if encErr != nil {
		return fmt.Errorf("encode %s: %w", videoPath, encErr)
	}
	return writeErr
}

// writeFrames rasterizes frames on a worker pool and writes them to w in
// strict frame-index order.
func (r *Renderer) writeFrames(ctx context.Context, w io.Writer) error {
	total := r.tl.TotalFrames
	done := make(chan struct{})
	defer close(done)

	type rendered struct {
		idx int
		pix []byte
	}
	jobs := make(chan int)
	results := make(chan rendered, r.workers)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				img := r.drawFrame(idx)
				select {
				case results <- rendered{idx: idx, pix: img.Pix}:
				case <-done:
					return
				}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for f := 0; f < total; f++ {
			select {
			case jobs <- f:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	progressStep := total / 10
	if progressStep == 0 {
		progressStep = 1
	}

	pending := make(map[int][]byte)
	next := 0
	for res := range results {
		pending[res.idx] = res.pix
		for {
			pix, ok := pending[next]
			if !ok {
				break
			}
			if _, err := w.Write(pix); err != nil {
				return fmt.Errorf("write frame %d: %w", next, err)
			}
			delete(pending, next)
			next++
			if next%progressStep == 0 {
				logrus.WithFields(logrus.Fields{
					"frame": next,
					"total": total,
				}).Info("render progress")
			}
		}
		if next == total {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if next != total {
		return fmt.Errorf("rendered %d of %d frames", next, total)
	}
	return nil
}

// drawFrame is a pure function of the frame index plus the read-only
// timeline and layout; rendering the same index twice is pixel-identical.
func (r *Renderer) drawFrame(idx int) *image.RGBA {
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(r.bg)
	dc.Clear()

	for id := 0; id < r.tl.NumSpeakers(); id++ {
		r.drawBlob(dc, id, r.tl.Energy(id, idx), idx)
	}
	return dc.Image().(*image.RGBA)
}

func (r *Renderer) drawBlob(dc *gg.Context, speaker int, energy float64, frameIdx int) {
	pos := r.layout.Positions[speaker]
	col := r.layout.Colors[speaker]

	pts := fluidOutline(pos[0], pos[1], r.baseRad, energy, r.maxScale, frameIdx)
	dc.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		dc.LineTo(p[0], p[1])
	}
	dc.ClosePath()
	dc.SetColor(col)
	dc.Fill()

	dc.DrawCircle(pos[0], pos[1], r.baseRad*0.7*coreScale(energy))
	dc.SetColor(shade(col, -30.0/255.0))
	dc.Fill()

	if glowVisible(energy) {
		dc.SetLineWidth(2)
		dc.DrawCircle(pos[0], pos[1], r.baseRad*1.2*coreScale(energy))
		dc.SetColor(shade(col, 20.0/255.0))
		dc.Stroke()
	}
}
