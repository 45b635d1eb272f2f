package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/talking-blobs/pipeline/timeline"
)

// Manifest ties one session's inputs and artifacts together for debugging
// without re-running the pipeline.
type Manifest struct {
	SessionID   string    `json:"session_id"`
	ScriptPath  string    `json:"script_path"`
	AudioPath   string    `json:"audio_path"`
	GeneratedAt time.Time `json:"generated_at"`
	TotalFrames int       `json:"total_frames"`
	Duration    float64   `json:"total_duration"`
}

func mkSessionDir(root string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	sid := "session_" + ts
	dir := filepath.Join(root, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return sid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// persist dumps the built timeline (stable schema) and a session manifest
// into the session directory.
func persist(dir, sid, scriptPath, audioPath string, tl *timeline.Timeline) error {
	if err := writeJSON(filepath.Join(dir, "timeline.json"), tl); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, "manifest.json"), Manifest{
		SessionID:   sid,
		ScriptPath:  scriptPath,
		AudioPath:   audioPath,
		GeneratedAt: time.Now(),
		TotalFrames: tl.TotalFrames,
		Duration:    tl.TotalDuration,
	})
}
