package timeline

// Timeline is the per-frame energy contract handed to the renderer.
// Speakers maps speaker id to a dense energy row of length TotalFrames;
// every value lies in [0.1, 1.0]. Immutable once built.
type Timeline struct {
	FrameInterval float64           `json:"frame_interval"`
	TotalFrames   int               `json:"total_frames"`
	TotalDuration float64           `json:"total_duration"`
	Speakers      map[int][]float64 `json:"speakers"`
}

// NumSpeakers is the number of energy rows in the timeline.
func (t *Timeline) NumSpeakers() int { return len(t.Speakers) }

// Energy returns the floored energy for a speaker at a frame index.
func (t *Timeline) Energy(speaker, frame int) float64 {
	return t.Speakers[speaker][frame]
}
