package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type Voice struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

type VoicesResp struct {
	Voices []Voice `json:"voices"`
}

type TTSVoice struct {
	Mode string `json:"mode"`
	ID   string `json:"id"`
}

type OutputFormat struct {
	Container  string `json:"container"`
	SampleRate int    `json:"sample_rate"`
	Encoding   string `json:"encoding"`
}

type TTSReq struct {
	ModelID      string       `json:"model_id"`
	Transcript   string       `json:"transcript"`
	Voice        TTSVoice     `json:"voice"`
	OutputFormat OutputFormat `json:"output_format"`
}

// Voices lists the service's voice catalog, optionally filtered by gender.
func (h *HTTP) Voices(ctx context.Context, base, gender string, limit int) ([]Voice, error) {
	q := url.Values{}
	if gender != "" {
		q.Set("gender", gender)
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/voices?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", h.apiKey)

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("voices %s: %s", resp.Status, string(body))
	}

	var out VoicesResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("voices decode: %w", err)
	}
	return out.Voices, nil
}

// Synthesize converts one utterance to raw audio bytes decodable at the
// requested sample rate.
func (h *HTTP) Synthesize(ctx context.Context, base string, ttsReq TTSReq) ([]byte, error) {
	b, _ := json.Marshal(ttsReq)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/tts/bytes", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", h.apiKey)

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts %s: %s", resp.Status, string(body))
	}
	return io.ReadAll(resp.Body)
}
