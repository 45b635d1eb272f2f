package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/assert"
)

func TestVoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/voices")
		assert.Equal(t, r.URL.Query().Get("gender"), "feminine")
		assert.Equal(t, r.URL.Query().Get("limit"), "20")
		assert.Equal(t, r.Header.Get("X-API-Key"), "sk-test")
		w.Write([]byte(`{"voices":[{"id":"v1","name":"Ada","gender":"feminine"}]}`))
	}))
	defer srv.Close()

	h := NewHTTP("sk-test")
	vs, err := h.Voices(context.Background(), srv.URL, "feminine", 20)
	assert.NilError(t, err)
	assert.Equal(t, len(vs), 1)
	assert.Equal(t, vs[0].ID, "v1")
}

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/tts/bytes")
		assert.Equal(t, r.Header.Get("Content-Type"), "application/json")
		w.Write([]byte("RIFFfake"))
	}))
	defer srv.Close()

	h := NewHTTP("sk-test")
	data, err := h.Synthesize(context.Background(), srv.URL, TTSReq{
		ModelID:    "sonic-3",
		Transcript: "hello",
		Voice:      TTSVoice{Mode: "id", ID: "v1"},
		OutputFormat: OutputFormat{
			Container: "wav", SampleRate: 44100, Encoding: "pcm_f32le",
		},
	})
	assert.NilError(t, err)
	assert.Equal(t, string(data), "RIFFfake")
}

func TestSynthesizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "voice not found", http.StatusNotFound)
	}))
	defer srv.Close()

	h := NewHTTP("sk-test")
	_, err := h.Synthesize(context.Background(), srv.URL, TTSReq{})
	assert.ErrorContains(t, err, "voice not found")
}
