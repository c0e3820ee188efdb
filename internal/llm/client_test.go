package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maaylex/maaylex-server/internal/model"
)

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "translate this", req.Messages[1].Content)

		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "Biyo"}}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "gpt-4o")

	out, err := c.Generate(context.Background(), "you are a translator", "translate this")
	require.NoError(t, err)
	assert.Equal(t, "Biyo", out)
}

func TestClient_Generate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "gpt-4o")

	_, err := c.Generate(context.Background(), "system", "prompt")
	assert.ErrorIs(t, err, model.ErrUpstream)
}

func TestClient_Generate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "gpt-4o")

	_, err := c.Generate(context.Background(), "system", "prompt")
	assert.ErrorIs(t, err, model.ErrUpstream)
}

func TestClient_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "clip.webm", header.Filename)

		_, _ = w.Write([]byte(`{"text":"biyo waa nadiif"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "gpt-4o")

	text, err := c.Transcribe(context.Background(), "clip.webm", []byte("fake audio"))
	require.NoError(t, err)
	assert.Equal(t, "biyo waa nadiif", text)
}

func TestClient_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)

		var req speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tts-1", req.Model)
		assert.Equal(t, "alloy", req.Voice) // default voice
		assert.Equal(t, "biyo", req.Input)

		_, _ = w.Write([]byte("mp3 bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "gpt-4o")

	audio, err := c.Synthesize(context.Background(), "biyo", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3 bytes"), audio)
}

func TestClient_Synthesize_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "gpt-4o")

	_, err := c.Synthesize(context.Background(), "biyo", "alloy")
	assert.ErrorIs(t, err, model.ErrUpstream)
}
