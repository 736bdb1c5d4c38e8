package naming

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ollama "github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClient_Image(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req ollama.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llava", req.Model)
		assert.JSONEq(t, `"json"`, string(req.Format))
		require.NotNil(t, req.Stream)
		assert.False(t, *req.Stream)
		require.Len(t, req.Images, 1)
		assert.Equal(t, []byte{0xff, 0xd8}, []byte(req.Images[0]))

		_ = json.NewEncoder(w).Encode(ollama.GenerateResponse{
			Model:    "llava",
			Response: `{"newName":"sunset_beach","reasoning":"orange sky over sea","rating":3}`,
			Done:     true,
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, srv.Client())
	res, err := client.GenerateFileName(context.Background(), []byte{0xff, 0xd8}, "IMG_0001.jpg", "describe", "", "llava")
	require.NoError(t, err)
	assert.Equal(t, "sunset_beach.jpg", res.NewName)
	assert.Equal(t, 3, res.Rating)
}

func TestOllamaClient_TextInlinedWithKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer proxy-token", r.Header.Get("Authorization"))

		var req ollama.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Empty(t, req.Images)
		assert.Contains(t, req.Prompt, "File content:\nMeeting minutes")

		_ = json.NewEncoder(w).Encode(ollama.GenerateResponse{Response: `{"newName":"minutes","rating":2}`, Done: true})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, srv.Client())
	res, err := client.GenerateFileName(context.Background(), []byte("Meeting minutes"), "notes.txt", "p", "proxy-token", "llama3")
	require.NoError(t, err)
	assert.Equal(t, "minutes.txt", res.NewName)
}

func TestOllamaClient_RejectsPDF(t *testing.T) {
	client := NewOllamaClient("http://unused", http.DefaultClient)
	_, err := client.GenerateFileName(context.Background(), []byte("%PDF"), "a.pdf", "p", "", "llama3")
	require.Error(t, err)
	assert.Equal(t, KindProvider, KindOf(err))
}

func TestOllamaClient_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"llava\" not found, try pulling it first"}` + "\n"))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, srv.Client())
	_, err := client.GenerateFileName(context.Background(), []byte{1}, "a.png", "p", "", "llava")
	require.Error(t, err)
	assert.Equal(t, KindProvider, KindOf(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestOllamaClient_UnreachableIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewOllamaClient(url, http.DefaultClient)
	_, err := client.GenerateFileName(context.Background(), []byte{1}, "a.png", "p", "", "llava")
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}
