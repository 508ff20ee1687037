package stability_api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickerme_bot/entities"
)

func testRequest() *entities.GenerationRequest {
	return &entities.GenerationRequest{
		UserPrompt: "a red fox",
		Prompt:     "a red fox",
		Width:      1024,
		Height:     1024,
		CfgScale:   7,
		Steps:      30,
		Quality:    "standard",
		Style:      "none",
	}
}

func newTestAPI(t *testing.T, handler http.HandlerFunc) StabilityAPI {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api, err := New(Config{APIKey: "sk-test", Host: server.URL + "/", Model: "test-model"})
	require.NoError(t, err)

	return api
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestTextToImageRequestShape(t *testing.T) {
	var captured map[string]interface{}

	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/generation/test-model/text-to-image", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"artifacts":[{"base64":"QUJD","seed":1,"finishReason":"SUCCESS"}]}`))
	})

	image, err := api.TextToImage(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, []byte("ABC"), image)

	assert.Equal(t, []interface{}{map[string]interface{}{"text": "a red fox", "weight": float64(1)}}, captured["text_prompts"])
	assert.Equal(t, float64(7), captured["cfg_scale"])
	assert.Equal(t, float64(1024), captured["width"])
	assert.Equal(t, float64(1024), captured["height"])
	assert.Equal(t, float64(1), captured["samples"])
	assert.Equal(t, float64(30), captured["steps"])
}

func TestTextToImageUsesFirstArtifact(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"artifacts":[{"base64":"Zmlyc3Q="},{"base64":"c2Vjb25k"}]}`))
	})

	image, err := api.TextToImage(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), image)
}

func TestTextToImageNoArtifacts(t *testing.T) {
	for _, body := range []string{`{"artifacts":[]}`, `{}`} {
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})

		_, err := api.TextToImage(context.Background(), testRequest())
		assert.True(t, errors.Is(err, ErrNoImage), body)
	}
}

func TestTextToImageUpstreamError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("server error"))
	})

	_, err := api.TextToImage(context.Background(), testRequest())
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
	assert.Equal(t, "server error", upstreamErr.Body)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "server error")
}

func TestTextToImageNonOKSuccessStatus(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"artifacts":[{"base64":"QUJD"}]}`))
	})

	_, err := api.TextToImage(context.Background(), testRequest())

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusAccepted, upstreamErr.StatusCode)
}

func TestTextToImageBadBase64(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"artifacts":[{"base64":"%%%"}]}`))
	})

	_, err := api.TextToImage(context.Background(), testRequest())
	assert.Error(t, err)
}

func TestTextToImageNilRequest(t *testing.T) {
	api, err := New(Config{APIKey: "sk-test"})
	require.NoError(t, err)

	_, err = api.TextToImage(context.Background(), nil)
	assert.Error(t, err)
}
