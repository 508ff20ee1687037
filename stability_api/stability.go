package stability_api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"stickerme_bot/entities"
	"stickerme_bot/metrics"
	"stickerme_bot/presets"
)

const DefaultHost = "https://api.stability.ai"

type apiImpl struct {
	client *resty.Client
	apiKey string
	url    string
}

type Config struct {
	APIKey string
	Host   string
	Model  string
	// HTTPClient replaces the default transport, mostly for tests.
	HTTPClient *http.Client
}

func New(cfg Config) (StabilityAPI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing API key")
	}

	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}

	if cfg.Model == "" {
		cfg.Model = presets.DefaultModel
	}

	host := strings.TrimRight(cfg.Host, "/")

	client := resty.New()
	if cfg.HTTPClient != nil {
		client = resty.NewWithClient(cfg.HTTPClient)
	}

	return &apiImpl{
		client: client,
		apiKey: cfg.APIKey,
		url:    fmt.Sprintf("%s/v1/generation/%s/text-to-image", host, cfg.Model),
	}, nil
}

type textPrompt struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

type jsonTextToImageRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type jsonArtifact struct {
	Base64       string `json:"base64"`
	Seed         int64  `json:"seed"`
	FinishReason string `json:"finishReason"`
}

type jsonTextToImageResponse struct {
	Artifacts []jsonArtifact `json:"artifacts"`
}

func newJSONRequest(req *entities.GenerationRequest) *jsonTextToImageRequest {
	return &jsonTextToImageRequest{
		TextPrompts: []textPrompt{{Text: req.Prompt, Weight: 1}},
		CfgScale:    req.CfgScale,
		Height:      req.Height,
		Width:       req.Width,
		Samples:     presets.Samples,
		Steps:       req.Steps,
	}
}

func (api *apiImpl) TextToImage(ctx context.Context, req *entities.GenerationRequest) ([]byte, error) {
	if req == nil {
		return nil, errors.New("missing request")
	}

	respStruct := &jsonTextToImageResponse{}

	start := time.Now()

	response, err := api.client.R().
		SetContext(ctx).
		SetAuthToken(api.apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(newJSONRequest(req)).
		SetResult(respStruct).
		ForceContentType("application/json").
		Post(api.url)
	if err != nil {
		log.Error().Err(err).Str("url", api.url).Msg("Error with API request")

		return nil, fmt.Errorf("text-to-image request: %w", err)
	}

	metrics.UpstreamRequestDuration.
		WithLabelValues(strconv.Itoa(response.StatusCode())).
		Observe(time.Since(start).Seconds())

	if response.StatusCode() != http.StatusOK {
		log.Warn().
			Str("url", api.url).
			Int("status", response.StatusCode()).
			Str("body", response.String()).
			Msg("Unexpected API response")

		return nil, &UpstreamError{
			StatusCode: response.StatusCode(),
			Body:       response.String(),
		}
	}

	if len(respStruct.Artifacts) == 0 {
		return nil, ErrNoImage
	}

	image, err := base64.StdEncoding.DecodeString(respStruct.Artifacts[0].Base64)
	if err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	log.Debug().
		Int64("seed", respStruct.Artifacts[0].Seed).
		Str("finish_reason", respStruct.Artifacts[0].FinishReason).
		Int("bytes", len(image)).
		Msg("Received artifact")

	return image, nil
}
