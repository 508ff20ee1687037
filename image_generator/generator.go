package image_generator

import (
	"context"
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stickerme_bot/entities"
	"stickerme_bot/image_store"
	"stickerme_bot/imagine_request"
	"stickerme_bot/metrics"
	"stickerme_bot/png_info_extractor"
	"stickerme_bot/repositories/image_generations"
	"stickerme_bot/stability_api"
)

// ErrNotRequester is returned when someone other than the original requester
// asks to download an image.
var ErrNotRequester = errors.New("only the user who generated this image can download it")

type generatorImpl struct {
	stabilityAPI        stability_api.StabilityAPI
	imageStore          image_store.Store
	imageGenerationRepo image_generations.Repository
	newToken            func() string
}

type Config struct {
	StabilityAPI        stability_api.StabilityAPI
	ImageStore          image_store.Store
	ImageGenerationRepo image_generations.Repository
	// NewToken generates download tokens. Defaults to random UUIDs.
	NewToken func() string
}

func New(cfg Config) (Generator, error) {
	if cfg.StabilityAPI == nil {
		return nil, errors.New("missing stability API")
	}

	if cfg.ImageStore == nil {
		return nil, errors.New("missing image store")
	}

	if cfg.ImageGenerationRepo == nil {
		return nil, errors.New("missing image generation repository")
	}

	if cfg.NewToken == nil {
		cfg.NewToken = uuid.NewString
	}

	return &generatorImpl{
		stabilityAPI:        cfg.StabilityAPI,
		imageStore:          cfg.ImageStore,
		imageGenerationRepo: cfg.ImageGenerationRepo,
		newToken:            cfg.NewToken,
	}, nil
}

type GenerateRequest struct {
	Options       imagine_request.Options
	MemberID      string
	InteractionID string
}

type Result struct {
	Request          *entities.GenerationRequest
	Image            []byte
	ContentType      string
	FilePath         string
	DownloadFilename string
	// DownloadToken is empty when the generation could not be recorded, in
	// which case no download button should be offered.
	DownloadToken string
	ImageWidth    int
	ImageHeight   int
}

type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (g *generatorImpl) Generate(ctx context.Context, req *GenerateRequest) (*Result, error) {
	if req == nil {
		return nil, errors.New("missing generate request")
	}

	genReq, err := imagine_request.Build(req.Options)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(metrics.StatusValidationError).Inc()

		return nil, err
	}

	logger := log.With().
		Str("interaction_id", req.InteractionID).
		Str("member_id", req.MemberID).
		Logger()

	logger.Info().
		Str("prompt", genReq.Prompt).
		Int("width", genReq.Width).
		Int("height", genReq.Height).
		Float64("cfg_scale", genReq.CfgScale).
		Int("steps", genReq.Steps).
		Msg("Generating image")

	start := time.Now()

	image, err := g.stabilityAPI.TextToImage(ctx, genReq)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(metrics.StatusUpstreamError).Inc()
		logger.Error().Err(err).Msg("Error generating image")

		return nil, err
	}

	filePath, err := g.imageStore.Save(image, genReq.UserPrompt, req.MemberID)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(metrics.StatusStorageError).Inc()
		logger.Error().Err(err).Msg("Error saving image")

		return nil, err
	}

	result := &Result{
		Request:          genReq,
		Image:            image,
		ContentType:      mimetype.Detect(image).String(),
		FilePath:         filePath,
		DownloadFilename: image_store.DownloadFilename(genReq.UserPrompt),
		ImageWidth:       genReq.Width,
		ImageHeight:      genReq.Height,
	}

	info, err := png_info_extractor.New(png_info_extractor.Config{PngData: image})
	if err != nil {
		logger.Warn().Err(err).Str("content_type", result.ContentType).Msg("Could not read PNG header")
	} else {
		result.ImageWidth, result.ImageHeight = info.Dimensions()

		if chunks := info.TextChunks(); len(chunks) > 0 {
			text := zerolog.Dict()
			for key, value := range chunks {
				text.Str(key, value)
			}

			logger.Debug().Dict("png_text", text).Msg("PNG text metadata")
		}
	}

	token := g.newToken()

	_, err = g.imageGenerationRepo.Create(ctx, &entities.ImageGeneration{
		InteractionID:    req.InteractionID,
		MemberID:         req.MemberID,
		DownloadToken:    token,
		UserPrompt:       genReq.UserPrompt,
		Prompt:           genReq.Prompt,
		Width:            genReq.Width,
		Height:           genReq.Height,
		AspectRatio:      genReq.AspectRatio,
		Quality:          genReq.Quality,
		Style:            genReq.Style,
		CfgScale:         genReq.CfgScale,
		Steps:            genReq.Steps,
		FilePath:         filePath,
		DownloadFilename: result.DownloadFilename,
		ContentType:      result.ContentType,
		ImageWidth:       result.ImageWidth,
		ImageHeight:      result.ImageHeight,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating image generation record")
	} else {
		result.DownloadToken = token
	}

	metrics.GenerationsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	metrics.GeneratedBytesTotal.Add(float64(len(image)))

	logger.Info().
		Str("path", filePath).
		Str("size", humanize.Bytes(uint64(len(image)))).
		Dur("took", time.Since(start)).
		Msg("Generated image")

	return result, nil
}

func (g *generatorImpl) Download(ctx context.Context, token, memberID string) (*Download, error) {
	generation, err := g.imageGenerationRepo.GetByDownloadToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if generation.MemberID != memberID {
		return nil, ErrNotRequester
	}

	data, err := g.imageStore.Load(generation.FilePath)
	if err != nil {
		return nil, err
	}

	contentType := generation.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	return &Download{
		Filename:    generation.DownloadFilename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
