package imagine_request

import (
	"fmt"
	"strings"

	"stickerme_bot/entities"
	"stickerme_bot/presets"
)

// Options carries the raw command parameters. Empty keys and nil pointers
// mean the user did not provide that parameter.
type Options struct {
	Prompt      string
	AspectRatio string
	Quality     string
	Style       string
	Width       *int
	Height      *int
	CfgScale    *float64
	Steps       *int
}

// Build validates the options and resolves them against the presets.
// Checks run in a fixed order and the first failure is returned.
func Build(opts Options) (*entities.GenerationRequest, error) {
	if strings.TrimSpace(opts.Prompt) == "" {
		return nil, newValidationError("prompt", "Please provide a prompt for image generation.")
	}

	aspectKey := opts.AspectRatio
	if aspectKey == "" {
		aspectKey = presets.DefaultAspectRatio
	}

	aspect, ok := presets.LookupAspectRatio(aspectKey)
	if !ok {
		return nil, newValidationError("aspect_ratio",
			fmt.Sprintf("Invalid aspect ratio. Choose from: %s", strings.Join(presets.AspectRatioKeys(), ", ")))
	}

	width, height := aspect.Width, aspect.Height

	if opts.Width != nil || opts.Height != nil {
		if opts.Width == nil || opts.Height == nil {
			return nil, newValidationError("dimensions", "Width and height must be provided together")
		}

		if !inRange(*opts.Width, presets.MinDimension, presets.MaxDimension) ||
			!inRange(*opts.Height, presets.MinDimension, presets.MaxDimension) {
			return nil, newValidationError("dimensions",
				fmt.Sprintf("Width and height must be between %d and %d", presets.MinDimension, presets.MaxDimension))
		}

		width, height = *opts.Width, *opts.Height
		aspectKey = presets.CustomAspectRatio
	}

	qualityKey := opts.Quality
	if qualityKey == "" {
		qualityKey = presets.DefaultQuality
	}

	quality, ok := presets.LookupQuality(qualityKey)
	if !ok {
		return nil, newValidationError("quality",
			fmt.Sprintf("Invalid quality. Choose from: %s", strings.Join(presets.QualityKeys(), ", ")))
	}

	cfgScale := quality.CfgScale
	if opts.CfgScale != nil {
		cfgScale = *opts.CfgScale
	}

	if cfgScale < presets.MinCfgScale || cfgScale > presets.MaxCfgScale {
		return nil, newValidationError("cfg_scale",
			fmt.Sprintf("CFG scale must be between %d and %d", presets.MinCfgScale, presets.MaxCfgScale))
	}

	steps := quality.Steps
	if opts.Steps != nil {
		steps = *opts.Steps
	}

	if !inRange(steps, presets.MinSteps, presets.MaxSteps) {
		return nil, newValidationError("steps",
			fmt.Sprintf("Steps must be between %d and %d", presets.MinSteps, presets.MaxSteps))
	}

	prompt := opts.Prompt
	styleKey := presets.StyleNone

	if opts.Style != "" && opts.Style != presets.StyleNone {
		style, ok := presets.LookupStyle(opts.Style)
		if !ok {
			return nil, newValidationError("style",
				fmt.Sprintf("Invalid style. Choose from: %s, %s", presets.StyleNone, strings.Join(presets.StyleKeys(), ", ")))
		}

		prompt = fmt.Sprintf("%s, %s", prompt, style.Suffix)
		styleKey = style.Key
	}

	return &entities.GenerationRequest{
		UserPrompt:  opts.Prompt,
		Prompt:      prompt,
		Width:       width,
		Height:      height,
		CfgScale:    cfgScale,
		Steps:       steps,
		AspectRatio: aspectKey,
		Quality:     quality.Key,
		Style:       styleKey,
	}, nil
}

func inRange(v, lower, upper int) bool {
	return v >= lower && v <= upper
}
