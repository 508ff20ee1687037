package imagine_request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickerme_bot/presets"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected validation error, got %v", err)
	assert.Equal(t, field, vErr.Field)
}

func TestBuildDefaults(t *testing.T) {
	req, err := Build(Options{Prompt: "a red fox"})
	require.NoError(t, err)

	assert.Equal(t, "a red fox", req.Prompt)
	assert.Equal(t, "a red fox", req.UserPrompt)
	assert.Equal(t, 1024, req.Width)
	assert.Equal(t, 1024, req.Height)
	assert.Equal(t, float64(7), req.CfgScale)
	assert.Equal(t, 30, req.Steps)
	assert.Equal(t, presets.StyleNone, req.Style)
	assert.Equal(t, "standard", req.Quality)
	assert.Equal(t, "square", req.AspectRatio)
}

func TestBuildAspectRatioPresets(t *testing.T) {
	for _, ar := range presets.AspectRatios() {
		t.Run(ar.Key, func(t *testing.T) {
			req, err := Build(Options{Prompt: "p", AspectRatio: ar.Key})
			require.NoError(t, err)
			assert.Equal(t, ar.Width, req.Width)
			assert.Equal(t, ar.Height, req.Height)
			assert.Equal(t, ar.Key, req.AspectRatio)
		})
	}
}

func TestBuildExplicitDimensionsBypassPreset(t *testing.T) {
	cases := [][2]int{{512, 512}, {1536, 1536}, {512, 1536}, {700, 900}}

	for _, c := range cases {
		req, err := Build(Options{Prompt: "p", AspectRatio: "wide", Width: intPtr(c[0]), Height: intPtr(c[1])})
		require.NoError(t, err)
		assert.Equal(t, c[0], req.Width)
		assert.Equal(t, c[1], req.Height)
		assert.Equal(t, presets.CustomAspectRatio, req.AspectRatio)
	}
}

func TestBuildDimensionsOutOfRange(t *testing.T) {
	cases := [][2]int{{511, 1024}, {1024, 1537}, {0, 0}, {2048, 512}}

	for _, c := range cases {
		_, err := Build(Options{Prompt: "p", Width: intPtr(c[0]), Height: intPtr(c[1])})
		requireValidation(t, err, "dimensions")
	}
}

func TestBuildDimensionsMustComeTogether(t *testing.T) {
	_, err := Build(Options{Prompt: "p", Width: intPtr(800)})
	requireValidation(t, err, "dimensions")

	_, err = Build(Options{Prompt: "p", Height: intPtr(800)})
	requireValidation(t, err, "dimensions")
}

func TestBuildEmptyPrompt(t *testing.T) {
	_, err := Build(Options{Prompt: "", AspectRatio: "bogus", Steps: intPtr(1)})
	requireValidation(t, err, "prompt")

	_, err = Build(Options{Prompt: "   "})
	requireValidation(t, err, "prompt")
}

func TestBuildUnknownKeys(t *testing.T) {
	_, err := Build(Options{Prompt: "p", AspectRatio: "circle"})
	requireValidation(t, err, "aspect_ratio")
	assert.Contains(t, err.Error(), "square, portrait")

	_, err = Build(Options{Prompt: "p", Quality: "insane"})
	requireValidation(t, err, "quality")

	_, err = Build(Options{Prompt: "p", Style: "cubism"})
	requireValidation(t, err, "style")
}

func TestBuildValidationOrder(t *testing.T) {
	// aspect ratio is checked before dimensions
	_, err := Build(Options{Prompt: "p", AspectRatio: "circle", Width: intPtr(1), Height: intPtr(1)})
	requireValidation(t, err, "aspect_ratio")

	// dimensions before quality
	_, err = Build(Options{Prompt: "p", Quality: "insane", Width: intPtr(1), Height: intPtr(1)})
	requireValidation(t, err, "dimensions")

	// cfg scale before steps
	_, err = Build(Options{Prompt: "p", CfgScale: floatPtr(0), Steps: intPtr(0)})
	requireValidation(t, err, "cfg_scale")
}

func TestBuildCfgScaleRange(t *testing.T) {
	for _, v := range []float64{0, 0.5, 20.5, 21, -3} {
		_, err := Build(Options{Prompt: "p", CfgScale: floatPtr(v)})
		requireValidation(t, err, "cfg_scale")
	}

	for _, v := range []float64{1, 12, 20} {
		req, err := Build(Options{Prompt: "p", CfgScale: floatPtr(v)})
		require.NoError(t, err)
		assert.Equal(t, v, req.CfgScale)
	}
}

func TestBuildStepsRange(t *testing.T) {
	for _, v := range []int{0, 9, 151} {
		_, err := Build(Options{Prompt: "p", Steps: intPtr(v)})
		requireValidation(t, err, "steps")
	}

	req, err := Build(Options{Prompt: "p", Quality: "ultra", Steps: intPtr(150)})
	require.NoError(t, err)
	assert.Equal(t, 150, req.Steps)
	assert.Equal(t, float64(8), req.CfgScale)
}

func TestBuildQualityPresets(t *testing.T) {
	for _, q := range presets.Qualities() {
		req, err := Build(Options{Prompt: "p", Quality: q.Key})
		require.NoError(t, err)
		assert.Equal(t, q.Steps, req.Steps)
		assert.Equal(t, q.CfgScale, req.CfgScale)
	}
}

func TestBuildStyles(t *testing.T) {
	req, err := Build(Options{Prompt: "a cat", Style: presets.StyleNone})
	require.NoError(t, err)
	assert.Equal(t, "a cat", req.Prompt)

	for _, s := range presets.Styles() {
		req, err := Build(Options{Prompt: "a cat", Style: s.Key})
		require.NoError(t, err)
		assert.Equal(t, "a cat, "+s.Suffix, req.Prompt)
		assert.Equal(t, "a cat", req.UserPrompt)
		assert.Equal(t, s.Key, req.Style)
	}
}

func TestValidationErrorIs(t *testing.T) {
	_, err := Build(Options{})
	assert.True(t, errors.Is(err, &ValidationError{}))
}
