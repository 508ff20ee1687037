package presets

const (
	DefaultAspectRatio = "square"
	DefaultQuality     = "standard"

	// StyleNone selects no prompt suffix.
	StyleNone = "none"

	// CustomAspectRatio is reported when explicit dimensions replace a preset.
	CustomAspectRatio = "custom"

	MinDimension = 512
	MaxDimension = 1536
	MinCfgScale  = 1
	MaxCfgScale  = 20
	MinSteps     = 10
	MaxSteps     = 150

	DefaultModel = "stable-diffusion-xl-1024-v1-0"
	Samples      = 1
)

type AspectRatio struct {
	Key    string
	Name   string
	Width  int
	Height int
}

type Quality struct {
	Key      string
	Name     string
	Steps    int
	CfgScale float64
}

type Style struct {
	Key    string
	Name   string
	Suffix string
}

var aspectRatios = []AspectRatio{
	{Key: "square", Name: "Square", Width: 1024, Height: 1024},
	{Key: "portrait", Name: "Portrait", Width: 832, Height: 1216},
	{Key: "landscape", Name: "Landscape", Width: 1216, Height: 832},
	{Key: "wide", Name: "Wide", Width: 1344, Height: 768},
	{Key: "tall", Name: "Tall", Width: 768, Height: 1344},
	{Key: "ultrawide", Name: "Ultra Wide", Width: 1536, Height: 640},
	{Key: "ultratall", Name: "Ultra Tall", Width: 640, Height: 1536},
}

var qualities = []Quality{
	{Key: "fast", Name: "Fast", Steps: 20, CfgScale: 7},
	{Key: "standard", Name: "Standard", Steps: 30, CfgScale: 7},
	{Key: "high", Name: "High", Steps: 50, CfgScale: 8},
	{Key: "ultra", Name: "Ultra", Steps: 75, CfgScale: 8},
}

var styles = []Style{
	{Key: "photographic", Name: "Photographic", Suffix: "photographic, realistic, detailed, high quality"},
	{Key: "artistic", Name: "Artistic", Suffix: "artistic, creative, stylized, vibrant"},
	{Key: "cinematic", Name: "Cinematic", Suffix: "cinematic, dramatic lighting, movie still, professional"},
	{Key: "anime", Name: "Anime", Suffix: "anime style, manga, cel shaded, colorful"},
	{Key: "oil_painting", Name: "Oil Painting", Suffix: "oil painting, textured, artistic, traditional"},
	{Key: "watercolor", Name: "Watercolor", Suffix: "watercolor, soft, flowing, artistic"},
	{Key: "digital_art", Name: "Digital Art", Suffix: "digital art, clean, modern, professional"},
	{Key: "sketch", Name: "Sketch", Suffix: "sketch, pencil drawing, monochrome, artistic"},
}

// AspectRatios returns a copy of the aspect ratio table in display order.
func AspectRatios() []AspectRatio {
	return append([]AspectRatio(nil), aspectRatios...)
}

// Qualities returns a copy of the quality table in display order.
func Qualities() []Quality {
	return append([]Quality(nil), qualities...)
}

// Styles returns a copy of the style table in display order. The "none"
// sentinel is not part of the table.
func Styles() []Style {
	return append([]Style(nil), styles...)
}

func LookupAspectRatio(key string) (AspectRatio, bool) {
	for _, ar := range aspectRatios {
		if ar.Key == key {
			return ar, true
		}
	}

	return AspectRatio{}, false
}

func LookupQuality(key string) (Quality, bool) {
	for _, q := range qualities {
		if q.Key == key {
			return q, true
		}
	}

	return Quality{}, false
}

func LookupStyle(key string) (Style, bool) {
	for _, s := range styles {
		if s.Key == key {
			return s, true
		}
	}

	return Style{}, false
}

func AspectRatioKeys() []string {
	keys := make([]string, 0, len(aspectRatios))
	for _, ar := range aspectRatios {
		keys = append(keys, ar.Key)
	}

	return keys
}

func QualityKeys() []string {
	keys := make([]string, 0, len(qualities))
	for _, q := range qualities {
		keys = append(keys, q.Key)
	}

	return keys
}

func StyleKeys() []string {
	keys := make([]string, 0, len(styles))
	for _, s := range styles {
		keys = append(keys, s.Key)
	}

	return keys
}

// StyleName returns the display name for a style key, "None" for the sentinel.
func StyleName(key string) string {
	if s, ok := LookupStyle(key); ok {
		return s.Name
	}

	return "None"
}

// QualityName returns the display name for a quality key.
func QualityName(key string) string {
	if q, ok := LookupQuality(key); ok {
		return q.Name
	}

	return key
}
