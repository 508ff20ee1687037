package entities

// GenerationRequest is a fully resolved text-to-image request. It is built
// once per command invocation and not modified afterwards.
type GenerationRequest struct {
	// UserPrompt is the prompt as typed by the user.
	UserPrompt string `json:"user_prompt"`
	// Prompt is the text sent upstream, including any style suffix.
	Prompt      string  `json:"prompt"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	CfgScale    float64 `json:"cfg_scale"`
	Steps       int     `json:"steps"`
	AspectRatio string  `json:"aspect_ratio"`
	Quality     string  `json:"quality"`
	Style       string  `json:"style"`
}
