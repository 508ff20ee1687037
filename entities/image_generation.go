package entities

import "time"

type ImageGeneration struct {
	ID               int64     `json:"id"`
	InteractionID    string    `json:"interaction_id"`
	MemberID         string    `json:"member_id"`
	DownloadToken    string    `json:"download_token"`
	UserPrompt       string    `json:"user_prompt"`
	Prompt           string    `json:"prompt"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	AspectRatio      string    `json:"aspect_ratio"`
	Quality          string    `json:"quality"`
	Style            string    `json:"style"`
	CfgScale         float64   `json:"cfg_scale"`
	Steps            int       `json:"steps"`
	FilePath         string    `json:"file_path"`
	DownloadFilename string    `json:"download_filename"`
	ContentType      string    `json:"content_type"`
	ImageWidth       int       `json:"image_width"`
	ImageHeight      int       `json:"image_height"`
	CreatedAt        time.Time `json:"created_at"`
}
