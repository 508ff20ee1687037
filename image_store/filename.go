package image_store

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	timestampLayout = "20060102_150405"

	maxFilenamePromptLength = 50
	maxDownloadPromptLength = 30

	defaultDownloadFilename = "generated_image.png"
)

// SanitizePrompt keeps letters, numerics, spaces, hyphens and underscores,
// trims trailing whitespace and then cuts the result to maxLen characters.
func SanitizePrompt(prompt string, maxLen int) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '-' || r == '_' {
			return r
		}

		return -1
	}, prompt)

	safe = strings.TrimRightFunc(safe, unicode.IsSpace)

	runes := []rune(safe)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	return string(runes)
}

// Filename builds {timestamp}_{userID}_{prompt}.png.
func Filename(now time.Time, userID, prompt string) string {
	return fmt.Sprintf("%s_%s_%s.png", now.Format(timestampLayout), userID,
		SanitizePrompt(prompt, maxFilenamePromptLength))
}

// DownloadFilename is the name offered when a user re-downloads an image.
func DownloadFilename(prompt string) string {
	safe := SanitizePrompt(prompt, maxDownloadPromptLength)
	if safe == "" {
		return defaultDownloadFilename
	}

	return safe + ".png"
}
